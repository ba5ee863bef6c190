// Package store holds the authoritative in-memory collections behind a
// single-writer lock. Every mutation runs validation and mutation inside
// one critical section and is persisted through the Gateway before the
// lock is released, so no caller ever observes a half-applied operation.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/api/metrics"
	"github.com/mannager/pos-system/internal/core/domain"
)

// Data is the snapshot document: the five top-level collections, fully
// rewritten on every mutation.
type Data struct {
	Users         []*domain.User         `json:"users" bson:"users"`
	Clients       []*domain.Client       `json:"clients" bson:"clients"`
	Products      []*domain.Product      `json:"products" bson:"products"`
	Transactions  []domain.Transaction   `json:"transactions" bson:"transactions"`
	Notifications []domain.Notification  `json:"notifications" bson:"notifications"`
}

// Gateway persists and restores the snapshot document. Save must replace
// the previous snapshot atomically: a concurrent reader sees either the
// old document or the new one, never a partial write.
type Gateway interface {
	Load() (*Data, error)
	Save(data *Data) error
}

// Store serializes access to Data. Mutations go through Update, reads
// through View; the RWMutex is the single-writer lock in front of the
// shared collections.
type Store struct {
	mu     sync.RWMutex
	data   *Data
	gw     Gateway
	lastID int64
	log    zerolog.Logger
}

// Open restores the store through the gateway. A missing or unreadable
// snapshot falls back to the seeded default — startup never aborts on a
// bad snapshot, it starts fresh and logs why.
func Open(gw Gateway, seed func() *Data, log zerolog.Logger) *Store {
	data, err := gw.Load()
	if err != nil {
		log.Warn().Err(err).Msg("snapshot unavailable, starting from seeded defaults")
		data = seed()
	}

	s := &Store{data: data, gw: gw, log: log, lastID: time.Now().UnixMilli()}
	for _, u := range data.Users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}
	for _, c := range data.Clients {
		if c.ID > s.lastID {
			s.lastID = c.ID
		}
	}
	for _, p := range data.Products {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	for _, t := range data.Transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	for _, n := range data.Notifications {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
	return s
}

// Tx is the handle a mutation works through: the collections plus id
// generation and the notification feed. It is only valid for the duration
// of the Update callback.
type Tx struct {
	Data *Data
	s    *Store
}

// NextID returns a strictly increasing id. The counter is seeded from the
// clock but advanced monotonically, so ids never collide even when several
// entities are created within the same millisecond.
func (tx *Tx) NextID() int64 {
	next := time.Now().UnixMilli()
	if next <= tx.s.lastID {
		next = tx.s.lastID + 1
	}
	tx.s.lastID = next
	return next
}

// Notify appends an entry to the event feed.
func (tx *Tx) Notify(typ domain.NotificationType, format string, args ...any) {
	tx.Data.Notifications = append(tx.Data.Notifications, domain.Notification{
		ID:        tx.NextID(),
		Message:   fmt.Sprintf(format, args...),
		Type:      typ,
		Timestamp: time.Now(),
	})
}

// Update runs fn under the write lock and, when it succeeds, persists the
// whole store before returning. When fn fails nothing is saved; fn must do
// all validation before its first mutation so a returned error implies an
// untouched store.
//
// Durability is at-most-once: a crash after fn but before Save completes
// loses exactly that mutation.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&Tx{Data: s.data, s: s}); err != nil {
		return err
	}

	start := time.Now()
	if err := s.gw.Save(s.data); err != nil {
		metrics.SnapshotSavesTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("snapshot save failed")
		return fmt.Errorf("persist snapshot: %w", err)
	}
	metrics.SnapshotSavesTotal.WithLabelValues("ok").Inc()
	metrics.SnapshotSaveDuration.Observe(time.Since(start).Seconds())
	return nil
}

// View runs fn under the read lock. Reads are consistent: fn never
// observes a store mid-mutation. fn must not retain references to the
// collections past its return.
func (s *Store) View(fn func(data *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// FindUser returns the user with the given id, or nil.
func (d *Data) FindUser(id int64) *domain.User {
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (d *Data) FindUserByUsername(username string) *domain.User {
	for _, u := range d.Users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// FindClient returns the client with the given id, or nil.
func (d *Data) FindClient(id int64) *domain.Client {
	for _, c := range d.Clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindProduct returns the product with the given id, or nil.
func (d *Data) FindProduct(id int64) *domain.Product {
	for _, p := range d.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}
