package service

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/store"
)

// memGateway keeps the snapshot in memory and counts saves, so tests can
// assert that failed operations never persist anything.
type memGateway struct {
	data  *store.Data
	saves int
}

func (g *memGateway) Load() (*store.Data, error) {
	return g.data, nil
}

func (g *memGateway) Save(data *store.Data) error {
	g.saves++
	g.data = data
	return nil
}

func newTestStore(t *testing.T, data *store.Data) (*store.Store, *memGateway) {
	t.Helper()
	if data == nil {
		data = &store.Data{}
	}
	if data.Users == nil {
		data.Users = []*domain.User{}
	}
	if data.Clients == nil {
		data.Clients = []*domain.Client{}
	}
	if data.Products == nil {
		data.Products = []*domain.Product{}
	}
	if data.Transactions == nil {
		data.Transactions = []domain.Transaction{}
	}
	if data.Notifications == nil {
		data.Notifications = []domain.Notification{}
	}

	gw := &memGateway{data: data}
	st := store.Open(gw, func() *store.Data {
		t.Fatalf("seed must not run: test data failed to load")
		return nil
	}, zerolog.Nop())
	return st, gw
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func adminActor() domain.Actor {
	return domain.Actor{ID: 1, Role: domain.RoleAdmin, Name: "System Admin"}
}

func userActor() domain.Actor {
	return domain.Actor{ID: 2, Role: domain.RoleStandardUser, Name: "Cashier"}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func lastNotification(t *testing.T, st *store.Store) domain.Notification {
	t.Helper()
	var n domain.Notification
	found := false
	st.View(func(d *store.Data) {
		if len(d.Notifications) > 0 {
			n = d.Notifications[len(d.Notifications)-1]
			found = true
		}
	})
	if !found {
		t.Fatalf("expected a notification in the feed")
	}
	return n
}
