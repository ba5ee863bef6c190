package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/store"
)

// NotificationService prunes the event feed. Entries are never edited;
// the only mutations are clearing the whole feed or dropping one entry.
type NotificationService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewNotificationService(st *store.Store, logger zerolog.Logger) *NotificationService {
	return &NotificationService{store: st, logger: logger}
}

func (s *NotificationService) ClearAll(ctx context.Context) error {
	err := s.store.Update(func(tx *store.Tx) error {
		tx.Data.Notifications = []domain.Notification{}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Msg("notification feed cleared")
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.store.Update(func(tx *store.Tx) error {
		for i, n := range tx.Data.Notifications {
			if n.ID == id {
				tx.Data.Notifications = append(tx.Data.Notifications[:i], tx.Data.Notifications[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotificationNotFound
	})
}
