package store

import (
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mannager/pos-system/internal/core/domain"
)

// Seed returns the default store used when no snapshot exists: empty
// collections plus one bootstrap administrator so the system is never
// unreachable after a fresh start or a corrupt snapshot.
func Seed(adminUsername, adminPassword string, log zerolog.Logger) func() *Data {
	return func() *Data {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			// bcrypt only fails on absurd cost/length inputs; the bootstrap
			// credentials come from config, so treat this as a setup bug.
			log.Panic().Err(err).Msg("hash bootstrap admin password")
		}

		return &Data{
			Users: []*domain.User{{
				ID:       1,
				Username: adminUsername,
				Password: string(hash),
				Role:     domain.RoleAdmin,
				Name:     "System Admin",
				Language: "rw",
			}},
			Clients:       []*domain.Client{},
			Products:      []*domain.Product{},
			Transactions:  []domain.Transaction{},
			Notifications: []domain.Notification{},
		}
	}
}
