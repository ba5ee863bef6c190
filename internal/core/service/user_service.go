package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/ports"
	"github.com/mannager/pos-system/internal/store"
)

// UserService manages operator accounts. Role changes, account creation
// and deletion are admin-only; password changes distinguish self-service
// (current password required) from admin intervention (no check).
type UserService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewUserService(st *store.Store, logger zerolog.Logger) *UserService {
	return &UserService{store: st, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users := []domain.PublicUser{}
	s.store.View(func(data *store.Data) {
		for _, u := range data.Users {
			users = append(users, u.Public())
		}
	})
	return users, nil
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.PublicUser, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if input.Username == "" || input.Name == "" {
		return nil, domain.Validationf("username and name are required")
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created domain.PublicUser
	err = s.store.Update(func(tx *store.Tx) error {
		if tx.Data.FindUserByUsername(input.Username) != nil {
			return domain.Validationf("username %s is taken", input.Username)
		}
		user := &domain.User{
			ID:       tx.NextID(),
			Username: input.Username,
			Password: string(hash),
			Role:     domain.RoleStandardUser,
			Name:     input.Name,
			Language: input.Language,
		}
		tx.Data.Users = append(tx.Data.Users, user)
		tx.Notify(domain.NotifyUser, "User %s created by %s", user.Name, actor.Name)
		created = user.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return &created, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, id int64, update ports.UserUpdate) (*domain.PublicUser, error) {
	if update.Role != nil && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if update.Role != nil && *update.Role != domain.RoleAdmin && *update.Role != domain.RoleStandardUser {
		return nil, domain.Validationf("unknown role %s", *update.Role)
	}

	var updated domain.PublicUser
	err := s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(id)
		if user == nil {
			return domain.ErrUserNotFound
		}
		if update.Username != nil {
			user.Username = *update.Username
		}
		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Role != nil {
			user.Role = *update.Role
		}
		if update.Language != nil {
			user.Language = *update.Language
		}
		tx.Notify(domain.NotifyInfo, "User %s updated", user.Name)
		updated = user.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == actor.ID {
		return domain.ErrSelfDeletion
	}

	err := s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(id)
		if user == nil {
			return domain.ErrUserNotFound
		}

		users := tx.Data.Users[:0]
		for _, u := range tx.Data.Users {
			if u.ID != id {
				users = append(users, u)
			}
		}
		tx.Data.Users = users

		tx.Notify(domain.NotifyWarning, "User %s deleted by %s", user.Name, actor.Name)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor domain.Actor, id int64, current, next string) error {
	if id != actor.ID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if len(next) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	return s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(id)
		if user == nil {
			return domain.ErrUserNotFound
		}
		// Self-service must prove knowledge of the current password; an
		// admin changing someone else's skips the check.
		if id == actor.ID {
			if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
				return domain.ErrWrongPassword
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)

		tx.Notify(domain.NotifySecurity, "Password changed for user %s", user.Name)
		return nil
	})
}

func (s *UserService) ResetPassword(ctx context.Context, actor domain.Actor, id int64, next string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if len(next) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	return s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(id)
		if user == nil {
			return domain.ErrUserNotFound
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)

		tx.Notify(domain.NotifySecurity, "Password reset by admin for user %s", user.Name)
		return nil
	})
}

func (s *UserService) Profile(ctx context.Context, actor domain.Actor) (*domain.PublicUser, error) {
	var profile *domain.PublicUser
	s.store.View(func(data *store.Data) {
		if u := data.FindUser(actor.ID); u != nil {
			p := u.Public()
			profile = &p
		}
	})
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, update ports.ProfileUpdate) (*domain.PublicUser, error) {
	var updated domain.PublicUser
	err := s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(actor.ID)
		if user == nil {
			return domain.ErrUserNotFound
		}
		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Language != nil {
			user.Language = *update.Language
		}
		tx.Notify(domain.NotifyInfo, "Profile updated for %s", user.Name)
		updated = user.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *UserService) SetLanguage(ctx context.Context, actor domain.Actor, language string) error {
	return s.store.Update(func(tx *store.Tx) error {
		user := tx.Data.FindUser(actor.ID)
		if user == nil {
			return domain.ErrUserNotFound
		}
		user.Language = language
		return nil
	})
}
