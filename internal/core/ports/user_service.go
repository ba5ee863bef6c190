package ports

import (
	"context"

	"github.com/mannager/pos-system/internal/core/domain"
)

// CreateUserInput creates an operator account. The role is always
// standard-user; only the bootstrap admin carries the admin role.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Language string
}

// UserUpdate is a shallow merge: only non-nil fields are applied. Setting
// Role requires the actor to be an admin.
type UserUpdate struct {
	Username *string
	Name     *string
	Role     *string
	Language *string
}

// ProfileUpdate lets a user change their own display fields.
type ProfileUpdate struct {
	Name     *string
	Language *string
}

// UserService manages operator accounts and their credentials.
type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.PublicUser, error)
	Update(ctx context.Context, actor domain.Actor, id int64, update UserUpdate) (*domain.PublicUser, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error

	// ChangePassword is self-service: the actor must present their current
	// password unless they are an admin changing someone else's.
	ChangePassword(ctx context.Context, actor domain.Actor, id int64, current, next string) error
	// ResetPassword is the admin-only variant with no current-password check.
	ResetPassword(ctx context.Context, actor domain.Actor, id int64, next string) error

	Profile(ctx context.Context, actor domain.Actor) (*domain.PublicUser, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, update ProfileUpdate) (*domain.PublicUser, error)
	SetLanguage(ctx context.Context, actor domain.Actor, language string) error
}

// NotificationService prunes the append-only event feed.
type NotificationService interface {
	ClearAll(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}
