package ports

import (
	"context"

	"github.com/mannager/pos-system/internal/core/domain"
)

// LoginResult carries the signed identity token and the public view of
// the authenticated user.
type LoginResult struct {
	Token string
	User  domain.PublicUser
}

// AuthService verifies credentials and issues identity tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
