package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// RegisterInput carries a new account's credentials.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService owns the credential store and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.UserProfile, error)
	// Login returns a signed bearer token on success.
	Login(ctx context.Context, email, password string) (string, error)
	// VerifyToken validates a raw token (without the "Bearer " prefix) and
	// resolves it to the live identity behind it.
	VerifyToken(ctx context.Context, token string) (*domain.Identity, error)
}
