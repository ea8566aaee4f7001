package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// UpdateUserInput is a partial patch: nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *string
}

// UserService exposes user CRUD gated by the caller's resolved identity.
// Update and Delete enforce owner-or-admin; changing a role additionally
// requires the caller to be an admin.
type UserService interface {
	List(ctx context.Context) ([]*domain.UserProfile, error)
	GetByID(ctx context.Context, id int64) (*domain.UserProfile, error)
	FindByUsernameOrEmail(ctx context.Context, value string) (*domain.UserProfile, error)
	Update(ctx context.Context, id int64, caller domain.Identity, in UpdateUserInput) (*domain.UserProfile, error)
	Delete(ctx context.Context, id int64, caller domain.Identity) error
}
