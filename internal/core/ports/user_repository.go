package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts. It is shared by the
// auth service (register/login/verify) and the user service (CRUD).
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned id.
	// Returns domain.ErrUserExists when the email or username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail matches value against either unique column.
	FindByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update persists the full record; callers fetch, patch, then save.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
