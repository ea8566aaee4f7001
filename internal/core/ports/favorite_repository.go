package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// FavoriteRepository defines persistence for favorites. Lookups are scoped by
// user id because favorites have no admin override: a user only ever sees
// their own rows.
type FavoriteRepository interface {
	// Create inserts a favorite and returns it with its assigned id.
	// Returns domain.ErrDuplicateFavorite when the (user, property) pair
	// already exists — the unique index makes this atomic.
	Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error)
	FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Favorite, error)
	FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Favorite, error)
	// Update persists a re-pointed favorite. Returns
	// domain.ErrDuplicateFavorite when the new pair collides.
	Update(ctx context.Context, f *domain.Favorite) error
	Delete(ctx context.Context, id, userID int64) error
}
