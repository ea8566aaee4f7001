package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// FavoriteView is a favorite joined with its property and the owning user's
// profile. Unlike properties, favorite enrichment is mandatory: the property
// must exist and the user fetch must succeed, or the whole request fails.
type FavoriteView struct {
	domain.Favorite
	Property *domain.Property    `json:"property"`
	User     *domain.UserProfile `json:"user"`
}

// FavoriteService exposes owner-scoped favorite CRUD. Every method takes the
// caller's resolved identity; there is no admin override for favorites.
type FavoriteService interface {
	List(ctx context.Context, caller domain.Identity, authorizationHeader string) ([]FavoriteView, error)
	GetByID(ctx context.Context, id int64, caller domain.Identity, authorizationHeader string) (*FavoriteView, error)
	Add(ctx context.Context, caller domain.Identity, propertyID int64, authorizationHeader string) (*FavoriteView, error)
	Update(ctx context.Context, id int64, caller domain.Identity, propertyID int64, authorizationHeader string) (*FavoriteView, error)
	Remove(ctx context.Context, id int64, caller domain.Identity) error
}
