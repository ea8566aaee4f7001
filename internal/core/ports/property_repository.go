package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// SearchFilter holds the optional, AND-combined property search predicates.
// Zero values mean "no constraint". Price bounds are inclusive.
type SearchFilter struct {
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType domain.PropertyType
	RentalType   domain.RentalType
}

// PropertyRepository defines persistence for rental listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context) ([]*domain.Property, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
}
