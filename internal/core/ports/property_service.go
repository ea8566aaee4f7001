package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// CreatePropertyInput carries a validated new listing. Enum fields arrive
// already normalized to canonical casing by the transport mapper.
type CreatePropertyInput struct {
	Title        string
	Description  string
	RentalType   string
	Price        float64
	Location     string
	PropertyType string
}

// UpdatePropertyInput is a partial patch: nil fields are left untouched.
// There is deliberately no OwnerID field — ownership is immutable.
type UpdatePropertyInput struct {
	Title        *string
	Description  *string
	RentalType   *string
	Price        *float64
	Location     *string
	PropertyType *string
}

// SearchPropertyInput holds the raw, optional search filters.
type SearchPropertyInput struct {
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
	RentalType   string
}

// PropertyView is a listing optionally enriched with its owner's profile.
// Owner is absent when the caller sent no token or the profile fetch failed;
// enrichment is best-effort for properties.
type PropertyView struct {
	domain.Property
	Owner *domain.UserProfile `json:"owner,omitempty"`
}

// PropertyService exposes listing CRUD and search. Read methods accept the
// inbound Authorization header so they can forward it when enriching; an
// empty header skips enrichment entirely.
type PropertyService interface {
	ListAll(ctx context.Context, authorizationHeader string) ([]PropertyView, error)
	Search(ctx context.Context, in SearchPropertyInput, authorizationHeader string) ([]PropertyView, error)
	GetByID(ctx context.Context, id int64, authorizationHeader string) (*PropertyView, error)
	// GetProperty returns the bare record with no enrichment. The favorite
	// service uses it to validate that a referenced property exists.
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	Create(ctx context.Context, in CreatePropertyInput, caller domain.Identity, authorizationHeader string) (*PropertyView, error)
	Update(ctx context.Context, id int64, in UpdatePropertyInput, caller domain.Identity, authorizationHeader string) (*PropertyView, error)
	Delete(ctx context.Context, id int64, caller domain.Identity) error
}
