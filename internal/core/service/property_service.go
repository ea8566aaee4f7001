package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/api/metrics"
	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/enrich"
	"github.com/rentora/rental-system/internal/core/ports"
)

// PropertyService implements listing CRUD, search and best-effort owner
// enrichment. Enrichment never fails a property request: items whose owner
// fetch fails are returned bare.
type PropertyService struct {
	repo     ports.PropertyRepository
	profiles ports.ProfileFetcher
	enricher enrich.Strategy[*domain.UserProfile]
	logger   zerolog.Logger
}

// NewPropertyService wires the service. A nil enricher falls back to the
// sequential strategy, matching the one-call-per-item default.
func NewPropertyService(repo ports.PropertyRepository, profiles ports.ProfileFetcher, enricher enrich.Strategy[*domain.UserProfile], logger zerolog.Logger) *PropertyService {
	if enricher == nil {
		enricher = enrich.Sequential[*domain.UserProfile]{}
	}
	return &PropertyService{repo: repo, profiles: profiles, enricher: enricher, logger: logger}
}

func (s *PropertyService) ListAll(ctx context.Context, authHeader string) ([]ports.PropertyView, error) {
	properties, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, properties, authHeader), nil
}

func (s *PropertyService) Search(ctx context.Context, in ports.SearchPropertyInput, authHeader string) ([]ports.PropertyView, error) {
	filter := ports.SearchFilter{
		Location: in.Location,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	}
	if in.PropertyType != "" {
		pt, ok := domain.ParsePropertyType(in.PropertyType)
		if !ok {
			return nil, domain.Validation("Invalid property type")
		}
		filter.PropertyType = pt
	}
	if in.RentalType != "" {
		rt, ok := domain.ParseRentalType(in.RentalType)
		if !ok {
			return nil, domain.Validation("Invalid rental type")
		}
		filter.RentalType = rt
	}

	properties, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, properties, authHeader), nil
}

func (s *PropertyService) GetByID(ctx context.Context, id int64, authHeader string) (*ports.PropertyView, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.enrichOne(ctx, property, authHeader)
	return &view, nil
}

// GetProperty returns the bare record, no enrichment. Used by the favorite
// service to validate references.
func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stamps the owner from the verified caller; a client-supplied owner
// id is never trusted. The caller's profile is fetched first so a listing
// can't be created for an identity the user service doesn't know.
func (s *PropertyService) Create(ctx context.Context, in ports.CreatePropertyInput, caller domain.Identity, authHeader string) (*ports.PropertyView, error) {
	if authHeader == "" {
		return nil, domain.ErrAuthHeaderRequired
	}

	rentalType, ok := domain.ParseRentalType(in.RentalType)
	if !ok {
		return nil, domain.Validation("Invalid rental type")
	}
	propertyType, ok := domain.ParsePropertyType(in.PropertyType)
	if !ok {
		return nil, domain.Validation("Invalid property type")
	}

	if _, err := s.profiles.FetchUser(ctx, caller.ID, authHeader); err != nil {
		return nil, err
	}

	property := &domain.Property{
		OwnerID:      caller.ID,
		Title:        in.Title,
		Description:  in.Description,
		RentalType:   rentalType,
		Price:        in.Price,
		Location:     in.Location,
		PropertyType: propertyType,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, property)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("property_id", created.ID).Int64("owner_id", caller.ID).Msg("property created")

	view := s.enrichOne(ctx, created, authHeader)
	return &view, nil
}

// Update applies a partial patch after the owner-or-admin check. Not-found
// wins over forbidden. OwnerID is immutable.
func (s *PropertyService) Update(ctx context.Context, id int64, in ports.UpdatePropertyInput, caller domain.Identity, authHeader string) (*ports.PropertyView, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.OwnerID != caller.ID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		property.Title = *in.Title
	}
	if in.Description != nil {
		property.Description = *in.Description
	}
	if in.RentalType != nil {
		rt, ok := domain.ParseRentalType(*in.RentalType)
		if !ok {
			return nil, domain.Validation("Invalid rental type")
		}
		property.RentalType = rt
	}
	if in.Price != nil {
		property.Price = *in.Price
	}
	if in.Location != nil {
		property.Location = *in.Location
	}
	if in.PropertyType != nil {
		pt, ok := domain.ParsePropertyType(*in.PropertyType)
		if !ok {
			return nil, domain.Validation("Invalid property type")
		}
		property.PropertyType = pt
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("property_id", property.ID).Int64("caller_id", caller.ID).Msg("property updated")

	view := s.enrichOne(ctx, property, authHeader)
	return &view, nil
}

func (s *PropertyService) Delete(ctx context.Context, id int64, caller domain.Identity) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if property.OwnerID != caller.ID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, property.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("property_id", id).Int64("caller_id", caller.ID).Msg("property deleted")
	return nil
}

// enrichOne attaches the owner profile when a caller token is available.
// Fetch failures degrade to the bare record.
func (s *PropertyService) enrichOne(ctx context.Context, property *domain.Property, authHeader string) ports.PropertyView {
	view := ports.PropertyView{Property: *property}
	if authHeader == "" {
		metrics.EnrichmentTotal.WithLabelValues("property", "skipped").Inc()
		return view
	}

	owner, err := s.profiles.FetchUser(ctx, property.OwnerID, authHeader)
	if err != nil {
		s.logger.Warn().Err(err).Int64("property_id", property.ID).Int64("owner_id", property.OwnerID).Msg("owner enrichment failed")
		metrics.EnrichmentTotal.WithLabelValues("property", "degraded").Inc()
		return view
	}

	metrics.EnrichmentTotal.WithLabelValues("property", "enriched").Inc()
	view.Owner = owner
	return view
}

// enrichAll applies the per-item policy independently: one failed owner
// fetch leaves only that item bare. Without a token the whole list is
// returned unenriched.
func (s *PropertyService) enrichAll(ctx context.Context, properties []*domain.Property, authHeader string) []ports.PropertyView {
	views := make([]ports.PropertyView, len(properties))
	for i, p := range properties {
		views[i] = ports.PropertyView{Property: *p}
	}
	if authHeader == "" {
		metrics.EnrichmentTotal.WithLabelValues("property", "skipped").Add(float64(len(properties)))
		return views
	}

	ids := make([]int64, len(properties))
	for i, p := range properties {
		ids[i] = p.OwnerID
	}

	owners := s.enricher.Fetch(ctx, ids, func(ctx context.Context, ownerID int64) (*domain.UserProfile, error) {
		owner, err := s.profiles.FetchUser(ctx, ownerID, authHeader)
		if err != nil {
			s.logger.Warn().Err(err).Int64("owner_id", ownerID).Msg("owner enrichment failed")
			return nil, err
		}
		return owner, nil
	})

	for i := range views {
		if owner, ok := owners[views[i].OwnerID]; ok {
			metrics.EnrichmentTotal.WithLabelValues("property", "enriched").Inc()
			views[i].Owner = owner
		} else {
			metrics.EnrichmentTotal.WithLabelValues("property", "degraded").Inc()
		}
	}
	return views
}
