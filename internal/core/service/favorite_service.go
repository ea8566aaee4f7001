package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/api/metrics"
	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// propertyFinder is the slice of the property service the favorite service
// needs: a bare lookup to validate references and build enriched views.
type propertyFinder interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
}

// FavoriteService implements owner-scoped favorite CRUD. Enrichment here is
// mandatory, unlike properties: the joined property must exist and the user
// profile fetch must succeed, or the request fails.
type FavoriteService struct {
	repo       ports.FavoriteRepository
	properties propertyFinder
	profiles   ports.ProfileFetcher
	logger     zerolog.Logger
}

func NewFavoriteService(repo ports.FavoriteRepository, properties propertyFinder, profiles ports.ProfileFetcher, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, properties: properties, profiles: profiles, logger: logger}
}

func (s *FavoriteService) List(ctx context.Context, caller domain.Identity, authHeader string) ([]ports.FavoriteView, error) {
	favorites, err := s.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.FavoriteView, len(favorites))
	for i, f := range favorites {
		view, err := s.enrich(ctx, f, authHeader)
		if err != nil {
			return nil, err
		}
		views[i] = *view
	}
	return views, nil
}

func (s *FavoriteService) GetByID(ctx context.Context, id int64, caller domain.Identity, authHeader string) (*ports.FavoriteView, error) {
	favorite, err := s.repo.FindByIDAndUser(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, favorite, authHeader)
}

// Add creates a favorite after validating the property exists. The duplicate
// check is advisory; the unique index in the repository is what actually
// prevents a concurrent duplicate insert.
func (s *FavoriteService) Add(ctx context.Context, caller domain.Identity, propertyID int64, authHeader string) (*ports.FavoriteView, error) {
	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByUserAndProperty(ctx, caller.ID, propertyID); err == nil && existing != nil {
		metrics.FavoriteConflictsTotal.Inc()
		return nil, domain.ErrDuplicateFavorite
	}

	favorite := &domain.Favorite{
		UserID:     caller.ID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, favorite)
	if err != nil {
		if err == domain.ErrDuplicateFavorite {
			metrics.FavoriteConflictsTotal.Inc()
		}
		return nil, err
	}

	s.logger.Info().Int64("favorite_id", created.ID).Int64("user_id", caller.ID).Int64("property_id", propertyID).Msg("favorite added")
	return s.enrich(ctx, created, authHeader)
}

// Update re-points a favorite at another property, which must exist.
func (s *FavoriteService) Update(ctx context.Context, id int64, caller domain.Identity, propertyID int64, authHeader string) (*ports.FavoriteView, error) {
	favorite, err := s.repo.FindByIDAndUser(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	favorite.PropertyID = propertyID
	if err := s.repo.Update(ctx, favorite); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("favorite_id", favorite.ID).Int64("property_id", propertyID).Msg("favorite updated")
	return s.enrich(ctx, favorite, authHeader)
}

func (s *FavoriteService) Remove(ctx context.Context, id int64, caller domain.Identity) error {
	favorite, err := s.repo.FindByIDAndUser(ctx, id, caller.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, favorite.ID, caller.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("favorite_id", id).Int64("user_id", caller.ID).Msg("favorite removed")
	return nil
}

// enrich joins the property and the owning user. Both joins are hard
// requirements: a missing property propagates its not-found error and a
// failed profile fetch fails the request, a deliberately stricter contract
// than property enrichment.
func (s *FavoriteService) enrich(ctx context.Context, favorite *domain.Favorite, authHeader string) (*ports.FavoriteView, error) {
	property, err := s.properties.GetProperty(ctx, favorite.PropertyID)
	if err != nil {
		return nil, err
	}

	if authHeader == "" {
		return nil, domain.ErrAuthHeaderMissing
	}

	user, err := s.profiles.FetchUser(ctx, favorite.UserID, authHeader)
	if err != nil {
		metrics.EnrichmentTotal.WithLabelValues("favorite", "failed").Inc()
		return nil, err
	}

	metrics.EnrichmentTotal.WithLabelValues("favorite", "enriched").Inc()
	return &ports.FavoriteView{
		Favorite: *favorite,
		Property: property,
		User:     user,
	}, nil
}
