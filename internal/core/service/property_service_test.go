package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

type stubPropertyRepo struct {
	nextID     int64
	properties map[int64]*domain.Property
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[int64]*domain.Property)}
}

func cloneProperty(p *domain.Property) *domain.Property {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	r.nextID++
	created := cloneProperty(p)
	created.ID = r.nextID
	r.properties[created.ID] = cloneProperty(created)
	return created, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return cloneProperty(p), nil
}

func (r *stubPropertyRepo) List(_ context.Context) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0, len(r.properties))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.properties[id]; ok {
			out = append(out, cloneProperty(p))
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Property, error) {
	all, _ := r.List(ctx)
	out := []*domain.Property{}
	for _, p := range all {
		if filter.Location != "" && p.Location != filter.Location {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.PropertyType != "" && p.PropertyType != filter.PropertyType {
			continue
		}
		if filter.RentalType != "" && p.RentalType != filter.RentalType {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.properties[p.ID] = cloneProperty(p)
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

// stubProfiles serves canned profiles; ids in failFor return ErrProfileFetch.
type stubProfiles struct {
	calls   int
	failFor map[int64]bool
}

func (s *stubProfiles) FetchUser(_ context.Context, id int64, header string) (*domain.UserProfile, error) {
	s.calls++
	if header == "" {
		return nil, domain.ErrProfileFetch
	}
	if s.failFor[id] {
		return nil, domain.ErrProfileFetch
	}
	return &domain.UserProfile{ID: id, Username: "owner", Role: domain.RoleUser}, nil
}

func newPropertyService(repo ports.PropertyRepository, profiles ports.ProfileFetcher) *PropertyService {
	return NewPropertyService(repo, profiles, nil, zerolog.Nop())
}

func seedProperty(r *stubPropertyRepo, ownerID int64, location string, price float64) *domain.Property {
	p, _ := r.Create(context.Background(), &domain.Property{
		OwnerID:      ownerID,
		Title:        "listing",
		RentalType:   domain.RentalMonthly,
		Price:        price,
		Location:     location,
		PropertyType: domain.PropertyApartment,
		CreatedAt:    time.Now().UTC(),
	})
	return p
}

func floatPtr(f float64) *float64 { return &f }

func TestPropertyService_Create_StampsOwner(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := newPropertyService(repo, &stubProfiles{})

	caller := domain.Identity{ID: 7, Role: domain.RoleUser}
	view, err := svc.Create(context.Background(), ports.CreatePropertyInput{
		Title:        "Sea view flat",
		RentalType:   "monthly",
		Price:        1200,
		Location:     "Lisbon",
		PropertyType: "apartment",
	}, caller, "Bearer tok")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.OwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", view.OwnerID)
	}
	if view.RentalType != domain.RentalMonthly || view.PropertyType != domain.PropertyApartment {
		t.Fatalf("enums not normalized: %s %s", view.RentalType, view.PropertyType)
	}
	if view.Owner == nil || view.Owner.ID != 7 {
		t.Fatalf("expected enriched owner, got %+v", view.Owner)
	}
}

func TestPropertyService_Create_MissingHeader(t *testing.T) {
	svc := newPropertyService(newStubPropertyRepo(), &stubProfiles{})

	_, err := svc.Create(context.Background(), ports.CreatePropertyInput{
		Title:        "x",
		RentalType:   "monthly",
		Price:        1,
		Location:     "y",
		PropertyType: "house",
	}, domain.Identity{ID: 1}, "")
	if !errors.Is(err, domain.ErrAuthHeaderRequired) {
		t.Fatalf("expected ErrAuthHeaderRequired, got %v", err)
	}
}

func TestPropertyService_Create_InvalidEnums(t *testing.T) {
	svc := newPropertyService(newStubPropertyRepo(), &stubProfiles{})
	caller := domain.Identity{ID: 1}

	_, err := svc.Create(context.Background(), ports.CreatePropertyInput{
		RentalType: "weekly", PropertyType: "house",
	}, caller, "Bearer tok")
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "Invalid rental type" {
		t.Fatalf("expected Invalid rental type, got %v", err)
	}

	_, err = svc.Create(context.Background(), ports.CreatePropertyInput{
		RentalType: "monthly", PropertyType: "castle",
	}, caller, "Bearer tok")
	if !errors.As(err, &de) || de.Message != "Invalid property type" {
		t.Fatalf("expected Invalid property type, got %v", err)
	}
}

func TestPropertyService_Create_UnknownCaller(t *testing.T) {
	profiles := &stubProfiles{failFor: map[int64]bool{5: true}}
	svc := newPropertyService(newStubPropertyRepo(), profiles)

	_, err := svc.Create(context.Background(), ports.CreatePropertyInput{
		RentalType: "daily", PropertyType: "villa",
	}, domain.Identity{ID: 5}, "Bearer tok")
	if !errors.Is(err, domain.ErrProfileFetch) {
		t.Fatalf("expected ErrProfileFetch, got %v", err)
	}
}

func TestPropertyService_Update_PartialPatch(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := newPropertyService(repo, &stubProfiles{})
	p := seedProperty(repo, 3, "Porto", 900)

	caller := domain.Identity{ID: 3, Role: domain.RoleUser}
	view, err := svc.Update(context.Background(), p.ID, ports.UpdatePropertyInput{
		Price: floatPtr(950),
	}, caller, "Bearer tok")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if view.Price != 950 {
		t.Fatalf("expected price 950, got %v", view.Price)
	}
	if view.Location != "Porto" || view.RentalType != domain.RentalMonthly {
		t.Fatalf("untouched fields changed: %+v", view.Property)
	}
	if view.OwnerID != 3 {
		t.Fatalf("owner must be immutable, got %d", view.OwnerID)
	}
}

func TestPropertyService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := newPropertyService(repo, &stubProfiles{})
	p := seedProperty(repo, 3, "Porto", 900)

	caller := domain.Identity{ID: 4, Role: domain.RoleUser}
	_, err := svc.Update(context.Background(), p.ID, ports.UpdatePropertyInput{Price: floatPtr(1)}, caller, "Bearer tok")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPropertyService_Update_NotFoundBeforeForbidden(t *testing.T) {
	svc := newPropertyService(newStubPropertyRepo(), &stubProfiles{})

	caller := domain.Identity{ID: 4, Role: domain.RoleUser}
	_, err := svc.Update(context.Background(), 42, ports.UpdatePropertyInput{}, caller, "Bearer tok")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyService_Delete_AdminOverride(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := newPropertyService(repo, &stubProfiles{})
	p := seedProperty(repo, 3, "Porto", 900)

	admin := domain.Identity{ID: 99, Role: domain.RoleAdmin}
	if err := svc.Delete(context.Background(), p.ID, admin); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), p.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected property gone, got %v", err)
	}
}

func TestPropertyService_ListAll_EnrichmentDegrades(t *testing.T) {
	repo := newStubPropertyRepo()
	profiles := &stubProfiles{failFor: map[int64]bool{2: true}}
	svc := newPropertyService(repo, profiles)

	seedProperty(repo, 1, "Lisbon", 1000)
	seedProperty(repo, 2, "Porto", 800)

	views, err := svc.ListAll(context.Background(), "Bearer tok")
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Owner == nil || views[0].Owner.ID != 1 {
		t.Fatalf("expected first item enriched, got %+v", views[0].Owner)
	}
	if views[1].Owner != nil {
		t.Fatalf("expected second item bare after failed fetch, got %+v", views[1].Owner)
	}
}

func TestPropertyService_ListAll_NoTokenSkipsEnrichment(t *testing.T) {
	repo := newStubPropertyRepo()
	profiles := &stubProfiles{}
	svc := newPropertyService(repo, profiles)

	seedProperty(repo, 1, "Lisbon", 1000)

	views, err := svc.ListAll(context.Background(), "")
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if views[0].Owner != nil {
		t.Fatalf("expected no enrichment without token")
	}
	if profiles.calls != 0 {
		t.Fatalf("expected no fetch calls, got %d", profiles.calls)
	}
}

func TestPropertyService_Search_Filters(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := newPropertyService(repo, &stubProfiles{})

	seedProperty(repo, 1, "Lisbon", 1000)
	seedProperty(repo, 1, "Porto", 500)

	views, err := svc.Search(context.Background(), ports.SearchPropertyInput{
		MinPrice: floatPtr(600),
	}, "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(views) != 1 || views[0].Location != "Lisbon" {
		t.Fatalf("unexpected search result: %+v", views)
	}
}

func TestPropertyService_Search_InvalidType(t *testing.T) {
	svc := newPropertyService(newStubPropertyRepo(), &stubProfiles{})

	_, err := svc.Search(context.Background(), ports.SearchPropertyInput{PropertyType: "boat"}, "")
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "Invalid property type" {
		t.Fatalf("expected Invalid property type, got %v", err)
	}
}
