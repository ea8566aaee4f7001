package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

type stubFavoriteService struct {
	listFn   func(ctx context.Context, caller domain.Identity, header string) ([]ports.FavoriteView, error)
	getFn    func(ctx context.Context, id int64, caller domain.Identity, header string) (*ports.FavoriteView, error)
	addFn    func(ctx context.Context, caller domain.Identity, propertyID int64, header string) (*ports.FavoriteView, error)
	updateFn func(ctx context.Context, id int64, caller domain.Identity, propertyID int64, header string) (*ports.FavoriteView, error)
	removeFn func(ctx context.Context, id int64, caller domain.Identity) error
}

func (s *stubFavoriteService) List(ctx context.Context, caller domain.Identity, header string) ([]ports.FavoriteView, error) {
	return s.listFn(ctx, caller, header)
}

func (s *stubFavoriteService) GetByID(ctx context.Context, id int64, caller domain.Identity, header string) (*ports.FavoriteView, error) {
	return s.getFn(ctx, id, caller, header)
}

func (s *stubFavoriteService) Add(ctx context.Context, caller domain.Identity, propertyID int64, header string) (*ports.FavoriteView, error) {
	return s.addFn(ctx, caller, propertyID, header)
}

func (s *stubFavoriteService) Update(ctx context.Context, id int64, caller domain.Identity, propertyID int64, header string) (*ports.FavoriteView, error) {
	return s.updateFn(ctx, id, caller, propertyID, header)
}

func (s *stubFavoriteService) Remove(ctx context.Context, id int64, caller domain.Identity) error {
	return s.removeFn(ctx, id, caller)
}

func TestFavoriteHandler_Add_ForwardsHeaderAndCaller(t *testing.T) {
	stub := &stubFavoriteService{
		addFn: func(_ context.Context, caller domain.Identity, propertyID int64, header string) (*ports.FavoriteView, error) {
			if caller.ID != 1 || propertyID != 10 {
				t.Fatalf("unexpected args: %d %d", caller.ID, propertyID)
			}
			if header != "Bearer tok" {
				t.Fatalf("expected forwarded header, got %q", header)
			}
			return &ports.FavoriteView{Favorite: domain.Favorite{ID: 1, UserID: 1, PropertyID: 10}}, nil
		},
	}
	h := NewFavoriteHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/favorites", `{"propertyId":10}`)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer tok")
	c.Set("identity", domain.Identity{ID: 1, Role: domain.RoleUser})

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestFavoriteHandler_Add_MissingPropertyID(t *testing.T) {
	h := NewFavoriteHandler(&stubFavoriteService{})

	c, _ := newTestContext(t, http.MethodPost, "/favorites", `{}`)
	c.Set("identity", domain.Identity{ID: 1, Role: domain.RoleUser})

	err := h.Add(c)
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "Validation failed" {
		t.Fatalf("expected Validation failed, got %v", err)
	}
}

func TestFavoriteHandler_Add_DuplicatePropagates(t *testing.T) {
	stub := &stubFavoriteService{
		addFn: func(context.Context, domain.Identity, int64, string) (*ports.FavoriteView, error) {
			return nil, domain.ErrDuplicateFavorite
		},
	}
	h := NewFavoriteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/favorites", `{"propertyId":10}`)
	c.Set("identity", domain.Identity{ID: 1, Role: domain.RoleUser})

	if err := h.Add(c); !errors.Is(err, domain.ErrDuplicateFavorite) {
		t.Fatalf("expected ErrDuplicateFavorite, got %v", err)
	}
}

func TestFavoriteHandler_Remove_Message(t *testing.T) {
	stub := &stubFavoriteService{
		removeFn: func(_ context.Context, id int64, caller domain.Identity) error {
			if id != 7 || caller.ID != 1 {
				t.Fatalf("unexpected args: %d %d", id, caller.ID)
			}
			return nil
		},
	}
	h := NewFavoriteHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/favorites/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("identity", domain.Identity{ID: 1, Role: domain.RoleUser})

	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
