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

func seedUser(r *stubUserRepo, username, email, role string) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	return u
}

func strPtr(s string) *string { return &s }

func TestUserService_Update_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "alice", "alice@example.com", domain.RoleUser)

	caller := domain.Identity{ID: u.ID, Role: domain.RoleUser}
	profile, err := svc.Update(context.Background(), u.ID, caller, ports.UpdateUserInput{
		Username: strPtr("alice2"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Username != "alice2" {
		t.Fatalf("expected username alice2, got %s", profile.Username)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("untouched field changed: %s", profile.Email)
	}
}

func TestUserService_Update_OtherUserForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "bob", "bob@example.com", domain.RoleUser)

	caller := domain.Identity{ID: u.ID + 100, Role: domain.RoleUser}
	_, err := svc.Update(context.Background(), u.ID, caller, ports.UpdateUserInput{Username: strPtr("x")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Update_AdminOverride(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "carol", "carol@example.com", domain.RoleUser)

	admin := domain.Identity{ID: u.ID + 1, Role: domain.RoleAdmin}
	profile, err := svc.Update(context.Background(), u.ID, admin, ports.UpdateUserInput{
		Role: strPtr("admin"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Role != domain.RoleAdmin {
		t.Fatalf("expected normalized ADMIN role, got %s", profile.Role)
	}
}

func TestUserService_Update_RoleChangeNeedsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "dave", "dave@example.com", domain.RoleUser)

	caller := domain.Identity{ID: u.ID, Role: domain.RoleUser}
	_, err := svc.Update(context.Background(), u.ID, caller, ports.UpdateUserInput{
		Role: strPtr(domain.RoleAdmin),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self role change, got %v", err)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "erin", "erin@example.com", domain.RoleUser)

	admin := domain.Identity{ID: u.ID + 1, Role: domain.RoleAdmin}
	_, err := svc.Update(context.Background(), u.ID, admin, ports.UpdateUserInput{
		Role: strPtr("SUPERUSER"),
	})
	var de *domain.Error
	if !errors.As(err, &de) || de.Message != "Invalid role" {
		t.Fatalf("expected Invalid role, got %v", err)
	}
}

// A non-owner probing a missing id must see 404, not 403.
func TestUserService_Update_NotFoundBeforeForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	caller := domain.Identity{ID: 1, Role: domain.RoleUser}
	_, err := svc.Update(context.Background(), 999, caller, ports.UpdateUserInput{Username: strPtr("x")})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "frank", "frank@example.com", domain.RoleUser)

	caller := domain.Identity{ID: u.ID, Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), u.ID, caller); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), u.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}

func TestUserService_Delete_OtherUserForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(repo, "gail", "gail@example.com", domain.RoleUser)

	caller := domain.Identity{ID: u.ID + 1, Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), u.ID, caller); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_FindByUsernameOrEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(repo, "henry", "henry@example.com", domain.RoleUser)

	byName, err := svc.FindByUsernameOrEmail(context.Background(), "henry")
	if err != nil {
		t.Fatalf("find by username failed: %v", err)
	}
	byMail, err := svc.FindByUsernameOrEmail(context.Background(), "henry@example.com")
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if byName.ID != byMail.ID {
		t.Fatalf("expected same user, got %d and %d", byName.ID, byMail.ID)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(repo, "u1", "u1@example.com", domain.RoleUser)
	seedUser(repo, "u2", "u2@example.com", domain.RoleAdmin)

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
}
