package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

type stubUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, value string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == value || u.Email == value {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubLimiter struct {
	allowed bool
	calls   int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	l.calls++
	return l.allowed, nil
}

func newAuthService(repo ports.UserRepository, limiter LoginLimiter) *AuthService {
	return NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	profile, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if profile.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, profile.Role)
	}

	stored := repo.users[profile.ID]
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	in := ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pass123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in.Username = "bob2"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginVerify_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	profile, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	identity, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.ID != profile.ID {
		t.Fatalf("expected id %d, got %d", profile.ID, identity.ID)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "correct1",
	})

	if _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false}
	svc := newAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin",
		Email:    "erin@example.com",
		Password: "correct1",
	})

	if _, err := svc.Login(context.Background(), "erin@example.com", "correct1"); !errors.Is(err, domain.ErrTooManyLogins) {
		t.Fatalf("expected ErrTooManyLogins, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected 1 limiter call, got %d", limiter.calls)
	}
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.VerifyToken(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_VerifyToken_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	profile, _ := svc.Register(context.Background(), ports.RegisterInput{
		Username: "frank",
		Email:    "frank@example.com",
		Password: "pass123",
	})
	token, err := svc.Login(context.Background(), "frank@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := repo.Delete(context.Background(), profile.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = svc.VerifyToken(context.Background(), token)
	var de *domain.Error
	if !errors.As(err, &de) || de.Status != 401 || de.Message != "User not found" {
		t.Fatalf("expected 401 User not found, got %v", err)
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	signer := NewAuthService(repo, nil, "other-secret", time.Hour, zerolog.Nop())
	verifier := newAuthService(repo, nil)

	_, _ = signer.Register(context.Background(), ports.RegisterInput{
		Username: "gail",
		Email:    "gail@example.com",
		Password: "pass123",
	})
	token, err := signer.Login(context.Background(), "gail@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifier.VerifyToken(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
