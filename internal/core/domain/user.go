package domain

import (
	"strings"
	"time"
)

// Canonical role values. Tokens and payloads may arrive in any casing;
// NormalizeRole is applied at every boundary so comparisons stay exact.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// NormalizeRole maps any casing of a role to its canonical upper-case form.
// Unknown values pass through upper-cased so they fail role checks instead
// of silently becoming USER.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the persisted account record, owned by the auth/user store.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile returns the public view of the user, safe to hand to other services.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserProfile is a user without credentials, as served by GET /users/:id and
// embedded into enriched property and favorite views.
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the claim produced by token verification. It lives for one
// request and is never persisted by downstream services.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
