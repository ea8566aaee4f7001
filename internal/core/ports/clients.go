package ports

import (
	"context"

	"github.com/rentora/rental-system/internal/core/domain"
)

// IdentityVerifier exchanges a raw Authorization header value for an identity
// claim. Implementations collapse every failure mode into a single
// unauthenticated outcome; only the public message differs ("Token not
// provided" for header-shape problems, "Invalid or expired token" when the
// verify call itself fails).
type IdentityVerifier interface {
	Verify(ctx context.Context, authorizationHeader string) (*domain.Identity, error)
}

// ProfileFetcher retrieves a user's public profile from the user service,
// forwarding the caller's Authorization header verbatim. All failures —
// missing header, network error, remote 404 — surface as the same
// domain.ErrProfileFetch; callers cannot tell "user does not exist" from
// "user service is down".
type ProfileFetcher interface {
	FetchUser(ctx context.Context, id int64, authorizationHeader string) (*domain.UserProfile, error)
}
