package middleware

import (
	"context"
	"strings"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// LocalVerifier adapts the auth service's own token verification to the
// IdentityVerifier interface, so the auth service can guard its routes
// without a network hop to itself. Its header-shape message deliberately
// differs from the remote client's: this service reports
// "Authorization header missing or in wrong format".
type LocalVerifier struct {
	auth ports.AuthService
}

func NewLocalVerifier(auth ports.AuthService) *LocalVerifier {
	return &LocalVerifier{auth: auth}
}

func (v *LocalVerifier) Verify(ctx context.Context, authorizationHeader string) (*domain.Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorizationHeader, prefix) {
		return nil, domain.ErrAuthHeaderFormat
	}
	token := authorizationHeader[len(prefix):]
	if token == "" {
		return nil, domain.ErrAuthHeaderFormat
	}
	return v.auth.VerifyToken(ctx, token)
}
