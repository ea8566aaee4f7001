// Package httpclient holds the outbound HTTP clients the services use to
// talk to each other: identity verification against the auth service and
// profile lookups against the user service. Both are plain pass-through
// clients — no retries, no caching, one synchronous call per invocation.
package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/api/metrics"
	"github.com/rentora/rental-system/internal/core/domain"
)

// bearerPrefix is matched case-sensitively. Lower-case "bearer" used to be
// accepted by one service and not the others; strict matching everywhere is
// the canonical behavior now.
const bearerPrefix = "Bearer "

const defaultTimeout = 5 * time.Second

// IdentityClient verifies bearer tokens against the auth service. Every
// failure collapses to a single unauthenticated outcome; the public message
// distinguishes only malformed headers from failed verification.
type IdentityClient struct {
	baseURL string
	hc      *http.Client
	logger  zerolog.Logger
}

// NewIdentityClient creates a client targeting the auth service base URL.
// A nil http.Client gets a default with a 5s timeout; token expiry therefore
// surfaces as the same unauthenticated failure as a bad token.
func NewIdentityClient(baseURL string, hc *http.Client, logger zerolog.Logger) *IdentityClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &IdentityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		logger:  logger,
	}
}

type verifyResponse struct {
	User *struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Verify exchanges an Authorization header value for an identity claim.
// Header absent, scheme not exactly "Bearer ", or empty token → "Token not
// provided". Any failure of the verify call itself — network error, non-2xx,
// unusable body — → "Invalid or expired token".
func (c *IdentityClient) Verify(ctx context.Context, authorizationHeader string) (*domain.Identity, error) {
	token, ok := bearerToken(authorizationHeader)
	if !ok {
		metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrTokenNotProvided
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/verify", nil)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidToken.WithCause(err)
	}
	req.Header.Set("Authorization", bearerPrefix+token)

	start := time.Now()
	resp, err := c.hc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("auth").Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn().Err(err).Msg("token verification call failed")
		metrics.TokenVerificationsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidToken.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.TokenVerificationsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidToken
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.User == nil || body.User.ID == 0 {
		metrics.TokenVerificationsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidToken.WithCause(err)
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return &domain.Identity{
		ID:    body.User.ID,
		Email: body.User.Email,
		Role:  domain.NormalizeRole(body.User.Role),
	}, nil
}

// bearerToken extracts the token from an Authorization header value,
// requiring the exact "Bearer " scheme prefix.
func bearerToken(header string) (string, bool) {
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
