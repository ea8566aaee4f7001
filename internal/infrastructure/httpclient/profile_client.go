package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentora/rental-system/internal/api/metrics"
	"github.com/rentora/rental-system/internal/core/domain"
)

// ProfileClient fetches public user profiles from the user service,
// forwarding the caller's Authorization header verbatim. A missing header,
// a network error and a remote 404 all report identically as
// domain.ErrProfileFetch — deliberate, if blunt: enrichment callers treat
// every cause the same way.
type ProfileClient struct {
	baseURL string
	hc      *http.Client
	logger  zerolog.Logger
}

func NewProfileClient(baseURL string, hc *http.Client, logger zerolog.Logger) *ProfileClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &ProfileClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		logger:  logger,
	}
}

func (c *ProfileClient) FetchUser(ctx context.Context, id int64, authorizationHeader string) (*domain.UserProfile, error) {
	if authorizationHeader == "" {
		return nil, domain.ErrProfileFetch
	}

	url := c.baseURL + "/users/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrProfileFetch.WithCause(err)
	}
	req.Header.Set("Authorization", authorizationHeader)

	start := time.Now()
	resp, err := c.hc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn().Err(err).Int64("user_id", id).Msg("profile fetch failed")
		return nil, domain.ErrProfileFetch.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrProfileFetch
	}

	var profile domain.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.ID == 0 {
		return nil, domain.ErrProfileFetch.WithCause(err)
	}

	profile.Role = domain.NormalizeRole(profile.Role)
	return &profile, nil
}
