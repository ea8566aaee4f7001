package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// One router instance serves both cases: the prometheus middleware registers
// collectors globally, so building a second gateway in the same process
// would collide.
func TestGatewayRouter_Proxying(t *testing.T) {
	type seen struct{ path, header string }
	record := make(chan seen, 1)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record <- seen{path: r.URL.Path, header: r.Header.Get("Authorization")}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	down := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	down.Close()

	e, err := NewGatewayRouter(GatewayTargets{
		AuthServiceURL:     upstream.URL,
		UserServiceURL:     down.URL,
		PropertyServiceURL: upstream.URL,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGatewayRouter returned error: %v", err)
	}

	cases := []struct {
		inbound  string
		upstream string
	}{
		{"/api/properties", "/properties"},
		{"/api/properties/5", "/properties/5"},
		{"/api/favorites", "/favorites"},
		{"/api/auth/login", "/auth/login"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.inbound, nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.inbound, rec.Code)
		}
		got := <-record
		if got.path != tc.upstream {
			t.Fatalf("%s: expected upstream path %s, got %s", tc.inbound, tc.upstream, got.path)
		}
		if got.header != "Bearer tok" {
			t.Fatalf("%s: Authorization header not forwarded", tc.inbound)
		}
	}

	// user service is unreachable; the proxy reports a bad gateway
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 from dead upstream, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Bad gateway") {
		t.Fatalf("expected stable bad gateway body, got %s", rec.Body.String())
	}
}
