package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
	"github.com/crmdesk/crm-system/internal/infrastructure/http/handlers"
)

// Embedded nil interfaces make unexpected calls panic.
type routerAuth struct{ ports.AuthService }

func (routerAuth) ParseToken(_ context.Context, token string) (*ports.TokenClaims, error) {
	if token != "good" {
		return nil, domain.ErrUnauthenticated
	}
	return &ports.TokenClaims{UserID: "u1", TokenID: "j1"}, nil
}

type routerClients struct{ ports.ClientService }

func (routerClients) List(context.Context, string) ([]domain.Client, error) {
	return []domain.Client{}, nil
}

func (routerClients) Statistics(context.Context) (analytics.Statistics, error) {
	return analytics.Statistics{Actions: map[string]int{}}, nil
}

func (routerClients) Update(context.Context, string, ports.ClientPatch) (*domain.Client, error) {
	return nil, domain.ErrNothingToApply
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(Services{
		Auth:    routerAuth{},
		Clients: routerClients{},
	}, Options{
		Logger:     zerolog.Nop(),
		Readiness:  map[string]handlers.Check{"mongodb": func(context.Context) error { return nil }},
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("root: expected 200, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "CRM API Ready" {
		t.Fatalf("unexpected root body: %v", body)
	}

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(t, r, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/clients", "/api/clients/statistics", "/api/me", "/api/client-status-types", "/api/daily-reports"} {
		rec := do(t, r, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: expected 401, got %d", path, rec.Code)
		}
		rec = do(t, r, http.MethodGet, path, "bad", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s with bad token: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouter_AuthenticatedRequests(t *testing.T) {
	r := newTestRouter(t)

	if rec := do(t, r, http.MethodGet, "/api/clients?status_filter=all", "good", ""); rec.Code != http.StatusOK {
		t.Fatalf("clients: expected 200, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/api/clients/statistics", "good", ""); rec.Code != http.StatusOK {
		t.Fatalf("statistics must not be shadowed by /clients/:id, got %d", rec.Code)
	}

	rec := do(t, r, http.MethodPut, "/api/clients/c1", "good", "{}")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty update: expected 400, got %d", rec.Code)
	}
	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "no fields to update" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/nope", "good", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
