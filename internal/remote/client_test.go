package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

func newServer(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api"), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_Success(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not send a bearer token")
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ann@example.com" || body["password"] != "secret1" {
			t.Errorf("unexpected body %v", body)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "tok",
			"token_type":   "bearer",
			"user":         map[string]any{"id": "u1", "email": "ann@example.com", "full_name": "Ann"},
		})
	})

	res, err := c.WithToken("stale").Login(context.Background(), "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessToken != "tok" || res.User.FullName != "Ann" {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestLogin_FailureCarriesServerMessage(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect email or password"})
	})

	_, err := c.Login(context.Background(), "ann@example.com", "wrong")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected auth error, got %v", err)
	}
	var re *Error
	if !errors.As(err, &re) || re.Message != "incorrect email or password" || re.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected error detail: %+v", re)
	}
}

func TestFailureMessage_DetailBody(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
	})

	_, err := c.Register(context.Background(), "ann@example.com", "secret1", "Ann")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
	var re *Error
	if !errors.As(err, &re) || re.Message != "Email already registered" {
		t.Fatalf("unexpected message %q", re.Message)
	}
}

func TestFailureMessage_EmptyBodyUsesStatusText(t *testing.T) {
	if got := failureMessage(http.StatusNotFound, nil); got != "not found" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := failureMessage(599, []byte("garbage")); got != "request failed with status 599" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRegister_ValidatesBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	_, err := c.Register(context.Background(), "not-an-email", "secret1", "Ann")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("no request must be sent for invalid input")
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).WithToken("t").ListClients(context.Background(), "")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !IsRetryable(err) || KindOf(err) != KindNetwork {
		t.Fatalf("network errors must be retryable")
	}
}

func TestListClients_SendsTokenAndFilter(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.URL.Query().Get("status_filter"); got != "has_debt" {
			t.Errorf("unexpected filter %q", got)
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "c1", "first_name": "Ann", "debt": 10, "action_status": map[string]bool{"made_order": true}},
		})
	})

	got, err := c.WithToken("tok").ListClients(context.Background(), "has_debt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !got[0].ActionStatus.Has("made_order") || got[0].Debt != 10 {
		t.Fatalf("unexpected clients %+v", got)
	}
}

func TestWithToken_DoesNotMutateReceiver(t *testing.T) {
	base := New("http://example.invalid")
	bound := base.WithToken("tok")
	if base.token != "" || bound.token != "tok" {
		t.Fatalf("WithToken must return an independent copy")
	}
}

func TestUpdateClient_SendsOnlyProvidedFields(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/clients/c1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if len(body) != 1 || body["debt"] != float64(0) {
			t.Errorf("unexpected body %s", raw)
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": "c1"})
	})

	zero := 0.0
	if _, err := c.UpdateClient(context.Background(), "c1", ports.ClientPatch{Debt: &zero}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateClient_EmptyPatchRejectedLocally(t *testing.T) {
	c := New("http://example.invalid")
	_, err := c.UpdateClient(context.Background(), "c1", ports.ClientPatch{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateActionStatus_RejectsBadKeyLocally(t *testing.T) {
	c := New("http://example.invalid")
	_, err := c.UpdateActionStatus(context.Background(), "c1", domain.ActionStatusBitmap{"Bad-Key": true})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteClient_NotFound(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
	})

	err := c.DeleteClient(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if errors.Is(err, domain.ErrConflict) {
		t.Fatalf("not found must not match conflict")
	}
}

func TestCreateActionStatusType_Conflict(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "status type already exists"})
	})

	_, err := c.CreateActionStatusType(context.Background(), ports.ActionStatusTypeInput{Name: "Call", Key: "call"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestStatistics_DecodesFlatShape(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"total_clients": 3, "has_debt": 1, "made_order": 2})
	})

	s, err := c.Statistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalClients != 3 || s.HasDebt != 1 || s.Count("made_order") != 2 {
		t.Fatalf("unexpected statistics %+v", s)
	}
}

func TestServerErrorKind(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	})

	_, err := c.ListReports(context.Background())
	if KindOf(err) != KindServer {
		t.Fatalf("expected server kind, got %v", err)
	}
	if IsRetryable(err) {
		t.Fatalf("server errors are not retryable")
	}
}
