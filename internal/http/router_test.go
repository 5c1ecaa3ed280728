package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// panelFixture wires the full router against a fake USEGM backend, the way
// cmd/main does: expired backend sessions are torn down through the client's
// expiry handler.
func panelFixture(t *testing.T, upstream http.Handler) (http.Handler, session.Store) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore(0)
	var panels *Panels
	client := backend.NewClient(srv.URL, time.Second, func(ctx context.Context, sessionID string) {
		if err := store.Delete(ctx, sessionID); err == nil {
			panels.Drop(sessionID)
		}
	})
	panels = NewPanels(client, 10)

	pages, err := NewPages()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return NewRouter(client, store, panels, pages), store
}

func TestRouter_LoginThenListOrders(t *testing.T) {
	router, _ := panelFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/login":
			json.NewEncoder(w).Encode(backend.TokenResponse{Token: "jwt", Name: "Gabriel", Role: "ADMIN"})
		case "/api/v1/orders":
			if r.Header.Get("Authorization") != "Bearer jwt" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.Page[domain.Order]{
				Content:    []domain.Order{{ID: 1, Status: domain.StatusAberto}},
				TotalPages: 1,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	body := strings.NewReader(`{"email":"gabriel@usegm.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie after login")
	}

	req = httptest.NewRequest(http.MethodGet, "/panel/api/orders", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list orders: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var state OrderListState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(state.Orders) != 1 || state.Orders[0].ID != 1 {
		t.Errorf("expected the upstream order in the list, got %+v", state.Orders)
	}
}

func TestRouter_APIWithoutSession(t *testing.T) {
	router, _ := panelFixture(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panel/api/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestRouter_PageWithoutSessionRedirects(t *testing.T) {
	router, _ := panelFixture(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

// An expired backend token tears the local session down: the failing API call
// reports the backend's refusal, and the next page load redirects to /login.
func TestRouter_ExpiredBackendSession(t *testing.T) {
	router, store := panelFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Access Denied"})
	}))

	if err := store.Set(context.Background(), "sid-1", &session.Session{Token: "stale-jwt", Name: "Gabriel"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	cookie := &http.Cookie{Name: SessionCookie, Value: "sid-1"}

	req := httptest.NewRequest(http.MethodGet, "/panel/api/orders", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		// The list keeps its previous (empty) data; only the fetch failed.
		t.Logf("list response: %d %s", rec.Code, rec.Body)
	}
	if _, err := store.Get(context.Background(), "sid-1"); err == nil {
		t.Fatal("expected the session to be deleted after the backend refusal")
	}

	req = httptest.NewRequest(http.MethodGet, "/pedidos", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after session teardown, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRouter_DashboardCounts(t *testing.T) {
	router, store := panelFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("all") != "true" {
			t.Errorf("dashboard should request the full order set, got query %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(domain.Page[domain.Order]{
			Content: []domain.Order{
				{ID: 1, Status: domain.StatusAberto},
				{ID: 2, Status: domain.StatusAberto},
				{ID: 3, Status: domain.StatusCompleto},
			},
			TotalPages: 1,
		})
	}))

	if err := store.Set(context.Background(), "sid-1", &session.Session{Token: "jwt"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/panel/api/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var state DashboardState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if state.Counts[domain.StatusAberto] != 2 || state.Counts[domain.StatusCompleto] != 1 {
		t.Errorf("unexpected counts %+v", state.Counts)
	}
}

func TestRouter_NotFoundPage(t *testing.T) {
	router, _ := panelFixture(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected an HTML not-found page, got Content-Type %q", ct)
	}
}
