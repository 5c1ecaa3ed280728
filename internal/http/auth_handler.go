package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// AuthClient is the slice of the backend surface the auth flows use.
type AuthClient interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.TokenResponse, error)
	Register(ctx context.Context, reg backend.Registration) error
}

// AuthHandler runs the login, register and logout flows. Login exchanges
// credentials for a backend token and keeps it server-side under a fresh
// session ID handed to the browser as a cookie; logout (and a 401/403 from
// the backend) deletes the session and its panel state.
type AuthHandler struct {
	client AuthClient
	store  session.Store
	panels *Panels
}

func NewAuthHandler(client AuthClient, store session.Store, panels *Panels) *AuthHandler {
	return &AuthHandler{client: client, store: store, panels: panels}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}

	token, err := h.client.Login(r.Context(), backend.Credentials(creds))
	if err != nil {
		respondOperationError(w, err)
		return
	}

	id := uuid.NewString()
	s := &session.Session{
		Token:     token.Token,
		Name:      token.Name,
		Role:      token.Role,
		CreatedAt: time.Now(),
	}
	if err := h.store.Set(r.Context(), id, s); err != nil {
		respondError(w, http.StatusInternalServerError, "session_store_failed", "could not persist session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"name": s.Name, "role": s.Role})
		return
	}
	http.Redirect(w, r, "/pedidos", http.StatusSeeOther)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg backend.Registration
	if wantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	} else {
		reg = backend.Registration{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
	}
	if reg.Email == "" || reg.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	if err := h.client.Register(r.Context(), reg); err != nil {
		respondOperationError(w, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, _, ok := session.FromContext(r.Context()); ok {
		if err := h.store.Delete(r.Context(), id); err == nil {
			h.panels.Drop(id)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) credentials(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var creds loginRequest
	if wantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return creds, false
		}
	} else {
		creds.Email = r.FormValue("email")
		creds.Password = r.FormValue("password")
	}
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return creds, false
	}
	return creds, true
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
