package session

import (
	"context"
	"errors"
	"time"
)

const RoleAdmin = "ADMIN"

// Session is the server-side record behind one logged-in browser: the backend
// bearer token plus the display name and role returned by the login call.
type Session struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsAdmin() bool { return s != nil && s.Role == RoleAdmin }

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
}

var ErrSessionNotFound = errors.New("session not found")

type ctxKey int

const sessionKey ctxKey = 0

type ctxSession struct {
	id   string
	sess *Session
}

// NewContext attaches the resolved session to a request context so the
// backend transport can read the token without reaching into shared state.
func NewContext(ctx context.Context, id string, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, ctxSession{id: id, sess: s})
}

// FromContext returns the session ID and session carried by ctx, if any.
func FromContext(ctx context.Context) (string, *Session, bool) {
	cs, ok := ctx.Value(sessionKey).(ctxSession)
	if !ok {
		return "", nil, false
	}
	return cs.id, cs.sess, true
}
