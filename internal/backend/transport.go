package backend

import (
	"context"
	"net/http"

	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// ExpiryHandler is invoked when the backend answers 401/403, before the error
// is returned to the caller. It is expected to tear the session down so the
// next page load lands on /login.
type ExpiryHandler func(ctx context.Context, sessionID string)

// Transport attaches the session's bearer token to every outgoing request and
// fires the expiry handler on an auth failure. Auth failures are terminal for
// the request: no retry is attempted.
type Transport struct {
	Base     http.RoundTripper
	OnExpire ExpiryHandler
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, sess, ok := session.FromContext(req.Context())
	if ok && sess != nil && sess.Token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if ok && t.OnExpire != nil {
			t.OnExpire(req.Context(), id)
		}
	}
	return resp, nil
}
