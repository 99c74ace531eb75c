package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// API sends authenticated requests. A request answered with 401 triggers
// exactly one token refresh followed by one retry; a burst of concurrent
// 401s collapses into a single refresh call.
type API struct {
	session *Session
	httpc   *http.Client

	refreshMu sync.Mutex
}

// NewAPI creates a request wrapper over an initialized session.
func NewAPI(session *Session) *API {
	return &API{
		session: session,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Do sends a JSON request with the session's bearer token attached. The
// caller owns the response body. When the refresh after a 401 fails, the
// error is domain.ErrAuthenticationFailed and the session is logged out.
func (a *API) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token := a.session.AccessToken()

	resp, err := a.send(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	if err := a.refreshOnce(ctx, token); err != nil {
		return nil, err
	}
	return a.send(ctx, method, path, body, a.session.AccessToken())
}

// refreshOnce serializes refreshes. staleToken is the access token the
// failed request carried; if the session already holds a different one,
// another caller refreshed while we waited for the lock and there is
// nothing left to do.
func (a *API) refreshOnce(ctx context.Context, staleToken string) error {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	if current := a.session.AccessToken(); current != "" && current != staleToken {
		return nil
	}
	if err := a.session.Refresh(ctx); err != nil {
		return domain.ErrAuthenticationFailed
	}
	return nil
}

func (a *API) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.session.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.httpc.Do(req)
}
