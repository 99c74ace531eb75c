// Package client is the Go consumer of the listPembelian API: a persisted
// auth session, a request wrapper that refreshes expired access tokens, and
// route guards mirroring the server's role rules.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// sessionState is what gets persisted between runs.
type sessionState struct {
	User   *domain.User      `json:"user,omitempty"`
	Tokens *domain.TokenPair `json:"tokens,omitempty"`
}

// Session holds the authenticated state of the client. All methods are safe
// for concurrent use.
type Session struct {
	baseURL string
	httpc   *http.Client
	path    string

	mu      sync.RWMutex
	state   sessionState
	loading bool
}

// NewSession creates a session persisted at path. The file is created on the
// first login; a missing file simply means logged out.
func NewSession(baseURL, path string) *Session {
	return &Session{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		path:    path,
	}
}

// Init restores persisted state and validates it against the server once.
// A rejected token clears the state; no refresh is attempted at startup.
// Network failures leave the persisted state alone and are returned.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if err := s.load(); err != nil {
		return err
	}
	if s.AccessToken() == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/me", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken())

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to validate session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.clear()
	}

	var body struct {
		User *domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}

	s.mu.Lock()
	s.state.User = body.User
	s.mu.Unlock()
	return s.persist()
}

// Login stores the result of a successful login or registration.
func (s *Session) Login(user *domain.User, tokens *domain.TokenPair) error {
	s.mu.Lock()
	s.state = sessionState{User: user, Tokens: tokens}
	s.mu.Unlock()
	return s.persist()
}

// Logout tells the server, best effort, and always clears local state. The
// server holds no session, so a failed request changes nothing of substance.
func (s *Session) Logout(ctx context.Context) error {
	if token := s.AccessToken(); token != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			if resp, err := s.httpc.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}
	return s.clear()
}

// Refresh exchanges the stored refresh token for a new access token. Only
// the access token is replaced. On any failure the session is cleared and
// the caller gets domain.ErrAuthenticationFailed.
func (s *Session) Refresh(ctx context.Context) error {
	refreshToken := s.RefreshToken()
	if refreshToken == "" {
		return domain.ErrAuthenticationFailed
	}

	payload, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_ = s.clear()
		return domain.ErrAuthenticationFailed
	}

	var body struct {
		AccessToken string       `json:"accessToken"`
		User        *domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		_ = s.clear()
		return domain.ErrAuthenticationFailed
	}

	s.mu.Lock()
	// The session may have been logged out while the HTTP call was in
	// flight; a cleared session cannot accept the new token.
	if s.state.Tokens == nil {
		s.mu.Unlock()
		return domain.ErrAuthenticationFailed
	}
	s.state.Tokens.AccessToken = body.AccessToken
	if body.User != nil {
		s.state.User = body.User
	}
	s.mu.Unlock()
	return s.persist()
}

// Loading reports whether Init is still validating persisted state.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether both a user and an access token are
// present. Tokens without a user, or the other way around, count as logged
// out.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil && s.state.Tokens != nil && s.state.Tokens.AccessToken != ""
}

// User returns the logged-in user, or nil.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

// Role returns the logged-in user's role, or the empty string.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.Role
}

// IsAdmin reports whether the logged-in user is an admin.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.IsAdmin()
}

// IsAdminOrModerator reports whether the logged-in user is staff.
func (s *Session) IsAdminOrModerator() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.IsAdminOrModerator()
}

// AccessToken returns the current access token, or the empty string.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.AccessToken
}

// RefreshToken returns the current refresh token, or the empty string.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.RefreshToken
}

func (s *Session) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt state file is treated as logged out.
		return s.clear()
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

func (s *Session) persist() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.state, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *Session) clear() error {
	s.mu.Lock()
	s.state = sessionState{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
