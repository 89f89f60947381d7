package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rukkie/storefront/pkg/config"
	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

const (
	statusResource = "/api/auth/status/"
	loginResource  = "/api/auth/login/"
	logoutResource = "/api/auth/logout/"
)

const (
	msgEmailNotVerified   = "Please verify your email before logging in."
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Login failed"
)

// Gateway is the slice of the API client the auth state depends on.
type Gateway interface {
	Get(ctx context.Context, resource string) (map[string]any, error)
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// Status is the cached authentication snapshot.
type Status struct {
	Authenticated bool
	Username      string
}

// State caches the session's authentication status. The backend session
// cookie stays authoritative; the cache is re-read when it goes stale so a
// session expired server-side is eventually noticed.
type State struct {
	gateway Gateway
	recheck time.Duration
	now     func() time.Time

	mu          sync.Mutex
	checking    bool
	status      Status
	lastChecked time.Time
}

// Option configures optional state behavior.
type Option func(*State)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// NewState builds an auth state cache.
func NewState(gateway Gateway, cfg config.AuthConfig, opts ...Option) (*State, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	state := &State{
		gateway: gateway,
		recheck: cfg.RecheckInterval,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(state)
		}
	}
	return state, nil
}

// Status returns the cached snapshot.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsAuthenticated reports the cached authentication flag.
func (s *State) IsAuthenticated() bool {
	return s.Status().Authenticated
}

// Refresh re-reads the authentication status. A failed status call means
// signed out, not an error. Overlapping refreshes collapse into one.
func (s *State) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.checking {
		s.mu.Unlock()
		return
	}
	s.checking = true
	s.mu.Unlock()

	status := Status{}
	if payload, err := s.gateway.Get(ctx, statusResource); err == nil {
		status.Authenticated, _ = payload["is_authenticated"].(bool)
		status.Username, _ = payload["username"].(string)
	}

	s.mu.Lock()
	s.status = status
	s.lastChecked = s.now()
	s.checking = false
	s.mu.Unlock()
}

// MaybeRefresh re-reads the status only when the cache has gone stale.
func (s *State) MaybeRefresh(ctx context.Context) {
	s.mu.Lock()
	stale := s.now().Sub(s.lastChecked) >= s.recheck
	s.mu.Unlock()
	if stale {
		s.Refresh(ctx)
	}
}

// Login authenticates with the backend and updates the cache on success.
// The returned error carries a message ready to show as-is.
func (s *State) Login(ctx context.Context, username, password string) error {
	payload, err := s.gateway.Post(ctx, loginResource, map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return loginError(err)
	}
	if ok, _ := payload["ok"].(bool); !ok {
		return pkgerrors.New(pkgerrors.CodeAPI, msgLoginFailed)
	}

	name, _ := payload["username"].(string)
	s.mu.Lock()
	s.status = Status{Authenticated: true, Username: name}
	s.lastChecked = s.now()
	s.mu.Unlock()
	return nil
}

// Logout ends the backend session. Backend failures are ignored; the local
// cache is reset regardless.
func (s *State) Logout(ctx context.Context) {
	_, _ = s.gateway.Post(ctx, logoutResource, map[string]any{})

	s.mu.Lock()
	s.status = Status{}
	s.lastChecked = s.now()
	s.mu.Unlock()
}

// loginError maps backend auth error codes onto the storefront's login
// messages, falling through to whatever message the gateway extracted.
func loginError(err error) error {
	typed := pkgerrors.As(err)
	if typed == nil {
		return pkgerrors.New(pkgerrors.CodeAPI, msgLoginFailed)
	}
	if payload, ok := typed.Details().(map[string]any); ok {
		switch code, _ := payload["error"].(string); code {
		case "email_not_verified":
			return pkgerrors.New(typed.Code(), msgEmailNotVerified)
		case "invalid_credentials":
			return pkgerrors.New(typed.Code(), msgInvalidCredentials)
		}
	}
	if typed.Message() != "" {
		return typed
	}
	return pkgerrors.New(typed.Code(), msgLoginFailed)
}
