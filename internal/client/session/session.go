// Package session holds the client's belief about which user, if any, is
// currently authenticated. The store is an explicit state machine:
//
//	StateRehydrating -> StateAuthenticated   (stored token still valid)
//	StateRehydrating -> StateAnonymous       (no token, or token rejected)
//	StateAnonymous   -> StateAuthenticated   (login / register)
//	StateAuthenticated -> StateAnonymous     (logout, failed refresh)
//
// The user pointer is non-nil exactly when the state is StateAuthenticated,
// so an "authenticated but no user" combination cannot be represented.
package session

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
	"github.com/dmitrijs2005/campusmarket/internal/client/cache"
	"github.com/dmitrijs2005/campusmarket/internal/client/models"
	"github.com/dmitrijs2005/campusmarket/internal/logging"
)

// State is the session lifecycle phase.
type State int

const (
	StateRehydrating State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRehydrating:
		return "rehydrating"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Views the store navigates to after auth transitions.
const (
	ViewBrowse = "browse"
	ViewLogin  = "login"
)

// Backend is the slice of the HTTP client the store needs.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

// Tokens persists the bearer token across runs.
type Tokens interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Notifier surfaces transient, user-visible messages (the CLI's toast line).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator switches the UI's current view.
type Navigator interface {
	Navigate(view string)
}

// Store is the auth session store. Safe for concurrent use.
type Store struct {
	backend Backend
	tokens  Tokens
	cache   *cache.Cache
	notify  Notifier
	nav     Navigator
	log     logging.Logger

	mu    sync.Mutex
	state State
	user  *models.User
}

func NewStore(backend Backend, tokens Tokens, c *cache.Cache, notify Notifier, nav Navigator, log logging.Logger) *Store {
	return &Store{
		backend: backend,
		tokens:  tokens,
		cache:   c,
		notify:  notify,
		nav:     nav,
		log:     log,
		state:   StateRehydrating,
	}
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a user is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

func (s *Store) setAuthenticated(u *models.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = u
	s.mu.Unlock()
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}

// Rehydrate attempts to recover a session from the persisted token. Any
// failure, including a missing token, lands in StateAnonymous with the stale
// token discarded. Called once at startup.
func (s *Store) Rehydrate(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil || token == "" {
		if err != nil {
			s.log.Warn(ctx, "reading stored token failed", "error", err)
		}
		s.setAnonymous()
		return
	}

	var resp models.AuthResponse
	if err := s.backend.Get(ctx, api.EndpointMe, nil, &resp); err != nil {
		s.log.Debug(ctx, "session rehydration failed", "error", err)
		_ = s.tokens.Clear(ctx)
		s.setAnonymous()
		return
	}

	s.setAuthenticated(&resp.User)
}

// Login authenticates with the backend. On success the issued token is
// persisted, the state becomes authenticated, and the UI is sent to the
// browse view. On failure the prior state is kept and the error message is
// surfaced to the user.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	var resp models.AuthResponse
	if err := s.backend.Post(ctx, api.EndpointLogin, creds, &resp); err != nil {
		s.notify.Error(errMessage(err, "Login failed"))
		return err
	}

	if resp.Token != "" {
		if err := s.tokens.Save(ctx, resp.Token); err != nil {
			s.log.Error(ctx, "persisting token failed", "error", err)
		}
	}

	s.setAuthenticated(&resp.User)
	s.notify.Success("Login successful!")
	s.nav.Navigate(ViewBrowse)
	return nil
}

// Register creates an account; symmetric to Login.
func (s *Store) Register(ctx context.Context, details models.Registration) error {
	var resp models.AuthResponse
	if err := s.backend.Post(ctx, api.EndpointRegister, details, &resp); err != nil {
		s.notify.Error(errMessage(err, "Registration failed"))
		return err
	}

	if resp.Token != "" {
		if err := s.tokens.Save(ctx, resp.Token); err != nil {
			s.log.Error(ctx, "persisting token failed", "error", err)
		}
	}

	s.setAuthenticated(&resp.User)
	s.notify.Success("Registration successful!")
	s.nav.Navigate(ViewBrowse)
	return nil
}

// Logout ends the session. The server-side call is best-effort: even when it
// fails, local state is cleared — logout must never leave the client
// believing it is still authenticated.
func (s *Store) Logout(ctx context.Context) {
	serverErr := s.backend.Post(ctx, api.EndpointLogout, nil, nil)

	_ = s.tokens.Clear(ctx)
	s.setAnonymous()
	s.cache.Clear()

	if serverErr != nil {
		s.log.Warn(ctx, "server-side logout failed", "error", serverErr)
		s.notify.Error("Logout failed, but you have been logged out locally")
	} else {
		s.notify.Success("Logged out successfully")
	}
	s.nav.Navigate(ViewLogin)
}

// RefreshUser re-fetches the current user. A failure means the session is no
// longer valid and is treated as a local logout.
func (s *Store) RefreshUser(ctx context.Context) error {
	var resp models.AuthResponse
	if err := s.backend.Get(ctx, api.EndpointMe, nil, &resp); err != nil {
		_ = s.tokens.Clear(ctx)
		s.setAnonymous()
		s.cache.Clear()
		return err
	}
	s.setAuthenticated(&resp.User)
	return nil
}

func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
