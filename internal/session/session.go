// Package session owns the operator's credential token and verified identity.
// It is the gate every workspace operation passes through.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/remote"
)

// State is the lifecycle position of a Session.
type State int

const (
	Anonymous State = iota
	Verifying
	Authenticated
)

func (s State) String() string {
	switch s {
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// revokeTimeout bounds the best-effort server call made on logout.
const revokeTimeout = 3 * time.Second

// Authenticator is the remote side of the session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*remote.TokenResponse, error)
	Register(ctx context.Context, email, password, fullName string) (*remote.TokenResponse, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	Revoke(ctx context.Context, token string) error
}

// AuthError is returned by Require and by failed Login/Register calls.
// Message is fit for display.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// Is makes every AuthError match domain.ErrUnauthenticated.
func (e *AuthError) Is(target error) bool { return target == domain.ErrUnauthenticated }

// ErrNotLoggedIn is the AuthError returned by Require while not Authenticated.
var ErrNotLoggedIn = &AuthError{Message: "not logged in: run `crm login` first"}

// Session holds {token, identity}. Identity is set only once the token has
// been accepted by the server.
type Session struct {
	mu       sync.RWMutex
	store    TokenStore
	auth     Authenticator
	log      zerolog.Logger
	state    State
	token    string
	identity domain.Identity
}

// New restores the persisted token, if any. A restored token puts the
// session in Verifying until Verify is called.
func New(store TokenStore, auth Authenticator, log zerolog.Logger) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	s := &Session{store: store, auth: auth, log: log, state: Anonymous}
	if token != "" {
		s.token = token
		s.state = Verifying
	}
	return s, nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the verified identity; ok is false unless Authenticated.
func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.state == Authenticated
}

// Token returns the current token, which may be unverified.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Require returns the token when Authenticated and ErrNotLoggedIn otherwise.
// It never touches the network.
func (s *Session) Require() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return "", ErrNotLoggedIn
	}
	return s.token, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	res, err := s.auth.Login(ctx, email, password)
	return s.establish(res, err, "login failed")
}

// Register creates an account and logs in with it. A duplicate email is
// reported like any other failure.
func (s *Session) Register(ctx context.Context, email, password, fullName string) (domain.Identity, error) {
	res, err := s.auth.Register(ctx, email, password, fullName)
	return s.establish(res, err, "registration failed")
}

func (s *Session) establish(res *remote.TokenResponse, err error, prefix string) (domain.Identity, error) {
	if err == nil && res.AccessToken == "" {
		err = errors.New("server returned no token")
	}
	if err != nil {
		s.reset()
		return domain.Identity{}, &AuthError{Message: fmt.Sprintf("%s: %s", prefix, message(err)), Err: err}
	}

	if serr := s.store.Save(res.AccessToken); serr != nil {
		s.log.Warn().Err(serr).Msg("session token not persisted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = res.AccessToken
	s.identity = res.User.Identity()
	s.state = Authenticated
	return s.identity, nil
}

// Verify checks a restored token against the server. Any failure, network
// errors included, discards the token and leaves the session Anonymous. It
// is a no-op unless the session is Verifying.
func (s *Session) Verify(ctx context.Context) error {
	s.mu.RLock()
	state, token := s.state, s.token
	s.mu.RUnlock()
	if state != Verifying {
		return nil
	}

	user, err := s.auth.CurrentUser(ctx, token)
	if err == nil && (user == nil || user.ID == "") {
		err = errors.New("server returned no identity")
	}
	if err != nil {
		s.log.Debug().Err(err).Msg("stored session rejected")
		s.reset()
		return &AuthError{Message: "session expired: " + message(err), Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = user.Identity()
	s.state = Authenticated
	return nil
}

// Logout forgets the token locally and then asks the server to revoke it.
// The revocation outcome never affects the result.
func (s *Session) Logout(ctx context.Context) {
	token := s.Token()
	s.reset()
	if token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, revokeTimeout)
	defer cancel()
	if err := s.auth.Revoke(ctx, token); err != nil {
		s.log.Debug().Err(err).Msg("token revocation skipped")
	}
}

// Expire drops a session the server no longer accepts. It is called with
// the failure of a gated request; errors that are not authentication
// failures are ignored.
func (s *Session) Expire(cause error) {
	if !errors.Is(cause, domain.ErrUnauthenticated) {
		return
	}
	if s.State() == Anonymous {
		return
	}
	s.log.Warn().Err(cause).Msg("session rejected by server")
	s.reset()
}

// reset moves to Anonymous and clears the persisted token.
func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.identity = domain.Identity{}
	s.state = Anonymous
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("session token not cleared")
	}
}

func message(err error) string {
	var re *remote.Error
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
