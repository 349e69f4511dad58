// Package session resolves and caches the signed-in user. The store
// starts out Unknown, asks the backend to verify the stored token at
// most once at a time, and settles into Authenticated or Anonymous.
// Concurrent verification requests collapse into a single backend call.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/me/matchably/pkg/matchably"
	"github.com/me/matchably/pkg/model"
)

// Status describes what the store currently knows about the user.
type Status string

const (
	// StatusUnknown means no verification has completed yet.
	StatusUnknown Status = "unknown"
	// StatusAuthenticated means the backend accepted the token.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous means there is no token or the backend rejected it.
	StatusAnonymous Status = "anonymous"
)

// Gateway is the slice of the backend client the store needs.
// *matchably.Client satisfies it.
type Gateway interface {
	VerifyToken(ctx context.Context, token string) (*model.User, error)
	SignIn(ctx context.Context, creds matchably.Credentials) (string, error)
	SignUp(ctx context.Context, req matchably.SignUpRequest) (string, error)
	GoogleAuth(ctx context.Context, idToken string) (string, error)
}

// Store owns the current authentication state. All methods are safe
// for concurrent use.
type Store struct {
	gateway Gateway
	tokens  TokenSource
	logger  *slog.Logger

	mu         sync.Mutex
	status     Status
	user       *model.User
	verifiedAt time.Time
	lastErr    error
	inflight   chan struct{} // non-nil while a verify call is running
}

// NewStore builds a store around the gateway and token source. The
// store starts Unknown; call Verify to resolve it.
func NewStore(gateway Gateway, tokens TokenSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		gateway: gateway,
		tokens:  tokens,
		logger:  logger.With("component", "session"),
		status:  StatusUnknown,
	}
}

// Status returns the current resolution state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns the verified user, or nil when not authenticated.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether a verified user is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated
}

// Token returns the stored bearer token, or empty when none exists.
func (s *Store) Token() (string, error) {
	return s.tokens.Load()
}

// Verify resolves the store to Authenticated or Anonymous by checking
// the stored token against the backend. If a verification is already
// running, the call waits for that result instead of issuing a second
// request. Transport failures leave the store in its prior state and
// return the error; a definitive rejection clears the stored token.
func (s *Store) Verify(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	if s.status != StatusUnknown && s.inflight == nil {
		user, status := s.user, s.status
		s.mu.Unlock()
		if status == StatusAuthenticated {
			return user, nil
		}
		return nil, nil
	}
	if s.inflight != nil {
		done := s.inflight
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
		user, status, err := s.user, s.status, s.lastErr
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if status == StatusAuthenticated {
			return user, nil
		}
		return nil, nil
	}
	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	user, err := s.verify(ctx)

	s.mu.Lock()
	s.inflight = nil
	close(done)
	s.mu.Unlock()
	return user, err
}

// verify performs the actual backend check and records the outcome.
// It runs outside the lock; only one call is active at a time.
func (s *Store) verify(ctx context.Context) (*model.User, error) {
	token, err := s.tokens.Load()
	if err != nil {
		s.record(StatusUnknown, nil, err)
		return nil, err
	}
	if token == "" {
		s.logger.Debug("no stored token, resolving anonymous")
		s.record(StatusAnonymous, nil, nil)
		return nil, nil
	}

	user, err := s.gateway.VerifyToken(ctx, token)
	switch {
	case err == nil:
		s.logger.Info("session verified", "user", user.Email, "role", user.Role)
		s.record(StatusAuthenticated, user, nil)
		return user, nil
	case matchably.IsAuthError(err):
		// The backend rejected the token outright. Drop it so the
		// next verify resolves anonymous without a network call.
		s.logger.Info("stored token rejected, clearing credentials")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear rejected token", "error", clearErr)
		}
		s.record(StatusAnonymous, nil, nil)
		return nil, nil
	default:
		// Transport or server failure. Keep prior state so a
		// transient outage does not sign the user out.
		s.logger.Warn("session verification failed", "error", err)
		s.recordErr(err)
		return nil, err
	}
}

func (s *Store) record(status Status, user *model.User, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.user = user
	s.lastErr = err
	if status == StatusAuthenticated {
		s.verifiedAt = time.Now()
	}
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Invalidate forgets the resolved state so the next Verify hits the
// backend again. The stored token is untouched.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		s.status = StatusUnknown
		s.user = nil
		s.lastErr = nil
	}
}

// SignIn exchanges credentials for a token, stores it, and verifies
// the resulting session in one step.
func (s *Store) SignIn(ctx context.Context, creds matchably.Credentials) (*model.User, error) {
	token, err := s.gateway.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, token)
}

// SignUp registers a new account and signs it in.
func (s *Store) SignUp(ctx context.Context, req matchably.SignUpRequest) (*model.User, error) {
	token, err := s.gateway.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, token)
}

// GoogleSignIn exchanges a Google ID token for a session.
func (s *Store) GoogleSignIn(ctx context.Context, idToken string) (*model.User, error) {
	token, err := s.gateway.GoogleAuth(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, token)
}

// adopt stores a freshly issued token and verifies it.
func (s *Store) adopt(ctx context.Context, token string) (*model.User, error) {
	if err := s.tokens.Store(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	s.Invalidate()
	user, err := s.Verify(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, matchably.ErrTokenRejected
	}
	return user, nil
}

// SignOut clears the stored token and resolves the store anonymous.
func (s *Store) SignOut() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.record(StatusAnonymous, nil, nil)
	s.logger.Info("signed out")
	return nil
}
