package session

import (
	"context"
	"sync"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

// Authenticator exchanges credentials for a user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, name, email, password string) (models.User, error)
}

// Store holds the current user of one app instance. Authenticated iff a user
// is set.
type Store struct {
	auth Authenticator

	mu   sync.RWMutex
	user *models.User
}

func NewStore(auth Authenticator) *Store {
	if auth == nil {
		auth = Simulated{}
	}
	return &Store{auth: auth}
}

// Login fails with ErrValidation on an empty email or password and leaves the
// session untouched on any failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "session.login")

	if err := check(loginInput{Email: email, Password: password}); err != nil {
		l.Warn("login_failed", "reason", "validation", "error", err)
		return err
	}

	user, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return err
	}

	s.set(user)
	l.Info("login_successful", "user_id", user.ID)
	return nil
}

// Register validates presence and minimum password length. The confirmation
// field is the caller's concern (see ConfirmPassword).
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "session.register")

	in := registerInput{Name: name, Email: email, Password: password, Confirmation: password}
	if err := check(in); err != nil {
		l.Warn("register_failed", "reason", "validation", "error", err)
		return err
	}

	user, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return err
	}

	s.set(user)
	l.Info("register_successful", "user_id", user.ID)
	return nil
}

func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) set(u models.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}
