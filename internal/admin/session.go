package admin

import (
	"errors"
	"sync"

	"pcforge/internal/domain"
)

// ErrLoginRequired means the page must send the user to the login screen.
var ErrLoginRequired = errors.New("login required")

// Session is the auth state pages read. It starts loading, is resolved once
// the current user is known and is invalidated on logout or expiry.
type Session struct {
	mu      sync.RWMutex
	loading bool
	user    *domain.User
	token   string
}

func NewSession() *Session { return &Session{loading: true} }

// Resolve ends loading. A nil user means nobody is logged in.
func (s *Session) Resolve(u *domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.user = u
	s.token = token
	if u == nil {
		s.token = ""
	}
}

func (s *Session) Invalidate() { s.Resolve(nil, "") }

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// gate reports whether a page may fetch: false with nil error while the
// session is still loading, ErrLoginRequired once it resolved without an admin.
func (s *Session) gate() (bool, error) {
	if s == nil {
		return false, ErrLoginRequired
	}
	if s.Loading() {
		return false, nil
	}
	if !s.IsAuthenticated() || !s.IsAdmin() {
		return false, ErrLoginRequired
	}
	return true, nil
}
