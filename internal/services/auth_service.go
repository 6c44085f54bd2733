package services

import (
	"errors"

	"pcforge/internal/domain"
	"pcforge/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

// Login checks the credentials and binds sid to the user. An empty sid gets a
// fresh token, which is returned alongside the user.
func (s *AuthService) Login(sid, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if sid == "" {
		sid = uuid.NewString()
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, "", err
	}
	return u, sid, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
