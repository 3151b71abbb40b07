package services

import (
	"crypto/subtle"

	"bazaar/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = domain.AuthFailed("invalid username or password")

// AuthService is the admin gate: one fixed credential pair, a flag on the session.
type AuthService struct {
	Username     string
	PasswordHash string
}

func NewAuthService(username, passwordHash string) *AuthService {
	return &AuthService{Username: username, PasswordHash: passwordHash}
}

func (s *AuthService) Login(sess *Session, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
	if !userOK || !passOK {
		return ErrBadCreds
	}
	sess.admin = true
	return nil
}

func (s *AuthService) Logout(sess *Session) {
	sess.admin = false
}

func (s *AuthService) IsAdmin(sess *Session) bool {
	return sess != nil && sess.IsAdmin()
}

// Require is the guard every privileged operation goes through.
func (s *AuthService) Require(sess *Session) error {
	if !s.IsAdmin(sess) {
		return domain.AuthFailed("admin login required")
	}
	return nil
}
