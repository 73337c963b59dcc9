package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Service checks the single admin credential pair and issues the static
// session token. The token is a capability flag for the admin UI, not a
// security boundary: no endpoint verifies it server-side.
type Service struct {
	Username     string
	Password     string
	PasswordHash string // optional bcrypt hash; when set, Password is ignored
	Token        string
}

// Login verifies the pair and returns the token, or ErrInvalidCredentials.
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrCredentialsRequired
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) != 1 {
		return "", ErrInvalidCredentials
	}
	if s.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)); err != nil {
			return "", ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return s.Token, nil
}
