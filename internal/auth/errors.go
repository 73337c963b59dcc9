package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
)
