package auth

import "errors"

var (
	ErrUnauthorized = errors.New("auth: unauthorized")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrForbidden    = errors.New("auth: role not permitted")
)
