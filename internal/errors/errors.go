package errors

import (
	"errors"
)

// Login / refresh flow errors. Handlers map these onto HTTP statuses;
// nothing below this taxonomy leaks out of the service layer.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingRefreshToken = errors.New("missing refresh token")
	ErrTokenRevoked        = errors.New("refresh token revoked")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrSelfDemotion        = errors.New("cannot remove your own admin role")
	ErrSelfDeactivation    = errors.New("cannot deactivate your own account")
)

// Codec-level errors. The session protocol wraps these into the flow
// taxonomy above before they reach a handler.
var (
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
	ErrWrongAudience  = errors.New("wrong token audience")
)
