package service

import "errors"

var (
	// ErrInvalidSyncToken is returned when a sync or cursor token cannot be
	// decoded: not base64, missing the version prefix, or carrying a
	// non-numeric timestamp.
	ErrInvalidSyncToken = errors.New("invalid sync token")

	// ErrInvalidSessionToken is returned when a bearer token fails JWT
	// validation (bad signature, expired, wrong issuer, missing subject).
	ErrInvalidSessionToken = errors.New("invalid session token")

	// ErrSessionNotFound is returned when a structurally valid token has no
	// matching session row, i.e. the session was revoked.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoUserUUID is returned when a pipeline operation is invoked without
	// an owning user.
	ErrNoUserUUID = errors.New("no user uuid provided")
)
