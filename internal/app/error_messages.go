// Package app contains shared application-layer constants used across the
// syncing-server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSONProvided is returned when the request body cannot be
	// decoded as JSON.
	MsgInvalidJSONProvided = "Invalid JSON was passed"

	// MsgNoUserUUIDProvided is returned when a handler requires the
	// authenticated user's UUID but none is present in the request context.
	MsgNoUserUUIDProvided = "no user UUID was given"

	// MsgErrorSyncingItems is returned when the sync use case fails with a
	// fatal error (per-item issues travel as conflicts, not errors).
	MsgErrorSyncingItems = "error syncing items"

	// MsgInvalidAuthTag is the machine-readable tag of the auth error
	// envelope legacy clients match on.
	MsgInvalidAuthTag = "invalid-auth"

	// MsgInvalidLoginCredentials is the human-readable message of the auth
	// error envelope.
	MsgInvalidLoginCredentials = "Invalid login credentials."
)
