// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, session token generation and validation, and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserUUIDCtxKey is the key under which the auth middleware stores the
// authenticated user's UUID.
var UserUUIDCtxKey = contextKey("userUUID")

// ReadOnlyCtxKey is the key under which the auth middleware stores the
// session's read-only flag.
var ReadOnlyCtxKey = contextKey("readOnlyAccess")

// AnalyticsIDCtxKey is the key under which the auth middleware stores the
// session's analytics identifier, when the session carries one.
var AnalyticsIDCtxKey = contextKey("analyticsID")

// GetUserUUIDFromContext retrieves the authenticated user's UUID from the
// context.
//
// Returns the UUID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUserUUIDFromContext(ctx context.Context) (string, bool) {
	userUUID, ok := ctx.Value(UserUUIDCtxKey).(string)
	return userUUID, ok
}

// GetReadOnlyFromContext retrieves the session read-only flag from the
// context. A missing value is reported as false with ok == false.
func GetReadOnlyFromContext(ctx context.Context) (bool, bool) {
	readOnly, ok := ctx.Value(ReadOnlyCtxKey).(bool)
	return readOnly, ok
}

// GetAnalyticsIDFromContext retrieves the session's analytics identifier from
// the context. ok == false means the session carries no analytics id.
func GetAnalyticsIDFromContext(ctx context.Context) (int64, bool) {
	analyticsID, ok := ctx.Value(AnalyticsIDCtxKey).(int64)
	return analyticsID, ok
}
