package models

import "time"

// Session is the server-side record of an authenticated device. Sessions
// gate access to the sync endpoint but carry no sync semantics of their own:
// the orchestrator only ever sees the UserUUID and ReadOnly flag extracted
// from a validated session.
type Session struct {
	UUID       string     `json:"uuid"`
	UserUUID   string     `json:"user_uuid"`
	TokenHash  string     `json:"-"`
	UserAgent  string     `json:"user_agent,omitempty"`
	APIVersion string     `json:"api_version,omitempty"`
	ReadOnly   bool       `json:"readonly_access"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	// AnalyticsID is the user's opaque activity-tracking identifier. Nil for
	// users without analytics consent; the sync use case skips activity
	// marking entirely in that case.
	AnalyticsID *int64 `json:"-"`
}
