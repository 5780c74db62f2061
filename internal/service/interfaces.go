package service

import (
	"context"
	"time"

	"github.com/elgohr-update/syncing-server/models"
)

// ItemService is the save + retrieval pipeline over the item store.
type ItemService interface {
	// GetItems returns the user's items changed since the checkpoint encoded
	// in the DTO's tokens, paginated and sorted by update timestamp ascending.
	GetItems(ctx context.Context, dto models.GetItemsDTO) (models.GetItemsResult, error)

	// SaveItems runs every item hash through the validation rule chain and
	// the conflict resolver, then commits all non-conflicting writes as one
	// atomic batch.
	SaveItems(ctx context.Context, dto models.SaveItemsDTO) (models.SaveOutcome, error)

	// FrontLoadKeysItemsToTop moves the user's key items (ItemsKey content
	// type) to the front of retrievedItems, preserving relative order within
	// both groups. Key items absent from retrievedItems are fetched and
	// prepended so a bootstrapping client can decrypt everything that follows.
	FrontLoadKeysItemsToTop(ctx context.Context, userUUID string, retrievedItems []models.Item) ([]models.Item, error)

	// FindMFAExtension returns the user's MFA extension item.
	FindMFAExtension(ctx context.Context, userUUID string) (models.Item, error)

	// DeleteMFAExtension removes all of the user's MFA extension items.
	DeleteMFAExtension(ctx context.Context, userUUID string) error
}

// SyncService is the top-level sync use case: one request/response cycle
// combining the save and retrieval pipelines.
type SyncService interface {
	SyncItems(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error)
}

// IntegrityService derives the deterministic checksum clients compare across
// devices to detect silent data loss.
type IntegrityService interface {
	ComputeIntegrityHash(ctx context.Context, userUUID string) (string, error)
}

// SessionService gates access to the sync surface. The sync core itself only
// ever sees the user UUID and read-only flag extracted from a valid session.
type SessionService interface {
	// CreateSession issues a signed session token and persists the matching
	// session row. Returns the session and the compact token string.
	// analyticsID may be nil for users without activity tracking.
	CreateSession(ctx context.Context, userUUID, userAgent, apiVersion string, readOnly bool, analyticsID *int64) (models.Session, string, error)

	// LookupSession validates the bearer token and returns the session row it
	// belongs to. A valid JWT whose row was deleted is treated as revoked.
	LookupSession(ctx context.Context, token string) (models.Session, error)

	// DeleteSessionByToken revokes the session identified by the bearer token.
	DeleteSessionByToken(ctx context.Context, token string) error
}

// AnalyticsService accepts fire-and-forget activity signals. Implementations
// must never block the caller and never propagate failures.
type AnalyticsService interface {
	MarkActivity(ctx context.Context, tags []string, analyticsID int64, periods []models.ActivityPeriod) error
}

// Timer abstracts clock reads and timestamp conversions so that pipelines
// can be tested against a fixed time.
type Timer interface {
	// GetTimestampInMicroseconds returns the current time in microseconds.
	GetTimestampInMicroseconds() int64

	// ConvertMicrosecondsToMilliseconds converts a microsecond timestamp to
	// the client-facing millisecond resolution.
	ConvertMicrosecondsToMilliseconds(timestamp int64) int64

	// ConvertStringDateToMicroseconds parses an RFC3339 date into a
	// microsecond timestamp.
	ConvertStringDateToMicroseconds(date string) (int64, error)

	// ConvertMicrosecondsToTime converts a microsecond timestamp back to a
	// wall-clock time in UTC.
	ConvertMicrosecondsToTime(timestamp int64) time.Time
}
