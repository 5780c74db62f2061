package store

import (
	"context"

	"github.com/elgohr-update/syncing-server/models"
)

// ItemRepository is the persistence gateway for encrypted items. It is the
// only component that talks to the "items" table; services depend on this
// interface, never on SQL.
type ItemRepository interface {
	// FindAll returns every item matching the given query, honouring its
	// filters, sort order, offset and limit.
	FindAll(ctx context.Context, query models.ItemQuery) ([]models.Item, error)

	// FindByUUID returns the item with the given uuid regardless of owner.
	// Returns [ErrItemNotFound] when no row matches.
	FindByUUID(ctx context.Context, uuid string) (models.Item, error)

	// FindByUUIDAndUserUUID returns the item with the given uuid owned by the
	// given user. Returns [ErrItemNotFound] when no row matches.
	FindByUUIDAndUserUUID(ctx context.Context, uuid, userUUID string) (models.Item, error)

	// InsertOrUpdate atomically persists the given items: each item is
	// inserted, or fully overwritten when a row with the same uuid already
	// exists. Two or more items are written inside a single transaction so
	// a batch either lands completely or not at all.
	InsertOrUpdate(ctx context.Context, items ...*models.Item) error

	// DeleteByUserUUIDAndContentType hard-deletes all of the user's items of
	// the given content type. Deleting a type that has no rows is a no-op.
	DeleteByUserUUIDAndContentType(ctx context.Context, userUUID, contentType string) error

	// FindDatesForIntegrityHash returns the update timestamps (microseconds)
	// of the user's non-deleted items, most recent first.
	FindDatesForIntegrityHash(ctx context.Context, userUUID string) ([]int64, error)

	// FindMFAExtensionByUserUUID returns the user's most recent non-deleted
	// "SF|MFA" item. Returns [ErrItemNotFound] when the user has none.
	FindMFAExtensionByUserUUID(ctx context.Context, userUUID string) (models.Item, error)
}

// SessionRepository persists session rows so that sign-out can revoke a
// still-valid JWT.
type SessionRepository interface {
	// CreateSession inserts a new session row.
	CreateSession(ctx context.Context, session models.Session) error

	// FindSessionByTokenHash returns the session row matching the given token
	// hash. Returns [ErrSessionNotFound] when no row matches.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)

	// DeleteSessionByTokenHash removes the session row matching the given
	// token hash. Returns [ErrSessionNotFound] when no row matched.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
