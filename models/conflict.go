package models

// ConflictType classifies why an item hash could not be persisted as-is.
type ConflictType string

const (
	// SyncConflict marks a write rejected because the server copy was
	// modified after the client's sync basis (a write-write race).
	SyncConflict ConflictType = "sync_conflict"

	// UUIDConflict marks a duplicate-content submission or an item UUID
	// already owned by another user.
	UUIDConflict ConflictType = "uuid_conflict"

	// ContentTypeError marks an item hash whose content type is outside
	// the recognized enumeration.
	ContentTypeError ConflictType = "content_type_error"

	// ContentError marks an item hash whose encrypted content violates a
	// validation rule (e.g. the configured size limit).
	ContentError ConflictType = "content_error"

	// ReadOnlyError marks a write attempted through a read-only session.
	ReadOnlyError ConflictType = "readonly_error"
)

// ConflictRecord pairs the current authoritative server item (when one can
// be resolved) with the conflict classification. Records are created only
// inside the save pipeline and returned to the caller for client-side
// reconciliation; they are never persisted.
//
// ServerItem may be nil: a conflict whose authoritative source cannot be
// resolved (for example a duplicate_of reference to an item that no longer
// exists) is still reported, never dropped.
type ConflictRecord struct {
	ServerItem  *Item        `json:"server_item,omitempty"`
	UnsavedItem *ItemHash    `json:"unsaved_item,omitempty"`
	Type        ConflictType `json:"type"`
}
