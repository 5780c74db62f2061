package models

import "time"

// Item is the durable server-side record of a single encrypted item.
//
// Content, EncItemKey and ItemsKeyID are opaque to the server: they are
// produced and consumed by clients only. Timestamps are kept twice — as
// time.Time values for the relational store and as integer microsecond
// timestamps used by the sync checkpoint comparisons. The microsecond
// counters are authoritative for ordering; UpdatedAtTimestamp never
// decreases for a given UUID.
type Item struct {
	UUID               string     `json:"uuid"`
	UserUUID           string     `json:"user_uuid"`
	Content            string     `json:"content"`
	ContentType        *string    `json:"content_type"`
	EncItemKey         string     `json:"enc_item_key,omitempty"`
	ItemsKeyID         *string    `json:"items_key_id,omitempty"`
	DuplicateOf        *string    `json:"duplicate_of,omitempty"`
	AuthHash           *string    `json:"auth_hash,omitempty"`
	Deleted            bool       `json:"deleted"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	CreatedAtTimestamp int64      `json:"created_at_timestamp"`
	UpdatedAtTimestamp int64      `json:"updated_at_timestamp"`
}

// IsKeyItem reports whether the item carries cryptographic key material
// that other items depend on for decryption.
func (i *Item) IsKeyItem() bool {
	return i.ContentType != nil && IsKeyContentType(ContentType(*i.ContentType))
}
