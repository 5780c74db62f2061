package models

// ItemHash is the client-submitted candidate representation of an item.
// It exists only for the duration of a single save request; once persisted
// (or rejected with a conflict) it is discarded.
//
// Client timestamps are RFC3339 strings with millisecond precision and are
// advisory only — the server assigns the authoritative microsecond
// timestamps at commit time.
type ItemHash struct {
	UUID        string  `json:"uuid"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	EncItemKey  string  `json:"enc_item_key,omitempty"`
	ItemsKeyID  *string `json:"items_key_id,omitempty"`
	DuplicateOf *string `json:"duplicate_of,omitempty"`
	AuthHash    *string `json:"auth_hash,omitempty"`
	Deleted     bool    `json:"deleted,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}
