package models

// SyncRequest is the full input of the sync use case. ItemHashes, tokens and
// filters come from the client payload; UserUUID, ReadOnlyAccess and
// AnalyticsID are injected by the transport layer from the authenticated
// session and are never trusted from the request body.
type SyncRequest struct {
	UserUUID             string     `json:"-"`
	ItemHashes           []ItemHash `json:"items"`
	SyncToken            string     `json:"sync_token"`
	CursorToken          string     `json:"cursor_token"`
	Limit                int        `json:"limit"`
	ContentType          string     `json:"content_type"`
	APIVersion           string     `json:"api"`
	ComputeIntegrityHash bool       `json:"compute_integrity"`
	ReadOnlyAccess       bool       `json:"-"`
	AnalyticsID          *int64     `json:"-"`
}

// SyncResponse is the combined outcome of one sync cycle. Conflicts are
// structured partial-success data, not errors: the HTTP layer returns them
// with a 200 status and clients reconcile each record locally.
type SyncResponse struct {
	RetrievedItems []Item           `json:"retrieved_items"`
	SavedItems     []Item           `json:"saved_items"`
	Conflicts      []ConflictRecord `json:"conflicts"`
	SyncToken      string           `json:"sync_token"`
	CursorToken    string           `json:"cursor_token,omitempty"`
	IntegrityHash  *string          `json:"integrity_hash,omitempty"`
}
