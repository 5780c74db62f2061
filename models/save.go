package models

// SaveItemsDTO is the input of the save pipeline.
type SaveItemsDTO struct {
	ItemHashes     []ItemHash
	UserUUID       string
	APIVersion     string
	ReadOnlyAccess bool
}

// SaveOutcome is produced exactly once per save call and is immutable.
// SyncToken is a fresh checkpoint reflecting server state immediately after
// the batch committed.
type SaveOutcome struct {
	SavedItems []Item
	Conflicts  []ConflictRecord
	SyncToken  string
}

// GetItemsDTO is the input of the retrieval pipeline. An empty SyncToken
// marks a first sync.
type GetItemsDTO struct {
	UserUUID    string
	ContentType string
	SyncToken   string
	CursorToken string
	Limit       int
}

// GetItemsResult is produced once per retrieval call. CursorToken is set
// only when the page filled up and more items may follow.
type GetItemsResult struct {
	Items       []Item
	CursorToken string
}
