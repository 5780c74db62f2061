package models

// Comparison operators accepted by ItemQuery.SyncTimeComparison.
const (
	CompareGreater        = ">"
	CompareGreaterOrEqual = ">="
)

// Sort orders accepted by ItemQuery.SortOrder.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ItemQuery describes a filtered item lookup against the persistence layer.
// Zero-valued / nil fields are omitted from the generated SQL entirely, so
// the same query type serves checkpointed retrieval, uuid lookups and
// content-type scans.
type ItemQuery struct {
	UserUUID           string
	UUIDs              []string
	Deleted            *bool
	ContentType        *string
	LastSyncTime       *int64 // microseconds
	SyncTimeComparison string // CompareGreater or CompareGreaterOrEqual
	Offset             int
	Limit              int
	SortBy             string
	SortOrder          string
}
