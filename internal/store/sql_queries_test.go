package store

import (
	"strings"
	"testing"

	"github.com/elgohr-update/syncing-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildFindAllQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildFindAllQuery(models.ItemQuery{UserUUID: "user-1"})
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 1)
	require.Equal(t, "user-1", args[0])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from items")
	require.Contains(t, q, "where")
	require.Contains(t, q, "user_uuid")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// columns presence (subset / key columns)
	require.Contains(t, q, "uuid")
	require.Contains(t, q, "content_type")
	require.Contains(t, q, "deleted")
	require.Contains(t, q, "updated_at_timestamp")
}

func Test_buildFindAllQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := buildFindAllQuery(models.ItemQuery{UserUUID: "user-1"})
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	for _, c := range itemColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildFindAllQuery(t *testing.T) {
	deleted := false
	contentType := "Note"
	lastSync := int64(1616164633241312)

	tests := []struct {
		name       string
		query      models.ItemQuery
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:  "success: user filter only",
			query: models.ItemQuery{UserUUID: "user-1"},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "user_uuid = $1")
				assert.NotContains(t, query, "ORDER BY")
				assert.NotContains(t, query, "LIMIT")
				require.Len(t, args, 1)
			},
		},
		{
			name: "success: all filters",
			query: models.ItemQuery{
				UserUUID:           "user-1",
				UUIDs:              []string{"a", "b"},
				Deleted:            &deleted,
				ContentType:        &contentType,
				LastSyncTime:       &lastSync,
				SyncTimeComparison: models.CompareGreater,
				Offset:             10,
				Limit:              100,
				SortBy:             "updated_at_timestamp",
				SortOrder:          models.SortAsc,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "uuid IN ($2,$3)")
				assert.Contains(t, query, "deleted = $4")
				assert.Contains(t, query, "content_type = $5")
				assert.Contains(t, query, "updated_at_timestamp > $6")
				assert.Contains(t, query, "ORDER BY updated_at_timestamp ASC")
				assert.Contains(t, query, "LIMIT 100")
				assert.Contains(t, query, "OFFSET 10")
				require.Len(t, args, 6)
				assert.Equal(t, lastSync, args[5])
			},
		},
		{
			name: "success: greater-or-equal comparison for cursor resumption",
			query: models.ItemQuery{
				UserUUID:           "user-1",
				LastSyncTime:       &lastSync,
				SyncTimeComparison: models.CompareGreaterOrEqual,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "updated_at_timestamp >= $2")
				require.Len(t, args, 2)
			},
		},
		{
			name: "success: missing comparison defaults to strictly greater",
			query: models.ItemQuery{
				UserUUID:     "user-1",
				LastSyncTime: &lastSync,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.Contains(t, query, "updated_at_timestamp > $2")
				assert.NotContains(t, query, ">=")
			},
		},
		{
			name:  "success: empty query produces bare select",
			query: models.ItemQuery{},
			checkQuery: func(t *testing.T, query string, args []any) {
				assert.NotContains(t, query, "WHERE")
				assert.Empty(t, args)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindAllQuery(tt.query)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildFindByUUIDQuery(t *testing.T) {
	t.Run("without owner scope", func(t *testing.T) {
		query, args, err := buildFindByUUIDQuery("item-1", nil)
		require.NoError(t, err)

		assert.Contains(t, query, "uuid = $1")
		assert.NotContains(t, query, "user_uuid =")
		assert.Contains(t, query, "LIMIT 1")
		require.Len(t, args, 1)
		assert.Equal(t, "item-1", args[0])
	})

	t.Run("with owner scope", func(t *testing.T) {
		userUUID := "user-1"
		query, args, err := buildFindByUUIDQuery("item-1", &userUUID)
		require.NoError(t, err)

		assert.Contains(t, query, "uuid = $1")
		assert.Contains(t, query, "user_uuid = $2")
		require.Len(t, args, 2)
		assert.Equal(t, "user-1", args[1])
	})
}

func Test_buildFindMFAExtensionQuery(t *testing.T) {
	query, args, err := buildFindMFAExtensionQuery("user-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from items")
	assert.Contains(t, q, "content_type")
	assert.Contains(t, q, "deleted")
	assert.Contains(t, query, "ORDER BY updated_at_timestamp DESC")
	assert.Contains(t, query, "LIMIT 1")

	require.Len(t, args, 3)
	assert.Contains(t, args, "SF|MFA")
	assert.Contains(t, args, "user-1")
	assert.Contains(t, args, false)
}
