package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/elgohr-update/syncing-server/models"
)

// itemColumns is the canonical column order for the "items" table. Every
// SELECT and every row scan in this package follows it.
var itemColumns = []string{
	"uuid",
	"user_uuid",
	"content",
	"content_type",
	"enc_item_key",
	"items_key_id",
	"duplicate_of",
	"auth_hash",
	"deleted",
	"created_at",
	"updated_at",
	"created_at_timestamp",
	"updated_at_timestamp",
}

const (
	insertOrUpdateItem = `INSERT INTO items (
			uuid,
			user_uuid,
			content,
			content_type,
			enc_item_key,
			items_key_id,
			duplicate_of,
			auth_hash,
			deleted,
			created_at,
			updated_at,
			created_at_timestamp,
			updated_at_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (uuid) DO UPDATE SET
			content = EXCLUDED.content,
			content_type = EXCLUDED.content_type,
			enc_item_key = EXCLUDED.enc_item_key,
			items_key_id = EXCLUDED.items_key_id,
			duplicate_of = EXCLUDED.duplicate_of,
			auth_hash = EXCLUDED.auth_hash,
			deleted = EXCLUDED.deleted,
			updated_at = EXCLUDED.updated_at,
			updated_at_timestamp = EXCLUDED.updated_at_timestamp;`

	deleteItemsByUserAndContentType = `DELETE FROM items
		WHERE user_uuid = $1 AND content_type = $2;`

	findIntegrityDates = `SELECT updated_at_timestamp
		FROM items
		WHERE user_uuid = $1 AND deleted = false AND content_type IS NOT NULL
		ORDER BY updated_at_timestamp DESC;`

	createSession = `INSERT INTO sessions (
			uuid, user_uuid, token_hash, user_agent, api_version, read_only, created_at, expires_at, analytics_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	findSessionByTokenHash = `SELECT uuid, user_uuid, token_hash, user_agent, api_version, read_only, created_at, expires_at, analytics_id
		FROM sessions
		WHERE token_hash = $1;`

	deleteSessionByTokenHash = `DELETE FROM sessions
		WHERE token_hash = $1;`
)

// buildFindAllQuery translates a [models.ItemQuery] into a parameterised
// SELECT against the "items" table.
//
// Filters are applied only for the fields the query actually sets:
// user_uuid, uuid IN (...), deleted, content_type, and the last-sync-time
// cutoff on updated_at_timestamp using the query's comparison operator
// (strictly-greater for continuation pages, greater-or-equal for cursor
// resumption so the boundary item is re-sent).
func buildFindAllQuery(query models.ItemQuery) (string, []any, error) {
	builder := sq.Select(itemColumns...).
		From("items").
		PlaceholderFormat(sq.Dollar)

	if query.UserUUID != "" {
		builder = builder.Where(sq.Eq{"user_uuid": query.UserUUID})
	}

	if len(query.UUIDs) > 0 {
		builder = builder.Where(sq.Eq{"uuid": query.UUIDs})
	}

	if query.Deleted != nil {
		builder = builder.Where(sq.Eq{"deleted": *query.Deleted})
	}

	if query.ContentType != nil {
		builder = builder.Where(sq.Eq{"content_type": *query.ContentType})
	}

	if query.LastSyncTime != nil {
		if query.SyncTimeComparison == models.CompareGreaterOrEqual {
			builder = builder.Where(sq.GtOrEq{"updated_at_timestamp": *query.LastSyncTime})
		} else {
			builder = builder.Where(sq.Gt{"updated_at_timestamp": *query.LastSyncTime})
		}
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortOrder != "" {
			order += " " + query.SortOrder
		}
		builder = builder.OrderBy(order)
	}

	if query.Offset > 0 {
		builder = builder.Offset(uint64(query.Offset))
	}

	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildFindByUUIDQuery builds the single-item lookup, optionally scoped by
// owner. LIMIT 1 keeps QueryRowContext from dragging a larger result set.
func buildFindByUUIDQuery(uuid string, userUUID *string) (string, []any, error) {
	builder := sq.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"uuid": uuid}).
		PlaceholderFormat(sq.Dollar).
		Limit(1)

	if userUUID != nil {
		builder = builder.Where(sq.Eq{"user_uuid": *userUUID})
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildFindMFAExtensionQuery builds the lookup for the user's most recent
// non-deleted "SF|MFA" item.
func buildFindMFAExtensionQuery(userUUID string) (string, []any, error) {
	sqlQuery, args, err := sq.Select(itemColumns...).
		From("items").
		Where(sq.Eq{
			"user_uuid":    userUUID,
			"content_type": string(models.MFA),
			"deleted":      false,
		}).
		OrderBy("updated_at_timestamp DESC").
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
