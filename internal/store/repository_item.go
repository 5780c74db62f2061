package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// It executes all item operations directly against the "items" table using
// the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (user_uuid, item uuid, iteration index, etc.).
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// scanItem reads one row in the canonical [itemColumns] order.
func scanItem(row interface{ Scan(dest ...any) error }) (models.Item, error) {
	var item models.Item

	err := row.Scan(
		&item.UUID,
		&item.UserUUID,
		&item.Content,
		&item.ContentType,
		&item.EncItemKey,
		&item.ItemsKeyID,
		&item.DuplicateOf,
		&item.AuthHash,
		&item.Deleted,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.CreatedAtTimestamp,
		&item.UpdatedAtTimestamp,
	)

	return item, err
}

// FindAll retrieves items that match the criteria in query.
//
// Filtering, sorting and pagination are delegated to [buildFindAllQuery];
// only fields the query actually sets produce SQL clauses.
//
// Returns the matched items or an error if the query fails, a row cannot be
// scanned, or an iteration error is detected after the result set is exhausted.
func (r *itemRepository) FindAll(ctx context.Context, query models.ItemQuery) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildFindAllQuery(query)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindAll").
			Str("user_uuid", query.UserUUID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindAll").
			Str("user_uuid", query.UserUUID).
			Int("uuids_count", len(query.UUIDs)).
			Msg("failed to execute query for getting requested items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Item, 0, 50)

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.FindAll").
				Str("user_uuid", query.UserUUID).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.FindAll").
			Str("user_uuid", query.UserUUID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// FindByUUID retrieves a single item by uuid regardless of owner. It backs
// the ownership check of the save rules, which must detect an item whose
// uuid is already taken by another user.
func (r *itemRepository) FindByUUID(ctx context.Context, uuid string) (models.Item, error) {
	return r.findOne(ctx, "itemRepository.FindByUUID", uuid, nil)
}

// FindByUUIDAndUserUUID retrieves a single item by uuid scoped to its owner.
func (r *itemRepository) FindByUUIDAndUserUUID(ctx context.Context, uuid, userUUID string) (models.Item, error) {
	return r.findOne(ctx, "itemRepository.FindByUUIDAndUserUUID", uuid, &userUUID)
}

func (r *itemRepository) findOne(ctx context.Context, funcName, uuid string, userUUID *string) (models.Item, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildFindByUUIDQuery(uuid, userUUID)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("uuid", uuid).
			Msg("failed to create query")
		return models.Item{}, err
	}

	item, scanErr := scanItem(r.DB.QueryRowContext(ctx, sqlQuery, args...))
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}

		log.Err(scanErr).
			Str("func", funcName).
			Str("uuid", uuid).
			Msg("failed to execute single item query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return item, nil
}

// InsertOrUpdate persists one or more items via INSERT … ON CONFLICT upsert.
//
// Routing strategy:
//   - Zero items → no-op (returns nil with a warning log).
//   - Exactly one item → [upsertSingleItem] (no transaction overhead).
//   - Two or more items → [upsertMultipleItems] (wrapped in a transaction, so
//     a batch either lands completely or not at all).
func (r *itemRepository) InsertOrUpdate(ctx context.Context, items ...*models.Item) error {
	log := logger.FromContext(ctx)

	if len(items) == 0 {
		log.Warn().
			Str("func", "itemRepository.InsertOrUpdate").
			Msg("no items provided")
		return nil
	}

	if len(items) == 1 {
		return r.upsertSingleItem(ctx, items[0])
	}

	return r.upsertMultipleItems(ctx, items)
}

// upsertSingleItem writes a single item without opening a transaction.
func (r *itemRepository) upsertSingleItem(ctx context.Context, item *models.Item) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("uuid", item.UUID).
		Str("user_uuid", item.UserUUID).
		Msg("saving single item")

	result, err := r.DB.ExecContext(ctx, insertOrUpdateItem, upsertArgs(item)...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.upsertSingleItem").
			Str("uuid", item.UUID).
			Str("user_uuid", item.UserUUID).
			Str("pg_code", postgresError(err)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to save item")

		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, affectedErr := result.RowsAffected(); affectedErr == nil && affected == 0 {
		log.Error().
			Str("func", "itemRepository.upsertSingleItem").
			Str("uuid", item.UUID).
			Msg("upsert affected zero rows")
		return ErrItemsNotSaved
	}

	return nil
}

// upsertMultipleItems writes two or more items inside a single database
// transaction using a prepared statement for efficiency.
//
// The transaction is rolled back automatically (via defer) if any individual
// upsert fails; the commit is attempted only after all items succeed.
func (r *itemRepository) upsertMultipleItems(ctx context.Context, items []*models.Item) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.upsertMultipleItems").
			Int("count", len(items)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertOrUpdateItem)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.upsertMultipleItems").
			Int("count", len(items)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, item := range items {
		log.Debug().
			Str("func", "itemRepository.upsertMultipleItems").
			Int("iteration", idx+1).
			Int("total", len(items)).
			Str("uuid", item.UUID).
			Str("user_uuid", item.UserUUID).
			Msg("saving item in transaction")

		if _, execErr := stmt.ExecContext(ctx, upsertArgs(item)...); execErr != nil {
			log.Err(execErr).
				Str("func", "itemRepository.upsertMultipleItems").
				Int("iteration", idx+1).
				Str("uuid", item.UUID).
				Str("pg_code", postgresError(execErr)).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "itemRepository.upsertMultipleItems").
			Int("count", len(items)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func upsertArgs(item *models.Item) []any {
	return []any{
		item.UUID,
		item.UserUUID,
		item.Content,
		item.ContentType,
		item.EncItemKey,
		item.ItemsKeyID,
		item.DuplicateOf,
		item.AuthHash,
		item.Deleted,
		item.CreatedAt,
		item.UpdatedAt,
		item.CreatedAtTimestamp,
		item.UpdatedAtTimestamp,
	}
}

// DeleteByUserUUIDAndContentType hard-deletes all of the user's items of the
// given content type. Zero affected rows is a valid outcome.
func (r *itemRepository) DeleteByUserUUIDAndContentType(ctx context.Context, userUUID, contentType string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteItemsByUserAndContentType, userUUID, contentType)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteByUserUUIDAndContentType").
			Str("user_uuid", userUUID).
			Str("content_type", contentType).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	log.Info().
		Str("func", "itemRepository.DeleteByUserUUIDAndContentType").
		Str("user_uuid", userUUID).
		Str("content_type", contentType).
		Int64("deleted_count", affected).
		Msg("deleted items by content type")

	return nil
}

// FindDatesForIntegrityHash returns the update timestamps (microseconds) of
// the user's non-deleted items, most recent first. The caller folds them into
// the integrity digest.
func (r *itemRepository) FindDatesForIntegrityHash(ctx context.Context, userUUID string) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, findIntegrityDates, userUUID)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindDatesForIntegrityHash").
			Str("user_uuid", userUUID).
			Msg("failed to execute query for getting integrity dates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	dates := make([]int64, 0, 50)

	for rows.Next() {
		var timestamp int64

		if scanErr := rows.Scan(&timestamp); scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.FindDatesForIntegrityHash").
				Str("user_uuid", userUUID).
				Msg("failed to scan timestamp row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		dates = append(dates, timestamp)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.FindDatesForIntegrityHash").
			Str("user_uuid", userUUID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return dates, nil
}

// FindMFAExtensionByUserUUID retrieves the user's most recent non-deleted
// "SF|MFA" item.
func (r *itemRepository) FindMFAExtensionByUserUUID(ctx context.Context, userUUID string) (models.Item, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildFindMFAExtensionQuery(userUUID)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindMFAExtensionByUserUUID").
			Str("user_uuid", userUUID).
			Msg("failed to create query")
		return models.Item{}, err
	}

	item, scanErr := scanItem(r.DB.QueryRowContext(ctx, sqlQuery, args...))
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}

		log.Err(scanErr).
			Str("func", "itemRepository.FindMFAExtensionByUserUUID").
			Str("user_uuid", userUUID).
			Msg("failed to execute mfa extension query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return item, nil
}
