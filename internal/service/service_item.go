package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elgohr-update/syncing-server/internal/config"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/models"
)

// itemService is the concrete implementation of [ItemService]: the save
// pipeline (rule chain → conflict resolver → one atomic batch write) and the
// retrieval pipeline (checkpointed, paginated reads).
type itemService struct {
	items     store.ItemRepository
	validator *SaveValidator
	resolver  *ConflictResolver
	timer     Timer
	cfg       config.Sync
	logger    *logger.Logger
}

// NewItemService constructs an [ItemService] over the given collaborators.
func NewItemService(items store.ItemRepository, validator *SaveValidator, resolver *ConflictResolver, timer Timer, cfg config.Sync, logger *logger.Logger) ItemService {
	return &itemService{
		items:     items,
		validator: validator,
		resolver:  resolver,
		timer:     timer,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetItems implements the retrieval pipeline.
//
// The checkpoint basis is the cursor token when present (greater-or-equal
// comparison, so the boundary item of the previous page is re-sent),
// otherwise the sync token (strictly-greater). With neither token this is a
// first sync: all items, minus soft-deleted ones.
func (s *itemService) GetItems(ctx context.Context, dto models.GetItemsDTO) (models.GetItemsResult, error) {
	log := logger.FromContext(ctx)

	if dto.UserUUID == "" {
		return models.GetItemsResult{}, ErrNoUserUUID
	}

	limit := dto.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	query := models.ItemQuery{
		UserUUID:  dto.UserUUID,
		Limit:     limit,
		SortBy:    "updated_at_timestamp",
		SortOrder: models.SortAsc,
	}

	if dto.ContentType != "" {
		contentType := dto.ContentType
		query.ContentType = &contentType
	}

	switch {
	case dto.CursorToken != "":
		timestamp, err := DecodeSyncToken(dto.CursorToken)
		if err != nil {
			log.Err(err).
				Str("func", "itemService.GetItems").
				Str("user_uuid", dto.UserUUID).
				Msg("failed to decode cursor token")
			return models.GetItemsResult{}, err
		}
		query.LastSyncTime = &timestamp
		query.SyncTimeComparison = models.CompareGreaterOrEqual

	case dto.SyncToken != "":
		timestamp, err := DecodeSyncToken(dto.SyncToken)
		if err != nil {
			log.Err(err).
				Str("func", "itemService.GetItems").
				Str("user_uuid", dto.UserUUID).
				Msg("failed to decode sync token")
			return models.GetItemsResult{}, err
		}
		query.LastSyncTime = &timestamp
		query.SyncTimeComparison = models.CompareGreater

	default:
		// First sync: tombstones are of no use to a client with empty
		// local state.
		notDeleted := false
		query.Deleted = &notDeleted
	}

	items, err := s.items.FindAll(ctx, query)
	if err != nil {
		return models.GetItemsResult{}, fmt.Errorf("error retrieving items: %w", err)
	}

	result := models.GetItemsResult{Items: items}

	// A full page means more items may follow; the cursor re-sends the
	// boundary item so nothing is lost between pages.
	if limit > 0 && len(items) == limit {
		result.CursorToken = EncodeSyncToken(items[len(items)-1].UpdatedAtTimestamp)
	}

	return result, nil
}

// SaveItems implements the save pipeline.
//
// Read-only access rejects every hash and persists nothing. Otherwise each
// hash flows through the validation rule chain and the conflict resolver;
// everything resolvable is staged and committed as one atomic batch.
func (s *itemService) SaveItems(ctx context.Context, dto models.SaveItemsDTO) (models.SaveOutcome, error) {
	log := logger.FromContext(ctx)

	if dto.UserUUID == "" {
		return models.SaveOutcome{}, ErrNoUserUUID
	}

	apiVersion := models.NormalizeAPIVersion(dto.APIVersion)

	if dto.ReadOnlyAccess {
		conflicts := make([]models.ConflictRecord, 0, len(dto.ItemHashes))
		for _, hash := range dto.ItemHashes {
			unsaved := hash
			conflicts = append(conflicts, models.ConflictRecord{
				UnsavedItem: &unsaved,
				Type:        models.ReadOnlyError,
			})
		}

		return models.SaveOutcome{
			SavedItems: []models.Item{},
			Conflicts:  conflicts,
			SyncToken:  EncodeSyncToken(s.timer.GetTimestampInMicroseconds()),
		}, nil
	}

	staged := make([]*models.Item, 0, len(dto.ItemHashes))
	conflicts := make([]models.ConflictRecord, 0)

	for _, hash := range dto.ItemHashes {
		validation := ItemSaveValidation{
			UserUUID:   dto.UserUUID,
			APIVersion: apiVersion,
			ItemHash:   hash,
		}

		ruleResult, err := s.validator.Validate(ctx, validation)
		if err != nil {
			return models.SaveOutcome{}, err
		}
		if !ruleResult.Passed {
			conflicts = append(conflicts, *ruleResult.Conflict)
			continue
		}

		existing, err := s.findExisting(ctx, hash.UUID, dto.UserUUID)
		if err != nil {
			return models.SaveOutcome{}, err
		}

		resolved, err := s.resolver.Resolve(ctx, validation, existing)
		if err != nil {
			return models.SaveOutcome{}, err
		}

		if resolved.conflict != nil {
			conflicts = append(conflicts, *resolved.conflict)
		}

		if resolved.decision == decideConflict {
			continue
		}

		staged = append(staged, s.buildItem(hash, dto.UserUUID, existing))
	}

	if len(staged) > 0 {
		if err := s.items.InsertOrUpdate(ctx, staged...); err != nil {
			log.Err(err).
				Str("func", "itemService.SaveItems").
				Str("user_uuid", dto.UserUUID).
				Int("staged_count", len(staged)).
				Msg("failed to commit save batch")
			return models.SaveOutcome{}, fmt.Errorf("error saving items: %w", err)
		}
	}

	savedItems := make([]models.Item, 0, len(staged))
	for _, item := range staged {
		savedItems = append(savedItems, *item)
	}

	return models.SaveOutcome{
		SavedItems: savedItems,
		Conflicts:  conflicts,
		SyncToken:  s.freshSyncToken(savedItems),
	}, nil
}

func (s *itemService) findExisting(ctx context.Context, uuid, userUUID string) (*models.Item, error) {
	existing, err := s.items.FindByUUIDAndUserUUID(ctx, uuid, userUUID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &existing, nil
}

// buildItem stages the persisted form of an incoming hash. The server
// assigns the authoritative microsecond timestamps at commit time; a
// soft-deleted item keeps its identifier but carries no content.
func (s *itemService) buildItem(hash models.ItemHash, userUUID string, existing *models.Item) *models.Item {
	now := s.timer.GetTimestampInMicroseconds()
	nowTime := s.timer.ConvertMicrosecondsToTime(now)

	item := &models.Item{
		UUID:               hash.UUID,
		UserUUID:           userUUID,
		Content:            hash.Content,
		EncItemKey:         hash.EncItemKey,
		ItemsKeyID:         hash.ItemsKeyID,
		DuplicateOf:        hash.DuplicateOf,
		AuthHash:           hash.AuthHash,
		Deleted:            hash.Deleted,
		UpdatedAt:          &nowTime,
		UpdatedAtTimestamp: now,
	}

	if hash.ContentType != "" {
		contentType := hash.ContentType
		item.ContentType = &contentType
	}

	switch {
	case existing != nil:
		item.CreatedAt = existing.CreatedAt
		item.CreatedAtTimestamp = existing.CreatedAtTimestamp

	case hash.CreatedAt != "":
		if createdAt, err := s.timer.ConvertStringDateToMicroseconds(hash.CreatedAt); err == nil {
			createdTime := s.timer.ConvertMicrosecondsToTime(createdAt)
			item.CreatedAt = &createdTime
			item.CreatedAtTimestamp = createdAt
		} else {
			item.CreatedAt = &nowTime
			item.CreatedAtTimestamp = now
		}

	default:
		item.CreatedAt = &nowTime
		item.CreatedAtTimestamp = now
	}

	if hash.Deleted {
		item.Content = ""
		item.EncItemKey = ""
		item.ItemsKeyID = nil
		item.AuthHash = nil
	}

	return item
}

// freshSyncToken encodes a checkpoint reflecting server state immediately
// after the batch committed: one microsecond past the newest saved item, or
// the current time when nothing was saved.
func (s *itemService) freshSyncToken(savedItems []models.Item) string {
	if len(savedItems) == 0 {
		return EncodeSyncToken(s.timer.GetTimestampInMicroseconds())
	}

	var maxTimestamp int64
	for _, item := range savedItems {
		if item.UpdatedAtTimestamp > maxTimestamp {
			maxTimestamp = item.UpdatedAtTimestamp
		}
	}

	return EncodeSyncToken(maxTimestamp + 1)
}

// FrontLoadKeysItemsToTop fetches the user's key items and moves them to the
// front of retrievedItems, preserving relative order within both groups.
func (s *itemService) FrontLoadKeysItemsToTop(ctx context.Context, userUUID string, retrievedItems []models.Item) ([]models.Item, error) {
	contentType := string(models.ItemsKey)

	keysItems, err := s.items.FindAll(ctx, models.ItemQuery{
		UserUUID:    userUUID,
		ContentType: &contentType,
		SortBy:      "updated_at_timestamp",
		SortOrder:   models.SortAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("error retrieving keys items: %w", err)
	}

	if len(keysItems) == 0 {
		return retrievedItems, nil
	}

	keysUUIDs := make(map[string]struct{}, len(keysItems))
	for _, key := range keysItems {
		keysUUIDs[key.UUID] = struct{}{}
	}

	reordered := make([]models.Item, 0, len(keysItems)+len(retrievedItems))
	reordered = append(reordered, keysItems...)
	for _, item := range retrievedItems {
		if _, isKey := keysUUIDs[item.UUID]; !isKey {
			reordered = append(reordered, item)
		}
	}

	return reordered, nil
}

// FindMFAExtension returns the user's MFA extension item.
func (s *itemService) FindMFAExtension(ctx context.Context, userUUID string) (models.Item, error) {
	return s.items.FindMFAExtensionByUserUUID(ctx, userUUID)
}

// DeleteMFAExtension removes all of the user's MFA extension items.
func (s *itemService) DeleteMFAExtension(ctx context.Context, userUUID string) error {
	return s.items.DeleteByUserUUIDAndContentType(ctx, userUUID, string(models.MFA))
}
