package service

import (
	"context"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// syncService is the concrete implementation of [SyncService]: the top-level
// use case sequencing the save and retrieval pipelines into one
// request/response cycle.
//
// Ordering is part of the contract: the save pipeline runs first so that
// server state reflects the client's own just-submitted changes, then
// retrieval runs against the REQUEST's checkpoint tokens — not the fresh one
// returned by the save — so the client also receives what other devices
// wrote in between.
type syncService struct {
	items     ItemService
	integrity IntegrityService
	analytics AnalyticsService
	logger    *logger.Logger
}

// NewSyncService constructs a [SyncService].
func NewSyncService(items ItemService, integrity IntegrityService, analytics AnalyticsService, logger *logger.Logger) SyncService {
	return &syncService{
		items:     items,
		integrity: integrity,
		analytics: analytics,
		logger:    logger,
	}
}

// SyncItems implements [SyncService].
func (s *syncService) SyncItems(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	saveOutcome, err := s.items.SaveItems(ctx, models.SaveItemsDTO{
		ItemHashes:     request.ItemHashes,
		UserUUID:       request.UserUUID,
		APIVersion:     models.NormalizeAPIVersion(request.APIVersion),
		ReadOnlyAccess: request.ReadOnlyAccess,
	})
	if err != nil {
		return models.SyncResponse{}, err
	}

	retrieval, err := s.items.GetItems(ctx, models.GetItemsDTO{
		UserUUID:    request.UserUUID,
		ContentType: request.ContentType,
		SyncToken:   request.SyncToken,
		CursorToken: request.CursorToken,
		Limit:       request.Limit,
	})
	if err != nil {
		return models.SyncResponse{}, err
	}

	retrievedItems := filterOutSyncConflicts(retrieval.Items, saveOutcome.Conflicts)

	// First sync: a bootstrapping client needs key items before anything
	// they encrypt.
	if request.SyncToken == "" {
		retrievedItems, err = s.items.FrontLoadKeysItemsToTop(ctx, request.UserUUID, retrievedItems)
		if err != nil {
			return models.SyncResponse{}, err
		}
	}

	response := models.SyncResponse{
		RetrievedItems: retrievedItems,
		SavedItems:     saveOutcome.SavedItems,
		Conflicts:      saveOutcome.Conflicts,
		SyncToken:      saveOutcome.SyncToken,
		CursorToken:    retrieval.CursorToken,
	}

	if request.ComputeIntegrityHash {
		integrityHash, hashErr := s.integrity.ComputeIntegrityHash(ctx, request.UserUUID)
		if hashErr != nil {
			return models.SyncResponse{}, hashErr
		}
		response.IntegrityHash = &integrityHash
	}

	if request.AnalyticsID != nil && len(saveOutcome.SavedItems) > 0 {
		s.markSyncActivity(ctx, *request.AnalyticsID, log)
	}

	return response, nil
}

// markSyncActivity emits the two post-save activity signals in documented
// order. Analytics failures are logged and swallowed: they never surface to
// the sync response.
func (s *syncService) markSyncActivity(ctx context.Context, analyticsID int64, log *logger.Logger) {
	err := s.analytics.MarkActivity(ctx, []string{models.ActivityEditingItems}, analyticsID, []models.ActivityPeriod{
		models.PeriodToday,
		models.PeriodThisWeek,
		models.PeriodThisMonth,
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncService.markSyncActivity").
			Msg("failed to mark editing-items activity")
	}

	err = s.analytics.MarkActivity(ctx, []string{models.ActivityEmailUnbackedUpData}, analyticsID, []models.ActivityPeriod{
		models.PeriodToday,
		models.PeriodThisWeek,
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncService.markSyncActivity").
			Msg("failed to mark email-unbacked-up-data activity")
	}
}

// filterOutSyncConflicts drops from retrievedItems any item that appears as
// the server item of a sync conflict: the client already holds its own copy
// and will reconcile via the conflict record instead.
func filterOutSyncConflicts(retrievedItems []models.Item, conflicts []models.ConflictRecord) []models.Item {
	conflictUUIDs := make(map[string]struct{})
	for _, conflict := range conflicts {
		if conflict.Type == models.SyncConflict && conflict.ServerItem != nil {
			conflictUUIDs[conflict.ServerItem.UUID] = struct{}{}
		}
	}

	if len(conflictUUIDs) == 0 {
		return retrievedItems
	}

	filtered := make([]models.Item, 0, len(retrievedItems))
	for _, item := range retrievedItems {
		if _, conflicted := conflictUUIDs[item.UUID]; !conflicted {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
