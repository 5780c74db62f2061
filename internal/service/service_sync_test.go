package service

import (
	"context"
	"testing"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestSyncService(items *mockItemService, integrity *mockIntegrityService, analytics *mockAnalyticsService) SyncService {
	return NewSyncService(items, integrity, analytics, logger.Nop())
}

func TestSyncService_SavesBeforeRetrieving(t *testing.T) {
	order := make([]string, 0, 2)
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, dto models.SaveItemsDTO) (models.SaveOutcome, error) {
			order = append(order, "save")
			assert.Equal(t, "user-1", dto.UserUUID)
			assert.Equal(t, "20200115", dto.APIVersion, "api version must reach the save pipeline normalized")
			return models.SaveOutcome{SavedItems: []models.Item{}, SyncToken: "save-token"}, nil
		},
		getItemsFn: func(_ context.Context, dto models.GetItemsDTO) (models.GetItemsResult, error) {
			order = append(order, "retrieve")
			// Retrieval runs against the request's checkpoint, not the fresh one.
			assert.Equal(t, "request-sync-token", dto.SyncToken)
			assert.Equal(t, "request-cursor-token", dto.CursorToken)
			assert.Equal(t, 50, dto.Limit)
			assert.Equal(t, "Note", dto.ContentType)
			return models.GetItemsResult{CursorToken: "next-cursor"}, nil
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:    "user-1",
		APIVersion:  "2020.01.15",
		SyncToken:   "request-sync-token",
		CursorToken: "request-cursor-token",
		Limit:       50,
		ContentType: "Note",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"save", "retrieve"}, order)
	assert.Equal(t, "save-token", response.SyncToken)
	assert.Equal(t, "next-cursor", response.CursorToken)
	assert.Nil(t, response.IntegrityHash)
}

func TestSyncService_FiltersRetrievedItemsConflictingWithSave(t *testing.T) {
	conflicted := models.Item{UUID: "item-2"}
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{
				SavedItems: []models.Item{},
				Conflicts: []models.ConflictRecord{
					{ServerItem: &conflicted, Type: models.SyncConflict},
				},
			}, nil
		},
		getItemsFn: func(_ context.Context, _ models.GetItemsDTO) (models.GetItemsResult, error) {
			return models.GetItemsResult{Items: []models.Item{
				{UUID: "item-1"},
				{UUID: "item-2"},
				{UUID: "item-3"},
			}}, nil
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:  "user-1",
		SyncToken: "token",
	})

	require.NoError(t, err)
	require.Len(t, response.RetrievedItems, 2)
	assert.Equal(t, "item-1", response.RetrievedItems[0].UUID)
	assert.Equal(t, "item-3", response.RetrievedItems[1].UUID)
	require.Len(t, response.Conflicts, 1)
}

func TestSyncService_NonSyncConflictsDoNotFilterRetrieval(t *testing.T) {
	unsaved := models.ItemHash{UUID: "item-1"}
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{
				SavedItems: []models.Item{},
				Conflicts: []models.ConflictRecord{
					{UnsavedItem: &unsaved, Type: models.ContentTypeError},
				},
			}, nil
		},
		getItemsFn: func(_ context.Context, _ models.GetItemsDTO) (models.GetItemsResult, error) {
			return models.GetItemsResult{Items: []models.Item{{UUID: "item-1"}}}, nil
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:  "user-1",
		SyncToken: "token",
	})

	require.NoError(t, err)
	assert.Len(t, response.RetrievedItems, 1)
}

func TestSyncService_FirstSyncFrontLoadsKeyItems(t *testing.T) {
	items := &mockItemService{
		getItemsFn: func(_ context.Context, _ models.GetItemsDTO) (models.GetItemsResult, error) {
			return models.GetItemsResult{Items: []models.Item{{UUID: "note-1"}}}, nil
		},
		frontLoadFn: func(_ context.Context, userUUID string, retrievedItems []models.Item) ([]models.Item, error) {
			assert.Equal(t, "user-1", userUUID)
			return append([]models.Item{{UUID: "key-1"}}, retrievedItems...), nil
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{UserUUID: "user-1"})

	require.NoError(t, err)
	require.Len(t, response.RetrievedItems, 2)
	assert.Equal(t, "key-1", response.RetrievedItems[0].UUID)
}

func TestSyncService_CheckpointedSyncSkipsFrontLoading(t *testing.T) {
	items := &mockItemService{}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:  "user-1",
		SyncToken: "token",
	})

	require.NoError(t, err)
	assert.False(t, items.frontLoadCalled)
}

func TestSyncService_IntegrityHashOnRequest(t *testing.T) {
	integrity := &mockIntegrityService{
		computeFn: func(_ context.Context, userUUID string) (string, error) {
			assert.Equal(t, "user-1", userUUID)
			return "digest", nil
		},
	}
	svc := newTestSyncService(&mockItemService{}, integrity, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:             "user-1",
		ComputeIntegrityHash: true,
	})

	require.NoError(t, err)
	require.NotNil(t, response.IntegrityHash)
	assert.Equal(t, "digest", *response.IntegrityHash)
}

func TestSyncService_IntegrityHashSkippedByDefault(t *testing.T) {
	integrity := &mockIntegrityService{}
	svc := newTestSyncService(&mockItemService{}, integrity, &mockAnalyticsService{})

	response, err := svc.SyncItems(context.Background(), models.SyncRequest{UserUUID: "user-1"})

	require.NoError(t, err)
	assert.Nil(t, response.IntegrityHash)
	assert.Zero(t, integrity.calls)
}

func TestSyncService_SavedItemsMarkActivity(t *testing.T) {
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{SavedItems: []models.Item{{UUID: "item-1"}}}, nil
		},
	}
	analytics := &mockAnalyticsService{}
	svc := newTestSyncService(items, &mockIntegrityService{}, analytics)

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:    "user-1",
		AnalyticsID: int64Ptr(42),
	})

	require.NoError(t, err)
	require.Len(t, analytics.marked, 2)

	first := analytics.marked[0]
	assert.Equal(t, []string{models.ActivityEditingItems}, first.tags)
	assert.Equal(t, int64(42), first.analyticsID)
	assert.Equal(t, []models.ActivityPeriod{models.PeriodToday, models.PeriodThisWeek, models.PeriodThisMonth}, first.periods)

	second := analytics.marked[1]
	assert.Equal(t, []string{models.ActivityEmailUnbackedUpData}, second.tags)
	assert.Equal(t, int64(42), second.analyticsID)
	assert.Equal(t, []models.ActivityPeriod{models.PeriodToday, models.PeriodThisWeek}, second.periods)
}

func TestSyncService_NoAnalyticsIDMeansNoActivity(t *testing.T) {
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{SavedItems: []models.Item{{UUID: "item-1"}}}, nil
		},
	}
	analytics := &mockAnalyticsService{}
	svc := newTestSyncService(items, &mockIntegrityService{}, analytics)

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{UserUUID: "user-1"})

	require.NoError(t, err)
	assert.Empty(t, analytics.marked)
}

func TestSyncService_NothingSavedMeansNoActivity(t *testing.T) {
	analytics := &mockAnalyticsService{}
	svc := newTestSyncService(&mockItemService{}, &mockIntegrityService{}, analytics)

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:    "user-1",
		AnalyticsID: int64Ptr(42),
	})

	require.NoError(t, err)
	assert.Empty(t, analytics.marked)
}

func TestSyncService_AnalyticsErrorsSwallowed(t *testing.T) {
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{SavedItems: []models.Item{{UUID: "item-1"}}}, nil
		},
	}
	analytics := &mockAnalyticsService{
		markFn: func(_ context.Context, _ []string, _ int64, _ []models.ActivityPeriod) error {
			return errRepo
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, analytics)

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{
		UserUUID:    "user-1",
		AnalyticsID: int64Ptr(42),
	})

	require.NoError(t, err)
	assert.Len(t, analytics.marked, 2, "a failing first signal must not stop the second")
}

func TestSyncService_SaveErrorAborts(t *testing.T) {
	items := &mockItemService{
		saveItemsFn: func(_ context.Context, _ models.SaveItemsDTO) (models.SaveOutcome, error) {
			return models.SaveOutcome{}, errRepo
		},
		getItemsFn: func(_ context.Context, _ models.GetItemsDTO) (models.GetItemsResult, error) {
			t.Fatal("retrieval must not run after a failed save")
			return models.GetItemsResult{}, nil
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{UserUUID: "user-1"})

	require.ErrorIs(t, err, errRepo)
}

func TestSyncService_RetrievalErrorAborts(t *testing.T) {
	items := &mockItemService{
		getItemsFn: func(_ context.Context, _ models.GetItemsDTO) (models.GetItemsResult, error) {
			return models.GetItemsResult{}, errRepo
		},
	}
	svc := newTestSyncService(items, &mockIntegrityService{}, &mockAnalyticsService{})

	_, err := svc.SyncItems(context.Background(), models.SyncRequest{UserUUID: "user-1"})

	require.ErrorIs(t, err, errRepo)
}
