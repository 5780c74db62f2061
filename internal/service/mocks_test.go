package service

import (
	"context"
	"errors"
	"time"

	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/models"
)

var errRepo = errors.New("repository error")

// ---- Mock: store.ItemRepository ----

type mockItemRepository struct {
	findAllFn           func(ctx context.Context, query models.ItemQuery) ([]models.Item, error)
	findByUUIDFn        func(ctx context.Context, uuid string) (models.Item, error)
	findByUUIDAndUserFn func(ctx context.Context, uuid, userUUID string) (models.Item, error)
	insertOrUpdateFn    func(ctx context.Context, items ...*models.Item) error
	deleteByUserFn      func(ctx context.Context, userUUID, contentType string) error
	integrityDatesFn    func(ctx context.Context, userUUID string) ([]int64, error)
	findMFAFn           func(ctx context.Context, userUUID string) (models.Item, error)
}

func (m *mockItemRepository) FindAll(ctx context.Context, query models.ItemQuery) ([]models.Item, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, query)
	}
	return nil, nil
}

func (m *mockItemRepository) FindByUUID(ctx context.Context, uuid string) (models.Item, error) {
	if m.findByUUIDFn != nil {
		return m.findByUUIDFn(ctx, uuid)
	}
	return models.Item{}, store.ErrItemNotFound
}

func (m *mockItemRepository) FindByUUIDAndUserUUID(ctx context.Context, uuid, userUUID string) (models.Item, error) {
	if m.findByUUIDAndUserFn != nil {
		return m.findByUUIDAndUserFn(ctx, uuid, userUUID)
	}
	return models.Item{}, store.ErrItemNotFound
}

func (m *mockItemRepository) InsertOrUpdate(ctx context.Context, items ...*models.Item) error {
	if m.insertOrUpdateFn != nil {
		return m.insertOrUpdateFn(ctx, items...)
	}
	return nil
}

func (m *mockItemRepository) DeleteByUserUUIDAndContentType(ctx context.Context, userUUID, contentType string) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userUUID, contentType)
	}
	return nil
}

func (m *mockItemRepository) FindDatesForIntegrityHash(ctx context.Context, userUUID string) ([]int64, error) {
	if m.integrityDatesFn != nil {
		return m.integrityDatesFn(ctx, userUUID)
	}
	return nil, nil
}

func (m *mockItemRepository) FindMFAExtensionByUserUUID(ctx context.Context, userUUID string) (models.Item, error) {
	if m.findMFAFn != nil {
		return m.findMFAFn(ctx, userUUID)
	}
	return models.Item{}, store.ErrItemNotFound
}

// ---- Mock: store.SessionRepository ----

type mockSessionRepository struct {
	createFn func(ctx context.Context, session models.Session) error
	findFn   func(ctx context.Context, tokenHash string) (models.Session, error)
	deleteFn func(ctx context.Context, tokenHash string) error
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	if m.findFn != nil {
		return m.findFn(ctx, tokenHash)
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (m *mockSessionRepository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tokenHash)
	}
	return nil
}

// ---- Mock: ItemService / IntegrityService / AnalyticsService ----

type mockItemService struct {
	getItemsFn      func(ctx context.Context, dto models.GetItemsDTO) (models.GetItemsResult, error)
	saveItemsFn     func(ctx context.Context, dto models.SaveItemsDTO) (models.SaveOutcome, error)
	frontLoadFn     func(ctx context.Context, userUUID string, retrievedItems []models.Item) ([]models.Item, error)
	findMFAFn       func(ctx context.Context, userUUID string) (models.Item, error)
	deleteMFAFn     func(ctx context.Context, userUUID string) error
	frontLoadCalled bool
}

func (m *mockItemService) GetItems(ctx context.Context, dto models.GetItemsDTO) (models.GetItemsResult, error) {
	if m.getItemsFn != nil {
		return m.getItemsFn(ctx, dto)
	}
	return models.GetItemsResult{}, nil
}

func (m *mockItemService) SaveItems(ctx context.Context, dto models.SaveItemsDTO) (models.SaveOutcome, error) {
	if m.saveItemsFn != nil {
		return m.saveItemsFn(ctx, dto)
	}
	return models.SaveOutcome{SavedItems: []models.Item{}}, nil
}

func (m *mockItemService) FrontLoadKeysItemsToTop(ctx context.Context, userUUID string, retrievedItems []models.Item) ([]models.Item, error) {
	m.frontLoadCalled = true
	if m.frontLoadFn != nil {
		return m.frontLoadFn(ctx, userUUID, retrievedItems)
	}
	return retrievedItems, nil
}

func (m *mockItemService) FindMFAExtension(ctx context.Context, userUUID string) (models.Item, error) {
	if m.findMFAFn != nil {
		return m.findMFAFn(ctx, userUUID)
	}
	return models.Item{}, nil
}

func (m *mockItemService) DeleteMFAExtension(ctx context.Context, userUUID string) error {
	if m.deleteMFAFn != nil {
		return m.deleteMFAFn(ctx, userUUID)
	}
	return nil
}

type mockIntegrityService struct {
	computeFn func(ctx context.Context, userUUID string) (string, error)
	calls     int
}

func (m *mockIntegrityService) ComputeIntegrityHash(ctx context.Context, userUUID string) (string, error) {
	m.calls++
	if m.computeFn != nil {
		return m.computeFn(ctx, userUUID)
	}
	return "", nil
}

type markedActivity struct {
	tags        []string
	analyticsID int64
	periods     []models.ActivityPeriod
}

type mockAnalyticsService struct {
	markFn func(ctx context.Context, tags []string, analyticsID int64, periods []models.ActivityPeriod) error
	marked []markedActivity
}

func (m *mockAnalyticsService) MarkActivity(ctx context.Context, tags []string, analyticsID int64, periods []models.ActivityPeriod) error {
	m.marked = append(m.marked, markedActivity{tags: tags, analyticsID: analyticsID, periods: periods})
	if m.markFn != nil {
		return m.markFn(ctx, tags, analyticsID, periods)
	}
	return nil
}

// ---- Fake: Timer ----

// fakeTimer freezes the clock at now (microseconds) while keeping the real
// conversion arithmetic.
type fakeTimer struct {
	now int64
}

func (t *fakeTimer) GetTimestampInMicroseconds() int64 {
	return t.now
}

func (t *fakeTimer) ConvertMicrosecondsToMilliseconds(timestamp int64) int64 {
	return timestamp / 1000
}

func (t *fakeTimer) ConvertStringDateToMicroseconds(date string) (int64, error) {
	parsed, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return 0, err
	}
	return parsed.UnixMicro(), nil
}

func (t *fakeTimer) ConvertMicrosecondsToTime(timestamp int64) time.Time {
	return time.UnixMicro(timestamp).UTC()
}
