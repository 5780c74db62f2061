package http

import (
	"context"
	"errors"

	"github.com/elgohr-update/syncing-server/internal/config"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/service"
	"github.com/elgohr-update/syncing-server/models"
)

var errInternal = errors.New("internal error")

type mockSyncService struct {
	syncItemsFn func(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error)
}

func (m *mockSyncService) SyncItems(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error) {
	if m.syncItemsFn != nil {
		return m.syncItemsFn(ctx, request)
	}
	return models.SyncResponse{}, nil
}

type mockSessionService struct {
	createFn func(ctx context.Context, userUUID, userAgent, apiVersion string, readOnly bool, analyticsID *int64) (models.Session, string, error)
	lookupFn func(ctx context.Context, token string) (models.Session, error)
	deleteFn func(ctx context.Context, token string) error
}

func (m *mockSessionService) CreateSession(ctx context.Context, userUUID, userAgent, apiVersion string, readOnly bool, analyticsID *int64) (models.Session, string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userUUID, userAgent, apiVersion, readOnly, analyticsID)
	}
	return models.Session{}, "", nil
}

func (m *mockSessionService) LookupSession(ctx context.Context, token string) (models.Session, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, token)
	}
	return models.Session{}, service.ErrSessionNotFound
}

func (m *mockSessionService) DeleteSessionByToken(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func newTestHandler(services *service.Services) *Handler {
	return NewHandler(services, config.App{Version: "1.2.3"}, logger.Nop())
}
