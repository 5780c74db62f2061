package service

import (
	"github.com/elgohr-update/syncing-server/internal/config"
	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/store"
	"github.com/elgohr-update/syncing-server/internal/utils"
)

// Services aggregates every use case the transport layer consumes.
type Services struct {
	ItemService      ItemService
	SyncService      SyncService
	IntegrityService IntegrityService
	SessionService   SessionService
	Analytics        *AnalyticsDispatcher
}

// NewServices wires the full service graph over the given storages.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	timer := NewTimer()

	validator := NewSaveValidator(
		NewContentTypeFilter(),
		NewContentSizeFilter(cfg.Sync.MaxItemSizeBytes),
		NewOwnershipFilter(storages.ItemRepository),
	)
	resolver := NewConflictResolver(storages.ItemRepository, timer, logger)

	itemService := NewItemService(storages.ItemRepository, validator, resolver, timer, cfg.Sync, logger)
	integrityService := NewIntegrityService(storages.ItemRepository, timer, logger)
	analytics := NewAnalyticsDispatcher(cfg.Workers.AnalyticsQueueSize, logger)

	return &Services{
		ItemService:      itemService,
		SyncService:      NewSyncService(itemService, integrityService, analytics, logger),
		IntegrityService: integrityService,
		SessionService:   NewSessionService(storages.SessionRepository, utils.NewUUIDGenerator(), cfg.App, logger),
		Analytics:        analytics,
	}
}
