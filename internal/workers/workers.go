package workers

import (
	"context"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/internal/service"
)

// Workers aggregates every background worker of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the worker lane over the given services.
func NewWorkers(services *service.Services, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewAnalyticsWorker(services.Analytics.Queue(), logger),
		},
	}
}

// Run starts every worker on its own goroutine. The workers stop when ctx is
// cancelled; Run itself returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
