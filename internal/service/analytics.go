package service

import (
	"context"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// AnalyticsDispatcher is the [AnalyticsService] implementation: a buffered
// channel feeding the background analytics worker. MarkActivity never blocks
// the sync critical path; when the queue is full the signal is dropped with
// a warning, never an error.
type AnalyticsDispatcher struct {
	queue  chan models.Activity
	logger *logger.Logger
}

// NewAnalyticsDispatcher constructs an [AnalyticsService] with the given
// queue capacity.
func NewAnalyticsDispatcher(queueSize int, logger *logger.Logger) *AnalyticsDispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}

	return &AnalyticsDispatcher{
		queue:  make(chan models.Activity, queueSize),
		logger: logger,
	}
}

// MarkActivity implements [AnalyticsService]. The context is accepted for
// interface symmetry; enqueueing is instantaneous or skipped.
func (d *AnalyticsDispatcher) MarkActivity(ctx context.Context, tags []string, analyticsID int64, periods []models.ActivityPeriod) error {
	activity := models.Activity{
		Tags:        tags,
		AnalyticsID: analyticsID,
		Periods:     periods,
	}

	select {
	case d.queue <- activity:
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "AnalyticsDispatcher.MarkActivity").
			Strs("tags", tags).
			Msg("analytics queue full, dropping activity")
	}

	return nil
}

// Queue exposes the signal stream consumed by the analytics worker.
func (d *AnalyticsDispatcher) Queue() <-chan models.Activity {
	return d.queue
}
