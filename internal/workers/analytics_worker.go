package workers

import (
	"context"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// AnalyticsWorker drains the activity queue filled by the sync use case and
// records each signal. Recording is a structured log line per activity; the
// worker is the single consumer of the queue.
type AnalyticsWorker struct {
	queue  <-chan models.Activity
	logger *logger.Logger
}

// NewAnalyticsWorker constructs an [AnalyticsWorker] over the given queue.
func NewAnalyticsWorker(queue <-chan models.Activity, logger *logger.Logger) *AnalyticsWorker {
	return &AnalyticsWorker{
		queue:  queue,
		logger: logger,
	}
}

// Run consumes activities until ctx is cancelled.
func (w *AnalyticsWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().
				Str("func", "AnalyticsWorker.Run").
				Msg("analytics worker stopped")
			return

		case activity := <-w.queue:
			w.record(activity)
		}
	}
}

func (w *AnalyticsWorker) record(activity models.Activity) {
	periods := make([]string, 0, len(activity.Periods))
	for _, period := range activity.Periods {
		periods = append(periods, string(period))
	}

	w.logger.Info().
		Strs("tags", activity.Tags).
		Int64("analytics_id", activity.AnalyticsID).
		Strs("periods", periods).
		Msg("activity marked")
}
