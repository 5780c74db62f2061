package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/elgohr-update/syncing-server/internal/logger"
	"github.com/elgohr-update/syncing-server/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	mu       sync.Mutex
	runCount int
}

func (m *mockWorker) Run(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount++
}

func (m *mockWorker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount
}

func waitForCount(t *testing.T, w *mockWorker, expected int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if w.count() == expected {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected runCount=%d, got %d", expected, w.count())
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for _, w := range []*mockWorker{w1, w2, w3} {
		waitForCount(t, w, 1)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestAnalyticsWorker_ConsumesQueue(t *testing.T) {
	queue := make(chan models.Activity, 2)
	worker := NewAnalyticsWorker(queue, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	queue <- models.Activity{Tags: []string{"editing-items"}, AnalyticsID: 42, Periods: []models.ActivityPeriod{models.PeriodToday}}
	queue <- models.Activity{Tags: []string{"email-unbacked-up-data"}, AnalyticsID: 42}

	// Both signals drained without blocking the producer side.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && len(queue) > 0 {
		time.Sleep(time.Millisecond)
	}
	if len(queue) != 0 {
		t.Fatalf("expected drained queue, %d signals left", len(queue))
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestAnalyticsWorker_StopsOnContextCancellation(t *testing.T) {
	queue := make(chan models.Activity)
	worker := NewAnalyticsWorker(queue, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
