/*
scheduler.go - Run log retention scheduler

PURPOSE:
  Periodically deletes analysis-run metadata older than the configured
  retention, so the run log does not grow without bound.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Prunes once immediately on start, then on every tick
  - Retention of 0 disables the scheduler

USAGE:
  scheduler := NewRetentionScheduler(store, 30*24*time.Hour, time.Hour, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - store/sqlite/sqlite.go: PruneRuns
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/attendance-analyzer/store/sqlite"
)

// RetentionScheduler prunes old analysis runs.
type RetentionScheduler struct {
	Store         *sqlite.Store
	Retention     time.Duration
	CheckInterval time.Duration
	Logger        *slog.Logger

	now    func() time.Time
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRetentionScheduler creates a new scheduler.
func NewRetentionScheduler(store *sqlite.Store, retention, interval time.Duration, logger *slog.Logger) *RetentionScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionScheduler{
		Store:         store,
		Retention:     retention,
		CheckInterval: interval,
		Logger:        logger.With(slog.String("component", "retention")),
		now:           time.Now,
	}
}

// Enabled reports whether the scheduler will do anything when started.
func (rs *RetentionScheduler) Enabled() bool {
	return rs.Retention > 0 && rs.CheckInterval > 0
}

// Start begins the scheduler.
func (rs *RetentionScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled() {
		rs.Logger.Info("disabled, not starting")
		return
	}
	if rs.ticker != nil {
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)

	go rs.run(rs.ticker.C, rs.stop)

	rs.Logger.Info("started", slog.Duration("interval", rs.CheckInterval), slog.Duration("retention", rs.Retention))
}

// Stop stops the scheduler and waits for an in-flight prune to finish.
func (rs *RetentionScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		rs.Logger.Info("stopped")
	}
}

func (rs *RetentionScheduler) run(tick <-chan time.Time, stop <-chan struct{}) {
	defer rs.wg.Done()

	rs.Prune(context.Background())

	for {
		select {
		case <-tick:
			rs.Prune(context.Background())
		case <-stop:
			return
		}
	}
}

// Prune deletes runs older than the retention window once.
func (rs *RetentionScheduler) Prune(ctx context.Context) int64 {
	cutoff := rs.now().Add(-rs.Retention)

	removed, err := rs.Store.PruneRuns(ctx, cutoff)
	if err != nil {
		rs.Logger.Error("prune failed", slog.Any("error", err))
		return 0
	}
	if removed > 0 {
		rs.Logger.Info("pruned analysis runs", slog.Int64("removed", removed), slog.Time("cutoff", cutoff))
	}
	return removed
}
