// Package warm keeps the season cache populated: it preloads every season
// on boot and refreshes on an interval so manifest revisions are picked up
// without waiting for a request.
package warm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"league-history-service/internal/domain"
	"league-history-service/internal/logging"
)

const defaultInterval = time.Hour

// Loader is the season source the warmer refreshes through.
type Loader interface {
	AllSeasons(ctx context.Context) ([]*domain.SeasonRecord, error)
}

// Warmer refreshes the full season set on an interval.
type Warmer struct {
	loader   Loader
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the warm loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	SeasonsLoaded       int
}

// IsReady reports whether the warmer has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Warmer with sane defaults.
func New(loader Loader, logger *slog.Logger, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Warmer{
		loader:   loader,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins warming until the context is cancelled or Stop is called.
func (w *Warmer) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.startMu.Unlock()

	w.ticker = time.NewTicker(w.interval)

	go func() {
		w.logInfo("warmer started", slog.Int64(logging.FieldDurationMS, w.interval.Milliseconds()))
		// Initial load to warm data on boot.
		w.warmOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				w.stopTicker()
				w.logInfo("warmer stopped")
				return
			case <-w.done:
				w.stopTicker()
				w.logInfo("warmer stopped")
				return
			case <-w.ticker.C:
				w.warmOnce(ctx)
			}
		}
	}()
}

// Stop halts the warm loop.
func (w *Warmer) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopTicker()
	})
	return nil
}

func (w *Warmer) warmOnce(ctx context.Context) {
	start := time.Now()
	w.recordAttempt(start)

	seasons, err := w.loader.AllSeasons(ctx)
	if err != nil {
		w.logError("season warm failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		w.recordFailure(err, start)
		return
	}

	w.recordSuccess(start, len(seasons))
	w.logInfo("seasons warmed",
		logging.FieldCount, len(seasons),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (w *Warmer) stopTicker() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Warmer) logInfo(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}

func (w *Warmer) logError(msg string, err error, attrs ...any) {
	if w.logger != nil {
		w.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (w *Warmer) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.LastAttempt = at
}

func (w *Warmer) recordSuccess(at time.Time, count int) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
	w.status.SeasonsLoaded = count
}

func (w *Warmer) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}

// Status returns a snapshot of the warmer's recent health.
func (w *Warmer) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
