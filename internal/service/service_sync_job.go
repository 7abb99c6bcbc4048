package service

import (
	"context"
	"sync"
	"time"

	"github.com/storyshare/storyshare/internal/logger"
)

type syncJob struct {
	syncService SyncService
	logger      *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	trigger chan struct{}
	wg      sync.WaitGroup
}

// NewSyncJob creates a syncJob that calls Drain on a ticker and whenever
// Trigger is fired. The job is idle until Start is called.
func NewSyncJob(syncService SyncService, logger *logger.Logger) SyncJob {
	return &syncJob{syncService: syncService, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that drains the pending queue every
// interval and on every Trigger. If interval is zero or negative it defaults
// to 5 minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	// Buffered so a Trigger during a running drain is remembered and
	// serviced right after, instead of being lost.
	trigger := make(chan struct{}, 1)
	j.trigger = trigger
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.drain(jobCtx)
			case <-trigger:
				j.drain(jobCtx)
			}
		}
	}()
}

// Trigger implements SyncScheduler. It never blocks: when the job is not
// running, or a wake-up is already queued, the call is a no-op.
func (j *syncJob) Trigger() {
	j.mu.Lock()
	trigger := j.trigger
	j.mu.Unlock()

	if trigger == nil {
		return
	}

	select {
	case trigger <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.trigger = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *syncJob) drain(ctx context.Context) {
	if _, err := j.syncService.Drain(ctx); err != nil {
		j.logger.Err(err).Msg("background drain failed")
	}
}
