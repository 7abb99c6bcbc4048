// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package workers

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/storyshare/storyshare/internal/logger"
)

// Pinger probes the remote service. Any HTTP response counts as reachable;
// only a transport-level failure is an error.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler requests a reconciliation pass without blocking.
type Scheduler interface {
	Trigger()
}

// ConnectivityWatcher tracks whether the remote service is reachable and
// fires the scheduler on every offline-to-online transition, so queued
// submissions are drained the moment connectivity returns rather than on
// the next ticker pass.
type ConnectivityWatcher struct {
	pinger    Pinger
	scheduler Scheduler
	interval  time.Duration
	logger    *logger.Logger
}

// NewConnectivityWatcher builds a watcher that probes every interval while
// online and polls with fibonacci backoff (capped at interval) while offline.
func NewConnectivityWatcher(pinger Pinger, scheduler Scheduler, interval time.Duration, logger *logger.Logger) *ConnectivityWatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ConnectivityWatcher{
		pinger:    pinger,
		scheduler: scheduler,
		interval:  interval,
		logger:    logger,
	}
}

// Run implements Worker. It blocks until ctx is cancelled.
func (w *ConnectivityWatcher) Run(ctx context.Context) {
	online := w.pinger.Ping(ctx) == nil

	for ctx.Err() == nil {
		if online {
			online = w.watchWhileOnline(ctx)
			continue
		}

		if err := w.awaitReachable(ctx); err != nil {
			return
		}

		online = true
		w.logger.Info().Msg("connectivity restored, requesting drain")
		w.scheduler.Trigger()
	}
}

// watchWhileOnline probes at the steady interval and returns false once a
// probe fails, or true when ctx ended while still online.
func (w *ConnectivityWatcher) watchWhileOnline(ctx context.Context) bool {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return true
		case <-t.C:
			if err := w.pinger.Ping(ctx); err != nil {
				w.logger.Warn().Err(err).Msg("remote service unreachable")
				return false
			}
		}
	}
}

// awaitReachable polls the service with backoff until it answers or ctx is
// cancelled.
func (w *ConnectivityWatcher) awaitReachable(ctx context.Context) error {
	b := retry.WithCappedDuration(w.interval, retry.NewFibonacci(time.Second))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := w.pinger.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
