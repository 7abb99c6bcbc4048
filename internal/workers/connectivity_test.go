package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/logger"
)

// flakyPinger fails until recoverAfter probes have happened, then succeeds.
type flakyPinger struct {
	probes       atomic.Int64
	recoverAfter int64
}

func (p *flakyPinger) Ping(context.Context) error {
	if p.probes.Add(1) <= p.recoverAfter {
		return adapter.ErrConnectivity
	}
	return nil
}

type triggerChan struct {
	ch chan struct{}
}

func newTriggerChan() *triggerChan {
	return &triggerChan{ch: make(chan struct{}, 16)}
}

func (c *triggerChan) Trigger() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

func TestConnectivityWatcher_TriggersOnRecovery(t *testing.T) {
	pinger := &flakyPinger{recoverAfter: 3}
	scheduler := newTriggerChan()

	watcher := NewConnectivityWatcher(pinger, scheduler, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watcher.Run(ctx)
		close(done)
	}()

	select {
	case <-scheduler.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired on recovery")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestConnectivityWatcher_NoTriggerWhileOnline(t *testing.T) {
	pinger := &flakyPinger{recoverAfter: 0} // always reachable
	scheduler := newTriggerChan()

	watcher := NewConnectivityWatcher(pinger, scheduler, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	watcher.Run(ctx)

	select {
	case <-scheduler.ch:
		t.Fatal("watcher fired without an offline-to-online transition")
	default:
	}
	assert.Greater(t, pinger.probes.Load(), int64(1), "watcher must keep probing while online")
}
