package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type purgeRecorder struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
	fired   chan struct{}
}

func newPurgeRecorder(err error) *purgeRecorder {
	return &purgeRecorder{
		err:   err,
		fired: make(chan struct{}, 16),
	}
}

func (p *purgeRecorder) PurgeProvisionalBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	p.cutoffs = append(p.cutoffs, cutoff)
	p.mu.Unlock()

	select {
	case p.fired <- struct{}{}:
	default:
	}

	if p.err != nil {
		return 0, p.err
	}
	return 2, nil
}

func (p *purgeRecorder) calls() []time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Time(nil), p.cutoffs...)
}

func TestSchedulerPurgesWithTTLCutoff(t *testing.T) {
	purger := newPurgeRecorder(nil)
	ttl := time.Hour
	s := New(purger, 5*time.Millisecond, ttl, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-purger.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never ticked")
	}

	cancel()
	<-done

	calls := purger.calls()
	assert.NotEmpty(t, calls)

	// The cutoff trails now by the TTL.
	want := time.Now().Add(-ttl)
	assert.WithinDuration(t, want, calls[0], 2*time.Second)
}

func TestSchedulerKeepsRunningAfterPurgeError(t *testing.T) {
	purger := newPurgeRecorder(errors.New("db down"))
	s := New(purger, 5*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// Two ticks despite every purge failing.
	for i := 0; i < 2; i++ {
		select {
		case <-purger.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler stopped after purge error")
		}
	}

	cancel()
	<-done

	assert.GreaterOrEqual(t, len(purger.calls()), 2)
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	purger := newPurgeRecorder(nil)
	s := New(purger, time.Hour, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}

	assert.Empty(t, purger.calls())
}
