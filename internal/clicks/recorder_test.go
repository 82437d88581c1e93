package clicks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/linkshortener/internal/pkg/logging"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
)

type countingIncrementer struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
	// gate, when set, blocks every call until it is closed.
	gate    chan struct{}
	entered chan struct{}
	ctxErrs []error
}

func newCountingIncrementer() *countingIncrementer {
	return &countingIncrementer{counts: make(map[string]int)}
}

func (c *countingIncrementer) IncrementClicks(ctx context.Context, shortCode string) error {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.gate != nil {
		<-c.gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	if c.err != nil {
		return c.err
	}
	c.counts[shortCode]++
	return nil
}

func (c *countingIncrementer) count(shortCode string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[shortCode]
}

func newTestRecorder(inc Incrementer, opts Options) *Recorder {
	return NewRecorder(inc, opts, metrics.NewNoOpRegistry(), logging.Discard())
}

func TestRecorder_AppliesEveryClick(t *testing.T) {
	inc := newCountingIncrementer()
	rec := newTestRecorder(inc, Options{Workers: 3, QueueSize: 100})
	rec.Start()
	t.Cleanup(func() { _ = rec.Stop(context.Background()) })

	for i := 0; i < 50; i++ {
		assert.True(t, rec.Record("abc123"))
	}

	assert.Eventually(t, func() bool { return inc.count("abc123") == 50 }, 2*time.Second, 5*time.Millisecond)
}

func TestRecorder_StopDrainsQueue(t *testing.T) {
	inc := newCountingIncrementer()
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 100})

	// Queued before start, applied once workers run.
	for i := 0; i < 20; i++ {
		require.True(t, rec.Record("queued"))
	}
	rec.Start()

	require.NoError(t, rec.Stop(context.Background()))
	assert.Equal(t, 20, inc.count("queued"))
}

func TestRecorder_RecordAfterStopIsDropped(t *testing.T) {
	inc := newCountingIncrementer()
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 10})
	rec.Start()
	require.NoError(t, rec.Stop(context.Background()))

	assert.False(t, rec.Record("late"))
	assert.NoError(t, rec.Stop(context.Background()), "second stop is a no-op")
	assert.Zero(t, inc.count("late"))
}

func TestRecorder_FullQueueDrops(t *testing.T) {
	inc := newCountingIncrementer()
	inc.gate = make(chan struct{})
	inc.entered = make(chan struct{}, 10)
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 1})
	rec.Start()

	require.True(t, rec.Record("busy"))
	<-inc.entered // the only worker is now blocked

	assert.True(t, rec.Record("busy"), "fills the single buffer slot")
	assert.False(t, rec.Record("busy"), "queue is full")

	close(inc.gate)
	require.NoError(t, rec.Stop(context.Background()))
	assert.Equal(t, 2, inc.count("busy"))
}

func TestRecorder_StopDeadline(t *testing.T) {
	inc := newCountingIncrementer()
	inc.gate = make(chan struct{})
	inc.entered = make(chan struct{}, 10)
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 10})
	rec.Start()

	require.True(t, rec.Record("slow"))
	<-inc.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rec.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(inc.gate)
}

func TestRecorder_FailuresAreSwallowed(t *testing.T) {
	inc := newCountingIncrementer()
	inc.err = errors.New("database is locked")
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 10})
	rec.Start()

	assert.True(t, rec.Record("abc123"))
	require.NoError(t, rec.Stop(context.Background()))
	assert.Zero(t, inc.count("abc123"))
}

func TestRecorder_UpdatesUseDetachedContext(t *testing.T) {
	inc := newCountingIncrementer()
	rec := newTestRecorder(inc, Options{Workers: 1, QueueSize: 10, Timeout: time.Second})
	rec.Start()

	rec.Record("abc123")
	require.NoError(t, rec.Stop(context.Background()))

	inc.mu.Lock()
	defer inc.mu.Unlock()
	require.Len(t, inc.ctxErrs, 1)
	assert.NoError(t, inc.ctxErrs[0])
}

func TestNewRecorder_Defaults(t *testing.T) {
	rec := newTestRecorder(newCountingIncrementer(), Options{QueueSize: -1})

	assert.Equal(t, DefaultWorkers, rec.opts.Workers)
	assert.Equal(t, DefaultQueueSize, rec.opts.QueueSize)
	assert.Equal(t, DefaultTimeout, rec.opts.Timeout)
}
