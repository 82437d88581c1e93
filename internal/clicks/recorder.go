// Package clicks runs click counter updates off the redirect path.
//
// Updates are at-most-once: a code handed to Record is incremented at most
// one time, and may be lost when the queue is full or the process stops
// before a worker reaches it.
package clicks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 1024
	DefaultTimeout   = 5 * time.Second
)

// Incrementer applies one click to a short code.
type Incrementer interface {
	IncrementClicks(ctx context.Context, shortCode string) error
}

type Options struct {
	Workers   int
	QueueSize int
	// Timeout bounds each store update. Updates never inherit the
	// originating request's context.
	Timeout time.Duration
}

type Recorder struct {
	incrementer Incrementer
	opts        Options
	metrics     metrics.Registry
	logger      *slog.Logger

	queue chan string
	abort chan struct{}
	group errgroup.Group

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewRecorder(incrementer Incrementer, opts Options, registry metrics.Registry, logger *slog.Logger) *Recorder {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Recorder{
		incrementer: incrementer,
		opts:        opts,
		metrics:     registry,
		logger:      logger,
		queue:       make(chan string, opts.QueueSize),
		abort:       make(chan struct{}),
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || r.closed {
		return
	}
	r.started = true

	for i := 0; i < r.opts.Workers; i++ {
		r.group.Go(r.work)
	}
	r.logger.Info("Click recorder started", "workers", r.opts.Workers, "queue_size", r.opts.QueueSize)
}

// Record schedules one click for shortCode and returns immediately. It
// reports false when the click was dropped.
func (r *Recorder) Record(shortCode string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(shortCode, "recorder stopped")
		return false
	}

	select {
	case r.queue <- shortCode:
		return true
	default:
		r.drop(shortCode, "queue full")
		return false
	}
}

// Stop refuses new clicks and waits for queued ones to be applied. When ctx
// expires first the remaining clicks are abandoned and ctx.Err() is returned.
func (r *Recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	started := r.started
	r.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = r.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Click recorder drained")
		return nil
	case <-ctx.Done():
		close(r.abort)
		r.logger.Warn("Click recorder stopped before draining", "pending", len(r.queue))
		return ctx.Err()
	}
}

func (r *Recorder) work() error {
	for {
		select {
		case <-r.abort:
			return nil
		case shortCode, ok := <-r.queue:
			if !ok {
				return nil
			}
			r.apply(shortCode)
		}
	}
}

func (r *Recorder) apply(shortCode string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	if err := r.incrementer.IncrementClicks(ctx, shortCode); err != nil {
		r.metrics.RecordClickIncrement(metrics.StatusFailure)
		r.logger.Error("Failed to increment clicks", "short_code", shortCode, "error", err)
		return
	}
	r.metrics.RecordClickIncrement(metrics.StatusSuccess)
}

func (r *Recorder) drop(shortCode, reason string) {
	r.metrics.IncClicksDropped()
	r.logger.Warn("Dropped click", "short_code", shortCode, "reason", reason)
}
