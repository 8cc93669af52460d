package cartstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/infrastructure/metrics"
)

const defaultQueueSize = 64

type job struct {
	op   string
	call func(ctx context.Context) error
}

// Syncer runs remote cart calls one at a time on a single worker. Jobs are
// never retried; a failure is logged, counted and passed to the notifier.
type Syncer struct {
	jobs     chan job
	done     chan struct{}
	mu       sync.RWMutex
	closed   bool
	timeout  time.Duration
	notifier Notifier
	logger   *zap.Logger
}

func NewSyncer(queueSize int, timeout time.Duration, notifier Notifier, logger *zap.Logger) *Syncer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &Syncer{
		jobs:     make(chan job, queueSize),
		done:     make(chan struct{}),
		timeout:  timeout,
		notifier: notifier,
		logger:   logger,
	}
	go s.run()
	return s
}

// Enqueue schedules call without waiting for it. It reports false when the
// job was dropped because the queue is full or the syncer is closed.
func (s *Syncer) Enqueue(op string, call func(ctx context.Context) error) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("cart sync closed, dropping call", zap.String("op", op))
		metrics.CartSyncDroppedTotal.Inc()
		return false
	}

	select {
	case s.jobs <- job{op: op, call: call}:
		return true
	default:
		s.logger.Warn("cart sync queue full, dropping call", zap.String("op", op))
		metrics.CartSyncDroppedTotal.Inc()
		s.notifier.Notify("Your cart is saved on this device but could not be synced right now.")
		return false
	}
}

// Flush waits until every job enqueued so far has finished. The worker is
// FIFO, so a marker job completing means everything before it has run.
func (s *Syncer) Flush(ctx context.Context) error {
	reached := make(chan struct{})
	marker := job{op: "flush", call: func(context.Context) error {
		close(reached)
		return nil
	}}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case s.jobs <- marker:
	case <-ctx.Done():
		s.mu.RUnlock()
		return ctx.Err()
	}
	s.mu.RUnlock()

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, lets the worker drain the queue and waits for it
// to exit.
func (s *Syncer) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.jobs)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *Syncer) run() {
	defer close(s.done)
	for j := range s.jobs {
		s.execute(j)
	}
}

func (s *Syncer) execute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := j.call(ctx); err != nil {
		s.logger.Warn("cart sync failed", zap.String("op", j.op), zap.Error(err))
		metrics.CartSyncFailuresTotal.WithLabelValues(j.op).Inc()
		s.notifier.Notify(fmt.Sprintf("Could not sync your cart (%s). Your changes are kept on this device.", j.op))
	}
}
