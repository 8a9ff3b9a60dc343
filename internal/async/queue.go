// Package async runs directory scans in the background for the daemon.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"examforge/internal/common"
)

// Job is one queued scan request.
type Job struct {
	Dir         string
	Trigger     string
	SubmittedAt time.Time
}

const (
	TriggerWatch  = "watch"
	TriggerManual = "manual"
)

// Queue accepts scan jobs and drains them on shutdown.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// ProcessFunc handles one queued job.
type ProcessFunc func(ctx context.Context, job Job) error

// ScanQueue serializes scans on a single worker. The default database is
// a single-writer sqlite file; one worker keeps runs from interleaving.
type ScanQueue struct {
	process ProcessFunc
	logger  *slog.Logger
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ScanQueue)

func WithQueueSize(n int) Option {
	return func(q *ScanQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ScanQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewScanQueue(process ProcessFunc, logger *slog.Logger, opts ...Option) *ScanQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ScanQueue{
		process: process,
		logger:  logger,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 16),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ScanQueue) start() {
	q.once.Do(func() {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.logger.Info("scan worker started")

			for job := range q.ch {
				runID := uuid.NewString()
				ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
				err := q.process(common.WithRunID(ctx, runID), job)
				cancel()

				if err != nil {
					q.logger.Error("scan failed", "run_id", runID, "dir", job.Dir, "trigger", job.Trigger, "error", err)
				} else {
					q.logger.Info("scan finished", "run_id", runID, "dir", job.Dir, "trigger", job.Trigger)
				}
			}

			q.logger.Info("scan worker stopped")
		}()
	})
}

func (q *ScanQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "dir", job.Dir)
		return nil
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now().UTC()
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued scan", "dir", job.Dir, "trigger", job.Trigger)
	default:
		q.logger.Warn("scan queue full, applying backpressure", "dir", job.Dir)
		q.ch <- job
	}
	return nil
}

func (q *ScanQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
