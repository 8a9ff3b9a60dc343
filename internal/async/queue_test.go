package async

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examforge/internal/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanQueueProcessesInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string
	q := NewScanQueue(func(_ context.Context, job Job) error {
		mu.Lock()
		got = append(got, job.Dir)
		mu.Unlock()
		return nil
	}, discardLogger(), WithQueueSize(8))

	for _, dir := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Dir: dir, Trigger: TriggerWatch}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, []string{"a", "b", "c"}, got, "a single worker drains in enqueue order")
}

func TestScanQueueStampsSubmittedAtAndDeadline(t *testing.T) {
	var mu sync.Mutex
	var seen Job
	var hadDeadline bool
	var runID string
	q := NewScanQueue(func(ctx context.Context, job Job) error {
		mu.Lock()
		seen = job
		_, hadDeadline = ctx.Deadline()
		runID = common.RunIDFromContext(ctx)
		mu.Unlock()
		return nil
	}, discardLogger(), WithProcessTimeout(time.Minute))

	require.NoError(t, q.Enqueue(context.Background(), Job{Dir: "pdfs", Trigger: TriggerManual}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.False(t, seen.SubmittedAt.IsZero())
	assert.True(t, hadDeadline)
	assert.NotEmpty(t, runID, "worker assigns each job a run id")
}

func TestScanQueueIgnoresEnqueueAfterShutdown(t *testing.T) {
	var mu sync.Mutex
	processed := 0
	q := NewScanQueue(func(context.Context, Job) error {
		mu.Lock()
		processed++
		mu.Unlock()
		return nil
	}, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx)

	require.NoError(t, q.Enqueue(context.Background(), Job{Dir: "late"}))
	assert.Zero(t, processed)
}
