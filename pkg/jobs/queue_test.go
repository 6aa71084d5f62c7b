package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPermanent = errors.New("permanent")

func TestQueueRunsEveryJobInEnqueueOrder(t *testing.T) {
	var runs atomic.Int32
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		runs.Add(1)
		if job.Payload.(int)%2 == 1 {
			return errPermanent
		}
		return nil
	}, QueueConfig{Workers: 3, Retryable: func(error) bool { return false }})
	q.Start(context.Background())

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(Job{ID: fmt.Sprintf("job-%d", i), Payload: i}))
	}
	outcomes := q.Wait()

	require.Len(t, outcomes, 10)
	assert.EqualValues(t, 10, runs.Load())
	for i, o := range outcomes {
		assert.Equal(t, fmt.Sprintf("job-%d", i), o.Job.ID)
		assert.Equal(t, 1, o.Attempts)
		if i%2 == 1 {
			assert.ErrorIs(t, o.Err, errPermanent)
		} else {
			assert.NoError(t, o.Err)
		}
	}
}

func TestQueueRetriesRetryableFailures(t *testing.T) {
	var calls atomic.Int32
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if calls.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{ID: "flaky"}))
	outcomes := q.Wait()

	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 3, outcomes[0].Attempts)
}

func TestQueueStopsAfterMaxRetries(t *testing.T) {
	q := NewQueue("exhaust", func(ctx context.Context, job Job) error {
		return errors.New("down")
	}, QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{ID: "db"}))
	outcomes := q.Wait()

	require.Len(t, outcomes, 1)
	assert.EqualError(t, outcomes[0].Err, "down")
	assert.Equal(t, 3, outcomes[0].Attempts)
}

func TestQueueLifecycleErrors(t *testing.T) {
	q := NewQueue("lifecycle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "early"}))
	assert.Nil(t, q.Wait())

	q.Start(context.Background())
	assert.Empty(t, q.Wait())
	assert.Error(t, q.Enqueue(Job{ID: "late"}))
}

func TestQueueCancelledContextSkipsPendingJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	q := NewQueue("cancel", func(ctx context.Context, job Job) error {
		if job.ID == "first" {
			<-release
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(ctx)

	require.NoError(t, q.Enqueue(Job{ID: "first"}))
	require.NoError(t, q.Enqueue(Job{ID: "second"}))
	cancel()
	close(release)
	outcomes := q.Wait()

	require.Len(t, outcomes, 2)
	assert.Equal(t, "second", outcomes[1].Job.ID)
	assert.ErrorIs(t, outcomes[1].Err, context.Canceled)
	assert.Zero(t, outcomes[1].Attempts)
}
