package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsRegisteredHandler(t *testing.T) {
	q := NewQueue("test", QueueConfig{Workers: 2})
	done := make(chan Job, 1)
	q.Handle("ping", func(_ context.Context, j Job) error {
		done <- j
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1", Type: "ping", Payload: 42}))

	select {
	case j := <-done:
		assert.Equal(t, 42, j.Payload)
		assert.False(t, j.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	q := NewQueue("test", QueueConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond})
	var calls int32
	succeeded := make(chan int, 1)
	q.Handle("flaky", func(_ context.Context, j Job) error {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			return errors.New("transient")
		}
		succeeded <- j.Attempt
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1", Type: "flaky"}))

	select {
	case attempt := <-succeeded:
		assert.Equal(t, 2, attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}
}

func TestQueueRejectsUnknownAndStopped(t *testing.T) {
	q := NewQueue("test", QueueConfig{})
	q.Handle("known", func(context.Context, Job) error { return nil })

	require.Error(t, q.Enqueue(Job{Type: "known"}), "not started")

	q.Start(context.Background())
	require.Error(t, q.Enqueue(Job{Type: "unknown"}))

	q.Stop()
	err := q.Enqueue(Job{Type: "known"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueueClosed))
}

func TestSchedulerTriggerEnqueues(t *testing.T) {
	q := NewQueue("test", QueueConfig{})
	got := make(chan Job, 1)
	q.Handle("tick", func(_ context.Context, j Job) error {
		got <- j
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	s := NewScheduler(q, time.UTC, nil)
	require.NoError(t, s.Every("*/5 * * * *", "tick"))
	require.Error(t, s.Every("not a spec", "tick"))
	s.Trigger("tick")

	select {
	case j := <-got:
		assert.NotEmpty(t, j.ID)
		_, ok := j.Payload.(time.Time)
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("trigger did not enqueue")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Start()
	s.Stop(ctx)
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec("0 * * * *"))
	assert.Error(t, ValidateSpec("61 * * * *"))
}
