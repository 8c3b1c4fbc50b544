package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"concierge/infras/otel/mocks"
	"concierge/internal/scheduler"
	"concierge/shared/timezone"
)

func TestScheduler_ScheduleFires(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	fired := make(chan struct{})
	sched.Schedule("bk-1:checkin", timezone.Now().Add(10*time.Millisecond), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task did not fire")
	}
}

func TestScheduler_PastFireTimeRunsImmediately(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	fired := make(chan struct{})
	sched.Schedule("bk-1:late", timezone.Now().Add(-time.Hour), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("overdue task did not fire")
	}
}

func TestScheduler_RescheduleReplacesTimer(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	var calls atomic.Int32

	done := make(chan struct{})
	sched.Schedule("bk-1:reminder", timezone.Now().Add(50*time.Millisecond), func(ctx context.Context) {
		calls.Add(1)
	})
	sched.Schedule("bk-1:reminder", timezone.Now().Add(20*time.Millisecond), func(ctx context.Context) {
		calls.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("rescheduled task did not fire")
	}

	// Give the replaced timer a chance to misfire.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestScheduler_Cancel(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	var calls atomic.Int32
	sched.Schedule("bk-1:cancelme", timezone.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		calls.Add(1)
	})
	sched.Cancel("bk-1:cancelme")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestScheduler_CancelByPrefix(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	var cancelled atomic.Int32

	kept := make(chan struct{})
	sched.Schedule("bk-1:checkin", timezone.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		cancelled.Add(1)
	})
	sched.Schedule("bk-1:checkout", timezone.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		cancelled.Add(1)
	})
	sched.Schedule("bk-2:checkin", timezone.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		close(kept)
	})

	sched.CancelByPrefix("bk-1:")

	select {
	case <-kept:
	case <-time.After(2 * time.Second):
		t.Fatal("unrelated task was cancelled")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), cancelled.Load())
}

func TestScheduler_TaskPanicIsContained(t *testing.T) {
	sched := scheduler.New(mocks.NewOtel())
	defer sched.Shutdown()

	panicked := make(chan struct{})
	sched.Schedule("bk-1:panic", timezone.Now().Add(10*time.Millisecond), func(ctx context.Context) {
		close(panicked)
		panic("boom")
	})

	select {
	case <-panicked:
	case <-time.After(2 * time.Second):
		t.Fatal("panicking task did not run")
	}

	// The recover in the fire path must keep the process alive; arming another
	// task afterwards still works.
	fired := make(chan struct{})
	sched.Schedule("bk-1:after", timezone.Now().Add(10*time.Millisecond), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler stopped working after a task panic")
	}
}
