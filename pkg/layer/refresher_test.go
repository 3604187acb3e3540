package layer

import (
	"errors"
	"testing"
	"time"
)

func TestRefresherInvalidSchedule(t *testing.T) {
	r := NewRefresher(func() error { return nil }, nil)
	if err := r.Schedule("every now and then"); err == nil {
		t.Fatalf("expected an error for an invalid expression")
	}
}

func TestRefresherScheduleStatus(t *testing.T) {
	r := NewRefresher(func() error { return nil }, nil)
	if err := r.Schedule("@every 1m"); err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}

	next, running := r.Status()
	if running {
		t.Fatalf("refresher should not be running")
	}
	if next.IsZero() {
		t.Fatalf("next run should be set after scheduling")
	}

	if err := r.Schedule(""); err != nil {
		t.Fatalf("clearing the schedule returned error: %v", err)
	}
	next, _ = r.Status()
	if !next.IsZero() {
		t.Fatalf("next run should be cleared, got %v", next)
	}
}

func TestRefresherRunsTask(t *testing.T) {
	taskCh := make(chan struct{}, 4)
	errCh := make(chan error, 4)

	r := NewRefresher(func() error {
		taskCh <- struct{}{}
		return errors.New("boom")
	}, func(err error) {
		errCh <- err
	})
	if err := r.Schedule("@every 1s"); err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}

	r.mu.Lock()
	r.nextRun = time.Now().Add(50 * time.Millisecond)
	r.mu.Unlock()

	r.Start()
	defer r.Stop()

	select {
	case <-taskCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("task did not execute in time")
	}

	select {
	case err := <-errCh:
		if err.Error() != "boom" {
			t.Fatalf("unexpected error %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected error callback")
	}
}

func TestRefresherRescheduleWhileRunning(t *testing.T) {
	taskCh := make(chan struct{}, 4)
	r := NewRefresher(func() error {
		taskCh <- struct{}{}
		return nil
	}, nil)

	r.Start()
	defer r.Stop()

	if err := r.Schedule("@every 1s"); err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}

	select {
	case <-taskCh:
	case <-time.After(3 * time.Second):
		t.Fatalf("task did not execute after rescheduling")
	}
}

func TestRefresherRestart(t *testing.T) {
	taskCh := make(chan struct{}, 4)
	r := NewRefresher(func() error {
		taskCh <- struct{}{}
		return nil
	}, nil)

	// Stopping a refresher that never started is a no-op.
	r.Stop()

	r.Start()
	r.Stop()
	r.Stop()
	if _, running := r.Status(); running {
		t.Fatalf("refresher should not be running after Stop")
	}

	if err := r.Schedule("@every 1s"); err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	r.mu.Lock()
	r.nextRun = time.Now().Add(50 * time.Millisecond)
	r.mu.Unlock()

	r.Start()
	defer r.Stop()
	if _, running := r.Status(); !running {
		t.Fatalf("refresher should be running after a second Start")
	}

	select {
	case <-taskCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("task did not execute after restart")
	}
}
