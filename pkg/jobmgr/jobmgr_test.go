package jobmgr

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStartRejectsDuplicates(t *testing.T) {
	m := New()
	release := make(chan struct{})

	if err := m.Start("job", func(ctx context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start("job", func(ctx context.Context) error { return nil }); err == nil {
		t.Error("duplicate Start did not fail")
	}
	close(release)
}

func TestJobRemovedOnCompletion(t *testing.T) {
	m := New()
	done := make(chan struct{})
	m.OnDone = func(name string, err error) { close(done) }

	if err := m.Start("quick", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnDone never fired")
	}
	if err := m.Start("quick", func(ctx context.Context) error { return nil }); err != nil {
		t.Errorf("name not reusable after completion: %v", err)
	}
}

func TestStopCancelsJob(t *testing.T) {
	m := New()
	errs := make(chan error, 1)
	m.OnDone = func(name string, err error) { errs <- err }

	if err := m.Start("long", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !m.Stop("long") {
		t.Fatal("Stop reported no running job")
	}
	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("job exited with %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("job did not exit after Stop")
	}

	if m.Stop("long") {
		t.Error("Stop reported a job that already exited")
	}
}

func TestRunning(t *testing.T) {
	m := New()
	release := make(chan struct{})
	for _, name := range []string{"b", "a"} {
		if err := m.Start(name, func(ctx context.Context) error {
			<-release
			return nil
		}); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}

	got := m.Running()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Running() = %v, want [a b]", got)
	}
	close(release)
}
