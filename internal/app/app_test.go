package app

import (
	"context"
	"testing"
	"time"
)

func TestNewFromEnvAndRunUntilCanceled(t *testing.T) {
	t.Setenv("SECRET", "s3cr3t")
	t.Setenv("CRON_JOBS", "GET|http://example.invalid/ping|0 0 0 1 1 *||")

	a, err := New("")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := len(a.Config().JobList); got != 1 {
		t.Fatalf("JobList len = %d, want 1", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	select {
	case err := <-done:
		// Cancellation is the normal way out; it is not an error.
		if err != nil {
			t.Fatalf("Run returned %v, want nil on cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestNewRejectsInvalidJobs(t *testing.T) {
	t.Setenv("SECRET", "s3cr3t")
	t.Setenv("CRON_JOBS", "GET|http://example.invalid/|not a cron")

	if _, err := New(""); err == nil {
		t.Fatal("expected error for invalid job list")
	}
}
