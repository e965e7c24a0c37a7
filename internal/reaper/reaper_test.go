package reaper_test

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"passdrop/internal/reaper"
)

type fakeSweeper struct {
	sweeps atomic.Int32
	last   atomic.Value // time.Time
}

func (f *fakeSweeper) CloseExpired(cutoff time.Time) int {
	f.sweeps.Add(1)
	f.last.Store(cutoff)
	return 1
}

func TestRunOnce_CutoffIsNowMinusTTL(t *testing.T) {
	fs := &fakeSweeper{}
	r := reaper.New(fs, time.Hour, time.Minute, log.New(io.Discard, "", 0))

	before := time.Now().Add(-time.Hour)
	if closed := r.RunOnce(); closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}
	after := time.Now().Add(-time.Hour)

	cutoff := fs.last.Load().(time.Time)
	if cutoff.Before(before) || cutoff.After(after) {
		t.Fatalf("cutoff %v outside [%v, %v]", cutoff, before, after)
	}
}

func TestRun_SweepsUntilCancelled(t *testing.T) {
	fs := &fakeSweeper{}
	r := reaper.New(fs, time.Hour, 5*time.Millisecond, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for fs.sweeps.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("reaper did not sweep repeatedly")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop on cancel")
	}
}
