package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
)

func reportWith(total int) analytics.Report {
	return analytics.Report{DataAvailable: true, DashboardSummary: analytics.DashboardSummary{TotalStudents: total}}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh cycle did not finish")
	}
}

func TestRefresherNewCycleCancelsInFlight(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	cancelled := make(chan struct{})
	compute := func(ctx context.Context) (analytics.Report, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return analytics.Report{}, ctx.Err()
		}
		return reportWith(2), nil
	}

	r := NewDashboardRefresher(compute, 0, zerolog.Nop())
	first := r.Refresh(context.Background())
	waitFor(t, started)
	second := r.Refresh(context.Background())
	waitFor(t, first)
	waitFor(t, second)

	select {
	case <-cancelled:
	default:
		t.Error("first cycle was not cancelled")
	}
	got, ok := r.Latest()
	if !ok || got.DashboardSummary.TotalStudents != 2 {
		t.Errorf("Latest = %+v, %v, want the second cycle's report", got.DashboardSummary, ok)
	}
}

func TestRefresherDiscardsSupersededResult(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (analytics.Report, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return reportWith(1), nil
		}
		return reportWith(2), nil
	}

	r := NewDashboardRefresher(compute, 0, zerolog.Nop())
	first := r.Refresh(context.Background())
	waitFor(t, started)
	waitFor(t, r.Refresh(context.Background()))
	close(release)
	waitFor(t, first)

	if got, _ := r.Latest(); got.DashboardSummary.TotalStudents != 2 {
		t.Errorf("Latest total = %d, want 2 from the newer cycle", got.DashboardSummary.TotalStudents)
	}
}

func TestRefresherLatestBeforeFirstCycle(t *testing.T) {
	r := NewDashboardRefresher(func(context.Context) (analytics.Report, error) { return reportWith(1), nil }, 0, zerolog.Nop())
	if _, ok := r.Latest(); ok {
		t.Error("Latest reported a snapshot before any cycle")
	}
}

func TestRefresherRunStopsOnCancel(t *testing.T) {
	var calls int32
	compute := func(ctx context.Context) (analytics.Report, error) {
		atomic.AddInt32(&calls, 1)
		return reportWith(int(atomic.LoadInt32(&calls))), nil
	}
	r := NewDashboardRefresher(compute, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d cycles ran", atomic.LoadInt32(&calls))
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, ok := r.Latest(); !ok {
		t.Error("no snapshot kept")
	}
}
