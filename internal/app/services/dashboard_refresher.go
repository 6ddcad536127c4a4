package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
)

// ComputeFunc produces one report.
type ComputeFunc func(ctx context.Context) (analytics.Report, error)

// DashboardRefresher recomputes the dashboard report on an interval. Starting a
// cycle cancels the one in flight; a superseded cycle's result is discarded.
type DashboardRefresher struct {
	compute  ComputeFunc
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup

	latest atomic.Pointer[analytics.Report]
}

// NewDashboardRefresher creates a refresher. A non-positive interval disables
// the ticker; Refresh still works on demand.
func NewDashboardRefresher(compute ComputeFunc, interval time.Duration, lgr zerolog.Logger) *DashboardRefresher {
	return &DashboardRefresher{
		compute:  compute,
		interval: interval,
		log:      lgr,
	}
}

// Latest returns the most recent completed report.
func (r *DashboardRefresher) Latest() (analytics.Report, bool) {
	p := r.latest.Load()
	if p == nil {
		return analytics.Report{}, false
	}
	return *p, true
}

// Refresh starts a new cycle and returns a channel closed when it finishes,
// whether its result was kept or discarded.
func (r *DashboardRefresher) Refresh(ctx context.Context) <-chan struct{} {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer r.wg.Done()
		defer cancel()

		start := time.Now()
		report, err := r.compute(cctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.gen {
			r.log.Debug().Uint64("cycle", gen).Msg("Dashboard cycle superseded, result discarded")
			return
		}
		r.cancel = nil
		if err != nil {
			if cctx.Err() == nil {
				r.log.Error().Err(err).Uint64("cycle", gen).Msg("Dashboard refresh failed")
			}
			return
		}
		r.latest.Store(&report)
		r.log.Info().
			Uint64("cycle", gen).
			Dur("took", time.Since(start)).
			Int("placedStudents", report.DashboardSummary.PlacedStudents).
			Bool("dataAvailable", report.DataAvailable).
			Msg("Dashboard refreshed")
	}()
	return done
}

// Run refreshes immediately and then on every tick until ctx is done, then
// cancels the cycle in flight and waits for it.
func (r *DashboardRefresher) Run(ctx context.Context) {
	r.Refresh(ctx)

	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				r.Refresh(ctx)
			}
		}
	} else {
		<-ctx.Done()
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}
