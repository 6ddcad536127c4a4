package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// Services defined in this package:
// - AnalyticsService: loads a snapshot and projects department, batch and company views
// - EligibilityService: evaluates students against company postings
// - DepartmentService: serves the department catalogue
// - DashboardRefresher: recomputes the dashboard on an interval

// StudentSource reads the students collection.
type StudentSource interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

// CompanySource reads the companies collection.
type CompanySource interface {
	List(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
}

// PlacementSource reads the placements collection.
type PlacementSource interface {
	List(ctx context.Context) ([]models.Placement, error)
}

// SnapshotLoader fetches the three source collections concurrently.
type SnapshotLoader struct {
	students   StudentSource
	companies  CompanySource
	placements PlacementSource
	timeout    time.Duration
	log        zerolog.Logger
}

// NewSnapshotLoader creates a loader. A zero timeout means no per-load deadline.
func NewSnapshotLoader(students StudentSource, companies CompanySource, placements PlacementSource, timeout time.Duration, lgr zerolog.Logger) *SnapshotLoader {
	return &SnapshotLoader{
		students:   students,
		companies:  companies,
		placements: placements,
		timeout:    timeout,
		log:        lgr,
	}
}

// Load returns one consistent engine input. The first failing collection
// cancels the others.
func (l *SnapshotLoader) Load(ctx context.Context, now time.Time) (analytics.Input, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	in := analytics.Input{Now: now}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if in.Students, err = l.students.List(gctx); err != nil {
			return fmt.Errorf("load students: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Companies, err = l.companies.List(gctx); err != nil {
			return fmt.Errorf("load companies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Placements, err = l.placements.List(gctx); err != nil {
			return fmt.Errorf("load placements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.Input{}, err
	}

	l.log.Debug().
		Int("students", len(in.Students)).
		Int("companies", len(in.Companies)).
		Int("placements", len(in.Placements)).
		Msg("Snapshot loaded")
	return in, nil
}
