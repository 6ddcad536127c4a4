package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

// AnalyticsService turns source snapshots into placement reports
type AnalyticsService struct {
	loader    *SnapshotLoader
	projector *analytics.Projector
	refresher *DashboardRefresher
	now       func() time.Time
	log       zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(loader *SnapshotLoader, projector *analytics.Projector, lgr zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		loader:    loader,
		projector: projector,
		now:       time.Now,
		log:       lgr,
	}
}

// UseRefresher lets Dashboard answer from the latest background snapshot.
func (s *AnalyticsService) UseRefresher(r *DashboardRefresher) {
	s.refresher = r
}

// Report loads the current collections and projects every view.
func (s *AnalyticsService) Report(ctx context.Context, now time.Time) (analytics.Report, error) {
	in, err := s.loader.Load(ctx, now)
	if err != nil {
		return analytics.Report{}, err
	}
	return s.Project(in), nil
}

// Project runs the engine on caller-supplied collections.
func (s *AnalyticsService) Project(in analytics.Input) analytics.Report {
	report := s.projector.Project(in)
	s.logIssues(report)
	return report
}

// Dashboard returns the dashboard report. Without an explicit time it prefers
// the refresher's latest snapshot, with upcoming interviews recounted against
// the current time rather than the refresh time.
func (s *AnalyticsService) Dashboard(ctx context.Context, now *time.Time) (analytics.Report, error) {
	if now == nil && s.refresher != nil {
		if r, ok := s.refresher.Latest(); ok {
			r.DashboardSummary.UpcomingInterviewsCount = analytics.UpcomingInterviews(r.Placements, s.now())
			return r, nil
		}
	}
	var at time.Time
	if now != nil {
		at = *now
	}
	return s.Report(ctx, at)
}

// Batch returns the report for one cohort label such as "2021-2025".
func (s *AnalyticsService) Batch(ctx context.Context, label string) (analytics.BatchReport, error) {
	label = strings.TrimSpace(label)
	if !validation.IsBatchLabel(label) {
		return analytics.BatchReport{}, apperrors.NewBadRequestError(fmt.Sprintf("batch %q must look like 2021-2025", label))
	}

	report, err := s.Report(ctx, time.Time{})
	if err != nil {
		return analytics.BatchReport{}, err
	}
	for _, b := range report.ByBatch {
		if b.Batch == label {
			return b, nil
		}
	}
	return analytics.BatchReport{}, apperrors.NewResourceNotFoundError(fmt.Sprintf("no students in batch %s", label))
}

// Companies returns company cards, optionally narrowed to a department and/or a
// company name. With both set the single breakdown is returned even when empty.
func (s *AnalyticsService) Companies(ctx context.Context, department, company string) ([]analytics.CompanyStat, error) {
	report, err := s.Report(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	department, company = strings.TrimSpace(department), strings.TrimSpace(company)
	if department != "" && company != "" {
		return []analytics.CompanyStat{analytics.CompanyBreakdown(report.Placements, department, company)}, nil
	}

	code := analytics.NormalizeDepartment(department).Code
	out := make([]analytics.CompanyStat, 0, len(report.ByCompany))
	for _, cs := range report.ByCompany {
		if department != "" && cs.Department != code {
			continue
		}
		if company != "" && !strings.EqualFold(cs.Company, company) {
			continue
		}
		out = append(out, cs)
	}
	return out, nil
}

func (s *AnalyticsService) logIssues(r analytics.Report) {
	if len(r.Issues) == 0 {
		return
	}
	counts := make(map[analytics.IssueKind]int)
	for _, is := range r.Issues {
		counts[is.Kind]++
	}
	s.log.Warn().
		Int("issues", len(r.Issues)).
		Int("invalidYears", counts[analytics.IssueInvalidYear]).
		Int("unresolvedStudents", counts[analytics.IssueUnresolvedStudent]).
		Int("unresolvedCompanies", counts[analytics.IssueUnresolvedCompany]).
		Int("unmappedDepartments", counts[analytics.IssueUnmappedDepartment]).
		Int("invalidPackages", counts[analytics.IssueInvalidPackage]).
		Msg("Placement data has record-level issues")
}
