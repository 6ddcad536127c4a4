package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// EligibilityService evaluates students against company postings
type EligibilityService struct {
	students  StudentSource
	companies CompanySource
	matcher   *analytics.Matcher
	log       zerolog.Logger
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(students StudentSource, companies CompanySource, matcher *analytics.Matcher, lgr zerolog.Logger) *EligibilityService {
	return &EligibilityService{
		students:  students,
		companies: companies,
		matcher:   matcher,
		log:       lgr,
	}
}

// Evaluate checks a supplied student against supplied criteria.
func (s *EligibilityService) Evaluate(student models.Student, criteria analytics.Criteria) analytics.EligibilityResult {
	return s.matcher.Evaluate(student, criteria)
}

// ForStudent evaluates a stored student against every company. With upcoming
// set, only companies visiting after now are considered.
func (s *EligibilityService) ForStudent(ctx context.Context, studentID string, upcoming bool, now time.Time) ([]analytics.CompanyEligibility, error) {
	if upcoming && now.IsZero() {
		now = time.Now()
	}

	var (
		student   *models.Student
		companies []models.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.students.GetByID(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = s.listCompanies(gctx, upcoming, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := s.matcher.EligibleCompanies(*student, companies)
	s.log.Debug().Str("studentId", studentID).Int("companies", len(results)).Msg("Eligibility evaluated")
	return results, nil
}

// ForStudentAndCompany evaluates one stored student against one stored company.
func (s *EligibilityService) ForStudentAndCompany(ctx context.Context, studentID, companyID string) (analytics.EligibilityResult, error) {
	var (
		student *models.Student
		company *models.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.students.GetByID(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		company, err = s.companies.GetByID(gctx, companyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.EligibilityResult{}, err
	}
	return s.matcher.Evaluate(*student, analytics.CriteriaFor(*company)), nil
}

// visitingAfterLister is implemented by sources that can filter by visiting
// date themselves.
type visitingAfterLister interface {
	ListVisitingAfter(ctx context.Context, t time.Time) ([]models.Company, error)
}

func (s *EligibilityService) listCompanies(ctx context.Context, upcoming bool, now time.Time) ([]models.Company, error) {
	if !upcoming {
		return s.companies.List(ctx)
	}
	if l, ok := s.companies.(visitingAfterLister); ok {
		return l.ListVisitingAfter(ctx, now)
	}

	all, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Company, 0, len(all))
	for _, c := range all {
		if analytics.Upcoming(c, now) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
