package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

func newTestEligibility() *EligibilityService {
	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	students := &fakeStudents{items: []models.Student{stu("s1", "CSE", 2021, 8.2)}}
	companies := &fakeCompanies{items: []models.Company{
		{ID: "c1", Name: "Acme", EligibleDepartments: []string{"CSE"}, MinimumCGPA: 7.5, VisitingDate: &mar},
		{ID: "c2", Name: "Globex", EligibleDepartments: []string{"CSE"}, MinimumCGPA: 9, VisitingDate: &jan},
	}}
	return NewEligibilityService(students, companies, analytics.NewMatcher(nil), zerolog.Nop())
}

func TestForStudent(t *testing.T) {
	list, err := newTestEligibility().ForStudent(context.Background(), "s1", false, time.Time{})
	if err != nil {
		t.Fatalf("ForStudent: %v", err)
	}
	if len(list) != 2 || list[0].Company.ID != "c2" || list[1].Company.ID != "c1" {
		t.Fatalf("order = %+v, want c2 then c1 by visiting date", list)
	}
	if list[0].Result.Eligible || !list[1].Result.Eligible {
		t.Errorf("verdicts = %v, %v", list[0].Result.Eligible, list[1].Result.Eligible)
	}
}

func TestForStudentUpcomingOnly(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	list, err := newTestEligibility().ForStudent(context.Background(), "s1", true, now)
	if err != nil {
		t.Fatalf("ForStudent: %v", err)
	}
	if len(list) != 1 || list[0].Company.ID != "c1" {
		t.Errorf("upcoming = %+v, want only c1", list)
	}
}

// visitingCompanies filters on its own and records the cutoff it was given.
type visitingCompanies struct {
	fakeCompanies
	after time.Time
}

func (f *visitingCompanies) ListVisitingAfter(_ context.Context, t time.Time) ([]models.Company, error) {
	f.after = t
	var out []models.Company
	for _, c := range f.items {
		if c.VisitingDate != nil && c.VisitingDate.After(t) {
			out = append(out, c)
		}
	}
	return out, f.err
}

func TestForStudentUpcomingUsesSourceFilter(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	companies := &visitingCompanies{fakeCompanies: fakeCompanies{items: []models.Company{
		{ID: "c1", Name: "Acme", EligibleDepartments: []string{"CSE"}, VisitingDate: &mar},
		{ID: "c2", Name: "Globex", EligibleDepartments: []string{"CSE"}},
	}}}
	students := &fakeStudents{items: []models.Student{stu("s1", "CSE", 2021, 8.2)}}
	svc := NewEligibilityService(students, companies, analytics.NewMatcher(nil), zerolog.Nop())

	list, err := svc.ForStudent(context.Background(), "s1", true, now)
	if err != nil {
		t.Fatalf("ForStudent: %v", err)
	}
	if !companies.after.Equal(now) {
		t.Errorf("cutoff = %v, want %v", companies.after, now)
	}
	if len(list) != 1 || list[0].Company.ID != "c1" {
		t.Errorf("upcoming = %+v, want only c1", list)
	}
}

func TestForStudentAndCompany(t *testing.T) {
	svc := newTestEligibility()
	ctx := context.Background()

	res, err := svc.ForStudentAndCompany(ctx, "s1", "c2")
	if err != nil {
		t.Fatalf("ForStudentAndCompany: %v", err)
	}
	if res.Eligible || !res.Failed(analytics.CriterionCGPA) || len(res.Reasons) != 1 {
		t.Errorf("result = %+v, want one CGPA reason", res)
	}

	if _, err := svc.ForStudentAndCompany(ctx, "ghost", "c1"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("missing student error = %v", err)
	}
	if _, err := svc.ForStudentAndCompany(ctx, "s1", "ghost"); !errors.Is(err, apperrors.ErrCompanyNotFound) {
		t.Errorf("missing company error = %v", err)
	}
}
