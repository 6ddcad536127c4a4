package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
)

// Criterion names one eligibility rule.
type Criterion string

const (
	CriterionDepartment    Criterion = "department"
	CriterionBatch         Criterion = "batch"
	CriterionCGPA          Criterion = "cgpa"
	CriterionBacklogs      Criterion = "backlogs"
	CriterionYearOfPassing Criterion = "year_of_passing"
)

// Criteria are the admission rules of a job posting.
type Criteria struct {
	EligibleDepartments []string `json:"eligibleDepartments"`
	// EligibleBatches empty means every batch is accepted.
	EligibleBatches    []string `json:"eligibleBatches"`
	MinimumCGPA        float64  `json:"minimumCgpa"`
	MaxBacklogsAllowed int      `json:"maxBacklogsAllowed"`
	// YearOfPassing zero means the posting does not restrict it.
	YearOfPassing int `json:"yearOfPassing"`
}

// CriteriaFor extracts the criteria a company's posting carries.
func CriteriaFor(c models.Company) Criteria {
	return Criteria{
		EligibleDepartments: c.EligibleDepartments,
		EligibleBatches:     c.EligibleBatches,
		MinimumCGPA:         c.MinimumCGPA,
		MaxBacklogsAllowed:  c.MaxBacklogsAllowed,
		YearOfPassing:       c.YearOfPassing,
	}
}

// Reason describes one failed rule.
type Reason struct {
	Criterion Criterion `json:"criterion"`
	Message   string    `json:"message"`
}

// EligibilityResult is the verdict for one (student, posting) pair.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []Reason `json:"reasons"`
}

// Failed reports whether the given rule failed.
func (r EligibilityResult) Failed(c Criterion) bool {
	for _, reason := range r.Reasons {
		if reason.Criterion == c {
			return true
		}
	}
	return false
}

// Matcher evaluates students against posting criteria.
type Matcher struct {
	batches *BatchDeriver
}

// NewMatcher returns a Matcher deriving batches with d.
func NewMatcher(d *BatchDeriver) *Matcher {
	if d == nil {
		d = NewBatchDeriver()
	}
	return &Matcher{batches: d}
}

// Evaluate runs the matcher with default batch bounds.
func Evaluate(student models.Student, criteria Criteria) EligibilityResult {
	return NewMatcher(nil).Evaluate(student, criteria)
}

// Evaluate checks all five rules without short-circuiting. Reasons keep rule order.
func (m *Matcher) Evaluate(student models.Student, criteria Criteria) EligibilityResult {
	reasons := make([]Reason, 0, 5)
	fail := func(c Criterion, format string, args ...any) {
		reasons = append(reasons, Reason{Criterion: c, Message: fmt.Sprintf(format, args...)})
	}

	dept := NormalizeDepartment(student.Department)
	if !contains(NormalizeDepartments(criteria.EligibleDepartments), dept.Code) {
		fail(CriterionDepartment, "department %s is not among eligible departments %s",
			displayCode(dept.Code), strings.Join(NormalizeDepartments(criteria.EligibleDepartments), ", "))
	}

	batch, batchErr := m.batches.DeriveYear(student.AdmissionYear)
	if batches := trimAll(criteria.EligibleBatches); len(batches) > 0 {
		switch {
		case batchErr != nil:
			fail(CriterionBatch, "batch cannot be derived: %v", batchErr)
		case !contains(batches, batch):
			fail(CriterionBatch, "batch %s is not among eligible batches %s", batch, strings.Join(batches, ", "))
		}
	}

	if student.CGPA < criteria.MinimumCGPA {
		fail(CriterionCGPA, "CGPA %.2f is below the minimum %.2f", student.CGPA, criteria.MinimumCGPA)
	}

	if student.ActiveBacklogs > criteria.MaxBacklogsAllowed {
		fail(CriterionBacklogs, "%d active backlogs exceed the allowed %d", student.ActiveBacklogs, criteria.MaxBacklogsAllowed)
	}

	if criteria.YearOfPassing != 0 {
		year, ok := student.AdmissionYear.Int()
		switch {
		case !ok:
			fail(CriterionYearOfPassing, "year of passing cannot be derived from admission year %q", student.AdmissionYear.String())
		case YearOfPassing(year) != criteria.YearOfPassing:
			fail(CriterionYearOfPassing, "year of passing %d does not match required %d", YearOfPassing(year), criteria.YearOfPassing)
		}
	}

	return EligibilityResult{Eligible: len(reasons) == 0, Reasons: reasons}
}

// CompanyEligibility pairs a company with a student's verdict for it.
type CompanyEligibility struct {
	Company models.Company    `json:"company"`
	Package float64           `json:"packageLpa,omitempty"`
	Result  EligibilityResult `json:"result"`
}

// EligibleCompanies evaluates a student against every company's posting,
// ordered by visiting date (undated last) and then name.
func (m *Matcher) EligibleCompanies(student models.Student, companies []models.Company) []CompanyEligibility {
	out := make([]CompanyEligibility, 0, len(companies))
	for _, c := range companies {
		ce := CompanyEligibility{Company: c, Result: m.Evaluate(student, CriteriaFor(c))}
		if c.PackageOffer != "" {
			if v, err := ParsePackage(c.PackageOffer); err == nil {
				ce.Package = v
			}
		}
		out = append(out, ce)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Company.VisitingDate, out[j].Company.VisitingDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return strings.ToLower(out[i].Company.Name) < strings.ToLower(out[j].Company.Name)
	})
	return out
}

// Upcoming reports whether a company visits after now.
func Upcoming(c models.Company, now time.Time) bool {
	return c.VisitingDate != nil && c.VisitingDate.After(now)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func displayCode(code string) string {
	if code == "" {
		return "(none)"
	}
	return code
}
