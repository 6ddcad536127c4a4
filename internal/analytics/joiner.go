package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// UnknownLabel is shown in exports in place of an unresolved student or company.
const UnknownLabel = "Unknown"

// IssueKind classifies a per-record data problem.
type IssueKind string

const (
	IssueInvalidYear        IssueKind = "invalid_year"
	IssueUnresolvedStudent  IssueKind = "unresolved_student"
	IssueUnresolvedCompany  IssueKind = "unresolved_company"
	IssueUnmappedDepartment IssueKind = "unmapped_department"
	IssueInvalidPackage     IssueKind = "invalid_package"
	IssueUnknownStatus      IssueKind = "unknown_status"
)

// Issue is a problem with a single record that degraded, but did not stop, a computation.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	RecordID string    `json:"recordId"`
	Detail   string    `json:"detail"`
}

// Err maps the issue back onto its sentinel error.
func (i Issue) Err() error {
	var base error
	switch i.Kind {
	case IssueInvalidYear:
		base = apperrors.ErrInvalidYear
	case IssueUnresolvedStudent, IssueUnresolvedCompany:
		base = apperrors.ErrUnresolvedReference
	case IssueUnmappedDepartment:
		base = apperrors.ErrUnmappedDepartment
	case IssueInvalidPackage:
		base = apperrors.ErrInvalidPackage
	default:
		base = errors.New(string(i.Kind))
	}
	return fmt.Errorf("%w: %s: %s", base, i.RecordID, i.Detail)
}

// LinkedStudent is a student with its canonical department and derived batch.
// Batch is empty when the admission year is invalid.
type LinkedStudent struct {
	models.Student
	Dept     Department `json:"canonicalDepartment"`
	Batch    string     `json:"batch,omitempty"`
	BatchErr error      `json:"-"`
}

// LinkedPlacement is a placement whose references have been resolved or flagged.
type LinkedPlacement struct {
	Record  models.Placement `json:"record"`
	Student *LinkedStudent   `json:"student"`
	Company *models.Company  `json:"company"`
	// Package is the record's package value in LPA, falling back to the
	// company's parsed offer when the record carries none.
	Package    float64 `json:"packageValue"`
	Unresolved bool    `json:"unresolved"`
}

// Resolved reports whether both student and company were found.
func (l LinkedPlacement) Resolved() bool {
	return l.Student != nil && l.Company != nil
}

// Counts reports whether the record contributes to placement aggregates.
func (l LinkedPlacement) Counts() bool {
	return l.Resolved() && l.Record.Status.Placed()
}

// StudentID returns the referenced student id even when unresolved.
func (l LinkedPlacement) StudentID() string {
	if l.Student != nil {
		return l.Student.ID
	}
	return l.Record.Student.ID
}

// CompanyName returns the company's name, or UnknownLabel.
func (l LinkedPlacement) CompanyName() string {
	if l.Company == nil || strings.TrimSpace(l.Company.Name) == "" {
		return UnknownLabel
	}
	return l.Company.Name
}

// DepartmentCode returns the student's canonical department code. It is empty
// for an unresolved student or a blank department, matching the ByDepartment key.
func (l LinkedPlacement) DepartmentCode() string {
	if l.Student == nil {
		return ""
	}
	return l.Student.Dept.Code
}

// Joined is the output of a join run.
type Joined struct {
	Students   []LinkedStudent
	Placements []LinkedPlacement
	Issues     []Issue
}

// Joiner links placement records to students and companies.
type Joiner struct {
	batches *BatchDeriver
}

// NewJoiner returns a Joiner that derives batches with d.
func NewJoiner(d *BatchDeriver) *Joiner {
	if d == nil {
		d = NewBatchDeriver()
	}
	return &Joiner{batches: d}
}

// Resolve links placements using the default batch bounds.
func Resolve(students []models.Student, companies []models.Company, placements []models.Placement) []LinkedPlacement {
	return NewJoiner(nil).Join(students, companies, placements).Placements
}

// LinkStudent canonicalizes one student.
func (j *Joiner) LinkStudent(s models.Student) (LinkedStudent, []Issue) {
	var issues []Issue
	ls := LinkedStudent{Student: s, Dept: NormalizeDepartment(s.Department)}
	if ls.Dept.Unmapped {
		issues = append(issues, Issue{
			Kind:     IssueUnmappedDepartment,
			RecordID: s.ID,
			Detail:   fmt.Sprintf("department %q is not in catalogue %s", s.Department, CatalogVersion),
		})
	}

	batch, err := j.batches.DeriveYear(s.AdmissionYear)
	if err != nil {
		ls.BatchErr = err
		issues = append(issues, Issue{Kind: IssueInvalidYear, RecordID: s.ID, Detail: err.Error()})
	} else {
		ls.Batch = batch
	}
	return ls, issues
}

// Join resolves every placement against the supplied collections. Inputs are not modified.
func (j *Joiner) Join(students []models.Student, companies []models.Company, placements []models.Placement) Joined {
	out := Joined{
		Students:   make([]LinkedStudent, 0, len(students)),
		Placements: make([]LinkedPlacement, 0, len(placements)),
	}

	studentIdx := make(map[string]int, len(students))
	for _, s := range students {
		ls, issues := j.LinkStudent(s)
		out.Issues = append(out.Issues, issues...)
		if _, dup := studentIdx[s.ID]; !dup && s.ID != "" {
			studentIdx[s.ID] = len(out.Students)
		}
		out.Students = append(out.Students, ls)
	}

	companyIdx := make(map[string]int, len(companies))
	companyByName := make(map[string]int, len(companies))
	for i, c := range companies {
		if _, dup := companyIdx[c.ID]; !dup && c.ID != "" {
			companyIdx[c.ID] = i
		}
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if _, dup := companyByName[name]; !dup && name != "" {
			companyByName[name] = i
		}
	}

	embedded := make(map[string]*LinkedStudent)
	for _, p := range placements {
		lp := LinkedPlacement{Record: p}

		switch idx, ok := studentIdx[p.Student.ID]; {
		case ok:
			lp.Student = &out.Students[idx]
		case p.Student.Value != nil:
			if cached, seen := embedded[p.Student.ID]; seen && p.Student.ID != "" {
				lp.Student = cached
				break
			}
			ls, issues := j.LinkStudent(*p.Student.Value)
			out.Issues = append(out.Issues, issues...)
			lp.Student = &ls
			embedded[p.Student.ID] = &ls
		default:
			out.Issues = append(out.Issues, Issue{
				Kind:     IssueUnresolvedStudent,
				RecordID: p.ID,
				Detail:   fmt.Sprintf("student %q not found", p.Student.ID),
			})
		}

		if idx, ok := companyIdx[p.Company.ID]; ok {
			c := companies[idx]
			lp.Company = &c
		} else if p.Company.Value != nil {
			c := *p.Company.Value
			lp.Company = &c
		} else if idx, ok := companyByName[strings.ToLower(strings.TrimSpace(p.Company.ID))]; ok && p.Company.ID != "" {
			c := companies[idx]
			lp.Company = &c
		} else {
			out.Issues = append(out.Issues, Issue{
				Kind:     IssueUnresolvedCompany,
				RecordID: p.ID,
				Detail:   fmt.Sprintf("company %q not found", p.Company.ID),
			})
		}

		if !p.Status.Known() {
			out.Issues = append(out.Issues, Issue{
				Kind:     IssueUnknownStatus,
				RecordID: p.ID,
				Detail:   fmt.Sprintf("status %q is not counted as placed", p.Status),
			})
		}

		lp.Unresolved = !lp.Resolved()
		lp.Package = p.PackageValue
		if lp.Package <= 0 && lp.Company != nil && lp.Company.PackageOffer != "" {
			if v, err := ParsePackage(lp.Company.PackageOffer); err == nil {
				lp.Package = v
			} else {
				out.Issues = append(out.Issues, Issue{Kind: IssueInvalidPackage, RecordID: p.ID, Detail: err.Error()})
			}
		}

		out.Placements = append(out.Placements, lp)
	}

	return out
}
