package dto

import (
	"time"

	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
)

// ProjectRequest carries caller-supplied collections for an ad-hoc projection.
type ProjectRequest struct {
	Students   []models.Student   `json:"students"`
	Companies  []models.Company   `json:"companies"`
	Placements []models.Placement `json:"placements"`
	Now        *time.Time         `json:"now,omitempty"`
}

// Input converts the request into engine input.
func (r ProjectRequest) Input() analytics.Input {
	in := analytics.Input{Students: r.Students, Companies: r.Companies, Placements: r.Placements}
	if r.Now != nil {
		in.Now = *r.Now
	}
	return in
}

// StudentInput is the student half of an eligibility request.
type StudentInput struct {
	ID             string      `json:"id"`
	Department     string      `json:"department" binding:"required"`
	AdmissionYear  models.Year `json:"admissionYear" swaggertype:"integer" example:"2021"`
	CGPA           float64     `json:"cgpa" binding:"gte=0,lte=10" example:"8.2"`
	ActiveBacklogs int         `json:"activeBacklogs" binding:"gte=0" example:"0"`
}

// CriteriaInput is the posting half of an eligibility request.
type CriteriaInput struct {
	EligibleDepartments []string `json:"eligibleDepartments" example:"CSE,IT"`
	EligibleBatches     []string `json:"eligibleBatches" binding:"omitempty,dive,batchlabel" example:"2021-2025"`
	MinimumCGPA         float64  `json:"minimumCgpa" binding:"gte=0,lte=10" example:"7.5"`
	MaxBacklogsAllowed  int      `json:"maxBacklogsAllowed" binding:"gte=0" example:"0"`
	YearOfPassing       int      `json:"yearOfPassing" binding:"omitempty,gte=1990" example:"2025"`
}

// EvaluateEligibilityRequest asks for a single eligibility verdict.
type EvaluateEligibilityRequest struct {
	Student  *StudentInput  `json:"student" binding:"required"`
	Criteria *CriteriaInput `json:"criteria" binding:"required"`
}

// StudentRecord converts the student half into a record.
func (r EvaluateEligibilityRequest) StudentRecord() models.Student {
	s := r.Student
	return models.Student{
		ID:             s.ID,
		Department:     s.Department,
		AdmissionYear:  s.AdmissionYear,
		CGPA:           s.CGPA,
		ActiveBacklogs: s.ActiveBacklogs,
	}
}

// EngineCriteria converts the posting half into engine criteria.
func (r EvaluateEligibilityRequest) EngineCriteria() analytics.Criteria {
	c := r.Criteria
	return analytics.Criteria{
		EligibleDepartments: c.EligibleDepartments,
		EligibleBatches:     c.EligibleBatches,
		MinimumCGPA:         c.MinimumCGPA,
		MaxBacklogsAllowed:  c.MaxBacklogsAllowed,
		YearOfPassing:       c.YearOfPassing,
	}
}
