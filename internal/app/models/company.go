package models

import "time"

// Company is a recruiting company together with the eligibility rules of its posting.
type Company struct {
	ID                  string     `json:"id" db:"id" example:"cmp_acme"`
	Name                string     `json:"name" db:"name" example:"Acme Systems"`
	Industry            string     `json:"industry,omitempty" db:"industry" example:"Software"`
	EligibleDepartments []string   `json:"eligibleDepartments" db:"eligible_departments"`
	EligibleBatches     []string   `json:"eligibleBatches,omitempty" db:"eligible_batches"`
	MinimumCGPA         float64    `json:"minimumCgpa" db:"minimum_cgpa" example:"7.5"`
	MaxBacklogsAllowed  int        `json:"maxBacklogsAllowed" db:"max_backlogs_allowed" example:"0"`
	YearOfPassing       int        `json:"yearOfPassing,omitempty" db:"year_of_passing" example:"2025"`
	PackageOffer        string     `json:"packageOffer,omitempty" db:"package_offer" example:"₹12,00,000"`
	VisitingDate        *time.Time `json:"visitingDate,omitempty" db:"visiting_date"`
}

// Identity implements Identifiable.
func (c Company) Identity() string {
	return c.ID
}
