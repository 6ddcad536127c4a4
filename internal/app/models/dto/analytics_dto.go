package dto

import (
	"time"

	"github.com/yigit/placementhub/internal/analytics"
)

// DashboardResponse is the dashboard summary plus snapshot metadata.
type DashboardResponse struct {
	analytics.DashboardSummary
	CatalogVersion string    `json:"catalogVersion" example:"2024.1"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// DepartmentAnalyticsResponse lists per-department statistics.
type DepartmentAnalyticsResponse struct {
	DataAvailable  bool                       `json:"dataAvailable"`
	CatalogVersion string                     `json:"catalogVersion" example:"2024.1"`
	Departments    []analytics.DepartmentStat `json:"departments"`
	Issues         IssueSummary               `json:"issues"`
}

// BatchAnalyticsResponse lists per-batch statistics.
type BatchAnalyticsResponse struct {
	DataAvailable bool                    `json:"dataAvailable"`
	Batches       []analytics.BatchReport `json:"batches"`
}

// CompanyAnalyticsResponse lists company cards.
type CompanyAnalyticsResponse struct {
	DataAvailable bool                    `json:"dataAvailable"`
	Companies     []analytics.CompanyStat `json:"companies"`
}

// IssueSummary counts per-record data problems by kind and keeps the records.
type IssueSummary struct {
	Total  int                         `json:"total"`
	ByKind map[analytics.IssueKind]int `json:"byKind"`
	Items  []analytics.Issue           `json:"items,omitempty"`
}

// SummarizeIssues groups issues by kind.
func SummarizeIssues(issues []analytics.Issue) IssueSummary {
	s := IssueSummary{Total: len(issues), ByKind: make(map[analytics.IssueKind]int), Items: issues}
	for _, is := range issues {
		s.ByKind[is.Kind]++
	}
	return s
}

// NewDashboardResponse builds the dashboard payload from a report.
func NewDashboardResponse(r analytics.Report) DashboardResponse {
	return DashboardResponse{
		DashboardSummary: r.DashboardSummary,
		CatalogVersion:   r.CatalogVersion,
		GeneratedAt:      r.GeneratedAt,
	}
}

// NewDepartmentAnalyticsResponse builds the department payload from a report.
func NewDepartmentAnalyticsResponse(r analytics.Report) DepartmentAnalyticsResponse {
	return DepartmentAnalyticsResponse{
		DataAvailable:  r.DataAvailable,
		CatalogVersion: r.CatalogVersion,
		Departments:    r.ByDepartment,
		Issues:         SummarizeIssues(r.Issues),
	}
}

// EligibilityResponse is a single verdict.
type EligibilityResponse struct {
	StudentID string `json:"studentId,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
	analytics.EligibilityResult
}

// CompanyEligibilityResponse lists a student's verdict for every company.
type CompanyEligibilityResponse struct {
	StudentID     string                         `json:"studentId"`
	EligibleCount int                            `json:"eligibleCount"`
	Companies     []analytics.CompanyEligibility `json:"companies"`
}

// NewCompanyEligibilityResponse counts eligible entries.
func NewCompanyEligibilityResponse(studentID string, list []analytics.CompanyEligibility) CompanyEligibilityResponse {
	resp := CompanyEligibilityResponse{StudentID: studentID, Companies: list}
	for _, ce := range list {
		if ce.Result.Eligible {
			resp.EligibleCount++
		}
	}
	return resp
}
