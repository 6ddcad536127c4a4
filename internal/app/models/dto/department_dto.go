package dto

import "github.com/yigit/placementhub/internal/app/models"

// DepartmentResponse represents one catalogue entry
type DepartmentResponse struct {
	Code    string   `json:"code" example:"CSE"`
	Name    string   `json:"name" example:"Computer Science and Engineering"`
	Aliases []string `json:"aliases,omitempty"`
}

// DepartmentListResponse represents the department catalogue
type DepartmentListResponse struct {
	CatalogVersion string               `json:"catalogVersion" example:"2024.1"`
	Departments    []DepartmentResponse `json:"departments"`
}

// NewDepartmentListResponse converts catalogue rows, taking the version from the first row.
func NewDepartmentListResponse(rows []models.Department) DepartmentListResponse {
	resp := DepartmentListResponse{Departments: make([]DepartmentResponse, 0, len(rows))}
	for _, d := range rows {
		if resp.CatalogVersion == "" {
			resp.CatalogVersion = d.CatalogVersion
		}
		resp.Departments = append(resp.Departments, DepartmentResponse{Code: d.Code, Name: d.Name, Aliases: d.Aliases})
	}
	return resp
}
