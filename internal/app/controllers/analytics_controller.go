package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

// AnalyticsController serves the placement dashboards
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard returns the rolled-up dashboard summary
// @Summary Get dashboard summary
// @Description Totals, placement rate, package statistics and upcoming interviews across all data
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param now query string false "Reference time (RFC3339) for upcoming interviews"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid reference time"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Source data unavailable"
// @Router /analytics/dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	now, err := helpers.ParseOptionalTime(ctx.Query("now"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	report, err := c.analyticsService.Dashboard(ctx.Request.Context(), now)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewDashboardResponse(report), ""))
}

// GetDepartments returns per-department statistics
// @Summary Get department analytics
// @Description Per-department totals, placement percentage and packages. format=rows returns flat spreadsheet rows.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param format query string false "Response shape" Enums(rows)
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentAnalyticsResponse} "Department analytics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Source data unavailable"
// @Router /analytics/departments [get]
func (c *AnalyticsController) GetDepartments(ctx *gin.Context) {
	report, err := c.analyticsService.Report(ctx.Request.Context(), time.Time{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if ctx.Query("format") == "rows" {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DepartmentRows(report.ByDepartment), ""))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewDepartmentAnalyticsResponse(report), ""))
}

// GetBatches returns statistics for every cohort
// @Summary Get batch analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BatchAnalyticsResponse} "Batch analytics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /analytics/batches [get]
func (c *AnalyticsController) GetBatches(ctx *gin.Context) {
	report, err := c.analyticsService.Report(ctx.Request.Context(), time.Time{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.BatchAnalyticsResponse{
		DataAvailable: report.DataAvailable,
		Batches:       report.ByBatch,
	}, ""))
}

// GetBatch returns the department breakdown of one cohort
// @Summary Get one batch
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param batch path string true "Batch label" example(2021-2025)
// @Success 200 {object} dto.APIResponse{data=analytics.BatchReport} "Batch retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed batch label"
// @Failure 404 {object} dto.ErrorResponse "No students in batch"
// @Router /analytics/batches/{batch} [get]
func (c *AnalyticsController) GetBatch(ctx *gin.Context) {
	batch, err := c.analyticsService.Batch(ctx.Request.Context(), ctx.Param("batch"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(batch, ""))
}

// GetCompanies returns company cards
// @Summary Get company analytics
// @Description Placement count and packages per department and company. With both filters set a single, possibly empty, breakdown is returned.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department code or alias"
// @Param company query string false "Company name"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyAnalyticsResponse} "Company analytics retrieved successfully"
// @Router /analytics/companies [get]
func (c *AnalyticsController) GetCompanies(ctx *gin.Context) {
	companies, err := c.analyticsService.Companies(ctx.Request.Context(), ctx.Query("department"), ctx.Query("company"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	available := false
	for _, cs := range companies {
		if cs.PlacedCount > 0 {
			available = true
			break
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CompanyAnalyticsResponse{
		DataAvailable: available,
		Companies:     companies,
	}, ""))
}

// Project runs the analytics on supplied collections
// @Summary Project supplied data
// @Description Computes every view from the students, companies and placements in the request body without touching storage
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProjectRequest true "Collections to project"
// @Success 200 {object} dto.APIResponse{data=analytics.Report} "Projection computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed collections"
// @Router /analytics/project [post]
func (c *AnalyticsController) Project(ctx *gin.Context) {
	var req dto.ProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	report := c.analyticsService.Project(req.Input())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report, "Projection computed"))
}
