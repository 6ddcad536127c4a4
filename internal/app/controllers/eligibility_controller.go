package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

// EligibilityController handles eligibility checks
type EligibilityController struct {
	eligibilityService *services.EligibilityService
}

// NewEligibilityController creates a new EligibilityController
func NewEligibilityController(eligibilityService *services.EligibilityService) *EligibilityController {
	return &EligibilityController{
		eligibilityService: eligibilityService,
	}
}

// Evaluate checks a supplied student against supplied criteria
// @Summary Evaluate eligibility
// @Description Returns the verdict and every failed criterion, in department, batch, CGPA, backlogs, year of passing order
// @Tags eligibility
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EvaluateEligibilityRequest true "Student and criteria"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityResponse} "Eligibility evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /eligibility/evaluate [post]
func (c *EligibilityController) Evaluate(ctx *gin.Context) {
	var req dto.EvaluateEligibilityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result := c.eligibilityService.Evaluate(req.StudentRecord(), req.EngineCriteria())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EligibilityResponse{
		StudentID:         req.Student.ID,
		EligibilityResult: result,
	}, ""))
}

// ForStudent lists a stored student's verdict for every company
// @Summary List eligible companies for a student
// @Tags eligibility
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param upcoming query bool false "Only companies visiting after now"
// @Param now query string false "Reference time (RFC3339)"
// @Success 200 {object} dto.APIResponse{data=dto.CompanyEligibilityResponse} "Eligibility evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /eligibility/students/{studentId} [get]
func (c *EligibilityController) ForStudent(ctx *gin.Context) {
	studentID := ctx.Param("studentId")
	if !validation.IsIdentifier(studentID) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid student ID"))
		return
	}

	upcoming := false
	if raw := ctx.Query("upcoming"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("upcoming must be true or false"))
			return
		}
		upcoming = v
	}

	now, err := helpers.ParseOptionalTime(ctx.Query("now"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var at time.Time
	if now != nil {
		at = *now
	}

	list, err := c.eligibilityService.ForStudent(ctx.Request.Context(), studentID, upcoming, at)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCompanyEligibilityResponse(studentID, list), ""))
}

// ForStudentAndCompany evaluates one stored student against one stored company
// @Summary Evaluate a student for a company
// @Tags eligibility
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param companyId path string true "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityResponse} "Eligibility evaluated"
// @Failure 404 {object} dto.ErrorResponse "Student or company not found"
// @Router /eligibility/students/{studentId}/companies/{companyId} [get]
func (c *EligibilityController) ForStudentAndCompany(ctx *gin.Context) {
	studentID, companyID := ctx.Param("studentId"), ctx.Param("companyId")
	if !validation.IsIdentifier(studentID) || !validation.IsIdentifier(companyID) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid student or company ID"))
		return
	}

	result, err := c.eligibilityService.ForStudentAndCompany(ctx.Request.Context(), studentID, companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EligibilityResponse{
		StudentID:         studentID,
		CompanyID:         companyID,
		EligibilityResult: result,
	}, ""))
}
