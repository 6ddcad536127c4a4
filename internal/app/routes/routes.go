package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/controllers"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	departmentController *controllers.DepartmentController,
	analyticsController *controllers.AnalyticsController,
	eligibilityController *controllers.EligibilityController,
	authMiddleware *middleware.AuthMiddleware,
) {
	validation.RegisterBindings()

	router.GET("/healthz", healthController.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// Department catalogue (public access)
	v1.GET("/departments", departmentController.GetAllDepartments)

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))

	analytics := admin.Group("/analytics")
	{
		analytics.GET("/dashboard", analyticsController.GetDashboard)
		analytics.GET("/departments", analyticsController.GetDepartments)
		analytics.GET("/batches", analyticsController.GetBatches)
		analytics.GET("/batches/:batch", analyticsController.GetBatch)
		analytics.GET("/companies", analyticsController.GetCompanies)
		analytics.POST("/project", analyticsController.Project)
	}

	eligibility := admin.Group("/eligibility")
	{
		eligibility.POST("/evaluate", eligibilityController.Evaluate)
		eligibility.GET("/students/:studentId", eligibilityController.ForStudent)
		eligibility.GET("/students/:studentId/companies/:companyId", eligibilityController.ForStudentAndCompany)
	}
}
