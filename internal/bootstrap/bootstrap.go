package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/analytics"
	appControllers "github.com/yigit/placementhub/internal/app/controllers"
	appMigrations "github.com/yigit/placementhub/internal/app/migrations"
	appRepos "github.com/yigit/placementhub/internal/app/repositories"
	appRoutes "github.com/yigit/placementhub/internal/app/routes"
	appServices "github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/config"
	"github.com/yigit/placementhub/internal/db"
	appMiddleware "github.com/yigit/placementhub/internal/middleware"
	pkgAuth "github.com/yigit/placementhub/internal/pkg/auth"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AnalyticsService      *appServices.AnalyticsService
	EligibilityService    *appServices.EligibilityService
	DepartmentService     *appServices.DepartmentService
	Refresher             *appServices.DashboardRefresher
	HealthController      *appControllers.HealthController
	DepartmentController  *appControllers.DepartmentController
	AnalyticsController   *appControllers.AnalyticsController
	EligibilityController *appControllers.EligibilityController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if len(cfg.EnvOverrides) > 0 {
		lgr.Info().Strs("envOverrides", cfg.EnvOverrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies migrations and
// seeds the department catalogue.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, logger.Component(lgr, "db"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, logger.Component(lgr, "migrations"))
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return seed.CreateDefaultData(ctx, appRepos.NewDepartmentRepository(tx), lgr)
	})
	if err != nil {
		// the built-in catalogue still serves reads
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deriver := &analytics.BatchDeriver{MinYear: cfg.Analytics.MinAdmissionYear, Now: time.Now}
	projector := analytics.NewProjector(deriver)
	matcher := analytics.NewMatcher(deriver)

	loader := appServices.NewSnapshotLoader(
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.PlacementRepository,
		helpers.ParseDuration(cfg.Analytics.SourceTimeout, 10*time.Second),
		logger.Component(lgr, "snapshot"),
	)

	deps.AnalyticsService = appServices.NewAnalyticsService(loader, projector, logger.Component(lgr, "analytics"))
	deps.EligibilityService = appServices.NewEligibilityService(
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		matcher,
		logger.Component(lgr, "eligibility"),
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, logger.Component(lgr, "departments"))

	if interval := helpers.ParseDuration(cfg.Analytics.RefreshInterval, 0); interval > 0 {
		deps.Refresher = appServices.NewDashboardRefresher(func(ctx context.Context) (analytics.Report, error) {
			return deps.AnalyticsService.Report(ctx, time.Time{})
		}, interval, logger.Component(lgr, "refresher"))
		deps.AnalyticsService.UseRefresher(deps.Refresher)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.HealthController = appControllers.NewHealthController(database)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)
	deps.EligibilityController = appControllers.NewEligibilityController(deps.EligibilityService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogging(logger.Component(lgr, "http")))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.DepartmentController,
		deps.AnalyticsController,
		deps.EligibilityController,
		deps.AuthMiddleware,
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader},
		ExposeHeaders:    []string{appMiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}
