package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campushub/campushub/internal/app/controllers"
	appMigrations "github.com/campushub/campushub/internal/app/migrations"
	appRepos "github.com/campushub/campushub/internal/app/repositories"
	appRoutes "github.com/campushub/campushub/internal/app/routes"
	appServices "github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/db"
	appMiddleware "github.com/campushub/campushub/internal/middleware"
	pkgAuth "github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/email"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/internal/pkg/helpers"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/campushub/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	UserService         *appServices.UserService
	DepartmentService   *appServices.DepartmentService
	StudentService      *appServices.StudentService
	FacultyService      *appServices.FacultyService
	CourseService       *appServices.CourseService
	ExamService         *appServices.ExamService
	AttendanceService   *appServices.AttendanceService
	TimetableService    *appServices.TimetableService
	AdmissionService    *appServices.AdmissionService
	AnnouncementService *appServices.AnnouncementService
	ForumService        *appServices.ForumService
	AnalyticsService    *appServices.AnalyticsService
	ExportService       *appServices.ExportService

	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding problems should not keep the server down
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	repos := deps.Repos

	uploadsDir := cfg.Storage.UploadsDir
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	storageBaseURL := cfg.Storage.BaseURL
	if storageBaseURL == "" {
		storageBaseURL = "http://localhost:" + cfg.Server.Port + "/uploads"
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(uploadsDir, storageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(database, repos, deps.JWTService, deps.EmailService)
	deps.UserService = appServices.NewUserService(repos.UserRepository, repos.TokenRepository)
	deps.DepartmentService = appServices.NewDepartmentService(repos.DepartmentRepository, repos.ProgramRepository)
	deps.StudentService = appServices.NewStudentService(database, repos.StudentRepository, repos.CourseRepository, repos.ProgramRepository)
	deps.FacultyService = appServices.NewFacultyService(repos.FacultyRepository, repos.DepartmentRepository, repos.CourseRepository)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, repos.DepartmentRepository, repos.UserRepository, repos.StudentRepository)
	deps.ExamService = appServices.NewExamService(repos.ExamRepository, repos.CourseRepository, repos.StudentRepository)
	deps.AttendanceService = appServices.NewAttendanceService(database, repos.AttendanceRepository, repos.StudentRepository, repos.CourseRepository)
	deps.TimetableService = appServices.NewTimetableService(repos.TimetableRepository, repos.CourseRepository, repos.StudentRepository)
	deps.AdmissionService = appServices.NewAdmissionService(database, repos.AdmissionRepository, repos.ProgramRepository, deps.FileStorage, deps.EmailService)
	deps.AnnouncementService = appServices.NewAnnouncementService(repos.AnnouncementRepository)
	deps.ForumService = appServices.NewForumService(database, repos.ForumRepository, repos.CourseRepository)
	deps.AnalyticsService = appServices.NewAnalyticsService(repos)
	deps.ExportService = appServices.NewExportService(repos.StudentRepository, repos.FacultyRepository, repos.CourseRepository, repos.AttendanceRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.UserRepository)

	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, deps.UserService),
		User:         appControllers.NewUserController(deps.UserService, deps.AuthService),
		Department:   appControllers.NewDepartmentController(deps.DepartmentService),
		Student:      appControllers.NewStudentController(deps.StudentService),
		Faculty:      appControllers.NewFacultyController(deps.FacultyService),
		Course:       appControllers.NewCourseController(deps.CourseService),
		Exam:         appControllers.NewExamController(deps.ExamService),
		Attendance:   appControllers.NewAttendanceController(deps.AttendanceService),
		Timetable:    appControllers.NewTimetableController(deps.TimetableService),
		Admission:    appControllers.NewAdmissionController(deps.AdmissionService),
		Announcement: appControllers.NewAnnouncementController(deps.AnnouncementService),
		Forum:        appControllers.NewForumController(deps.ForumService),
		Analytics:    appControllers.NewAnalyticsController(deps.AnalyticsService, deps.ExportService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	uploadsDir := cfg.Storage.UploadsDir
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	router.Static("/uploads", uploadsDir)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
