package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kevin-luna/cursito-api/api/swagger"
	"github.com/kevin-luna/cursito-api/internal/handler"
	internalmiddleware "github.com/kevin-luna/cursito-api/internal/middleware"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/repository"
	"github.com/kevin-luna/cursito-api/internal/service"
	"github.com/kevin-luna/cursito-api/internal/survey"
	"github.com/kevin-luna/cursito-api/pkg/cache"
	"github.com/kevin-luna/cursito-api/pkg/config"
	"github.com/kevin-luna/cursito-api/pkg/database"
	"github.com/kevin-luna/cursito-api/pkg/export"
	"github.com/kevin-luna/cursito-api/pkg/logger"
	corsmiddleware "github.com/kevin-luna/cursito-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kevin-luna/cursito-api/pkg/middleware/requestid"
)

// @title Cursito Reports API
// @version 1.0.0
// @description PDF and CSV reports for the course management system
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis, cfg.Cache)
	if err != nil {
		logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	sources := service.WithSnapshotCache(service.ReportSources{
		Workers:     repository.NewWorkerRepository(db),
		Courses:     repository.NewCourseRepository(db),
		Enrollments: repository.NewEnrollmentRepository(db),
		Answers:     repository.NewAnswerRepository(db),
	}, cacheSvc, cfg.Cache.TTL)

	catalogs, err := survey.LoadRegistry()
	if err != nil {
		logr.Sugar().Fatalw("survey catalogs invalid", "error", err)
	}

	style := export.DefaultStyle().WithPageSize(cfg.Reports.PageSize).WithLocation(cfg.Reports.Location())
	reportSvc := service.NewReportService(sources, catalogs, validator.New(), metricsSvc, logr, service.ReportServiceConfig{Style: style})
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	reports := api.Group("/reports")
	reports.Use(internalmiddleware.JWT(tokenSvc))
	{
		reports.GET("/attendance/:courseId", reportHandler.AttendanceList)
		reports.GET("/catalog/:survey", reportHandler.Catalog)

		own := internalmiddleware.RBAC(string(models.RoleAdmin), string(models.RoleDepartmentHead), internalmiddleware.Self)
		reports.GET("/enrollment/:workerId/:courseId", own, reportHandler.EnrollmentCertificate)
		reports.GET("/instructor-courses/:workerId", own, reportHandler.InstructorCourses)
		reports.GET("/survey/:workerId/:courseId/followup", own, reportHandler.FollowUpSurvey)
		reports.GET("/survey/:workerId/:courseId/opinion", own, reportHandler.OpinionSurvey)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "cache", cacheSvc.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
