package cli

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kevin-luna/cursito-api/internal/repository"
	"github.com/kevin-luna/cursito-api/internal/service"
	"github.com/kevin-luna/cursito-api/internal/survey"
	"github.com/kevin-luna/cursito-api/pkg/cache"
	"github.com/kevin-luna/cursito-api/pkg/config"
	"github.com/kevin-luna/cursito-api/pkg/database"
	"github.com/kevin-luna/cursito-api/pkg/export"
	"github.com/kevin-luna/cursito-api/pkg/logger"
)

// session bundles what a command needs to build reports. close releases connections.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	reports *service.ReportService
	cache   *service.CacheService
	close   func()
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	redisClient, err := cache.NewRedis(cfg.Redis, cfg.Cache)
	if err != nil {
		logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	cacheSvc := service.NewCacheService(cacheRepo, nil, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	sources := service.WithSnapshotCache(service.ReportSources{
		Workers:     repository.NewWorkerRepository(db),
		Courses:     repository.NewCourseRepository(db),
		Enrollments: repository.NewEnrollmentRepository(db),
		Answers:     repository.NewAnswerRepository(db),
	}, cacheSvc, cfg.Cache.TTL)

	style := export.DefaultStyle().WithPageSize(cfg.Reports.PageSize).WithLocation(cfg.Reports.Location())
	reports := service.NewReportService(sources, survey.MustLoadRegistry(), validator.New(), nil, logr, service.ReportServiceConfig{Style: style})

	return &session{
		cfg:     cfg,
		logger:  logr,
		reports: reports,
		cache:   cacheSvc,
		close: func() {
			_ = cacheRepo.Close()
			_ = db.Close()
			_ = logr.Sync()
		},
	}, nil
}
