package cli

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusops/ucms-api/internal/repository"
	"github.com/campusops/ucms-api/internal/service"
	"github.com/campusops/ucms-api/pkg/cache"
	"github.com/campusops/ucms-api/pkg/config"
	"github.com/campusops/ucms-api/pkg/database"
	"github.com/campusops/ucms-api/pkg/logger"
	"github.com/campusops/ucms-api/pkg/storage"
)

// app wires configuration, store access and services for the commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *sqlx.DB
	redis   *redis.Client
	metrics *service.MetricsService

	enrollments *service.EnrollmentService
	records     *service.RecordsService
	students    *service.StudentService
	exports     *service.ExportService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Redis is optional; without it the aggregator reads straight from the
	// store every time.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, err
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	cacheRepo := repository.NewCacheRepository(redisClient, log)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, log, cfg.Analytics.CacheEnabled && redisClient != nil)

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)

	records := service.NewRecordsService(reportRepo, cacheSvc, metrics, log)

	return &app{
		cfg:         cfg,
		log:         log,
		db:          db,
		redis:       redisClient,
		metrics:     metrics,
		enrollments: service.NewEnrollmentService(enrollmentRepo, cacheSvc, metrics, validate, log),
		records:     records,
		students:    service.NewStudentService(studentRepo, offeringRepo, validate, log),
		exports:     service.NewExportService(records, exportStore, log),
	}, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
