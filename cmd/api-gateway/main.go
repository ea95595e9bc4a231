package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/opencampus/timetable-api/api/swagger"
	"github.com/opencampus/timetable-api/internal/handler"
	"github.com/opencampus/timetable-api/internal/middleware"
	"github.com/opencampus/timetable-api/internal/repository"
	"github.com/opencampus/timetable-api/internal/service"
	"github.com/opencampus/timetable-api/internal/timetable"
	"github.com/opencampus/timetable-api/pkg/cache"
	"github.com/opencampus/timetable-api/pkg/config"
	"github.com/opencampus/timetable-api/pkg/database"
	"github.com/opencampus/timetable-api/pkg/jobs"
	"github.com/opencampus/timetable-api/pkg/logger"
	corsmiddleware "github.com/opencampus/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/opencampus/timetable-api/pkg/middleware/requestid"
	"github.com/opencampus/timetable-api/pkg/storage"
)

// @title Timetable API
// @version 0.1.0
// @description Interactive timetable allocation, conflict detection and export service
// @BasePath /api/v1
// @schemes http

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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		redisClient = nil
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	grid := timetable.NewGrid(cfg.Grid.DayStartMinute, cfg.Grid.DayEndMinute, cfg.Grid.IntervalMinutes)
	merger := timetable.NewMerger(cfg.Editor.MaxBlockMinutes)

	metricsSvc := service.NewMetricsService()

	allocationRepo := repository.NewAllocationRepository(db, metricsSvc)
	catalogRepo := repository.NewCatalogRepository(db, metricsSvc)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	editorSvc := service.NewEditorService(allocationRepo, catalogRepo, grid, cfg.Editor.DefaultPlacementMinutes, validate, logr, metricsSvc)
	viewSvc := service.NewViewService(allocationRepo, grid, merger, logr)
	catalogSvc := service.NewCatalogService(catalogRepo, cacheRepo, metricsSvc, service.CatalogServiceConfig{
		CacheEnabled: cfg.Catalog.CacheEnabled && redisClient != nil,
		CacheTTL:     cfg.Catalog.CacheTTL,
	}, logr)
	exportSvc := service.NewExportService(viewSvc, fileStorage, signer, service.ExportConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Exports.SignedURLTTL,
		DayStartMinute:  grid.StartMinute,
		DayEndMinute:    grid.EndMinute,
		IntervalMinutes: grid.Interval,
		Days:            timetable.RenderDays,
	}, validate, logr, nil, nil)

	cleanupQueue := jobs.NewQueue("export-cleanup", func(_ context.Context, _ jobs.Job) error {
		removed, err := exportSvc.Cleanup(0)
		if err != nil {
			return err
		}
		if len(removed) > 0 {
			logr.Info("expired exports removed", zap.Int("count", len(removed)))
		}
		return nil
	}, jobs.QueueConfig{Workers: 1, Logger: logr})
	cleanupQueue.Start(context.Background())
	defer cleanupQueue.Stop()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := cleanupQueue.Enqueue(jobs.Job{Type: "cleanup"}); err != nil {
				logr.Warn("failed to enqueue export cleanup", zap.Error(err))
			}
		}
	}()

	editorHandler := handler.NewEditorHandler(editorSvc)
	timetableHandler := handler.NewTimetableHandler(viewSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		schedules := api.Group("/schedules/:scheduleId")
		{
			schedules.GET("/timetable", timetableHandler.Timetable)
			schedules.GET("/conflicts", timetableHandler.Conflicts)
			schedules.POST("/import", editorHandler.Import)
			schedules.POST("/exports", exportHandler.Generate)

			allocations := schedules.Group("/allocations")
			{
				allocations.POST("", editorHandler.Place)
				allocations.PUT("/:id/resize", editorHandler.Resize)
				allocations.PUT("/:id/duration", editorHandler.AdjustDuration)
				allocations.DELETE("/:id", editorHandler.Remove)
				allocations.GET("/:id/conflicts", editorHandler.Conflicts)
			}
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/offerings", catalogHandler.ListOfferings)
			catalog.GET("/offerings/:id", catalogHandler.GetOffering)
			catalog.GET("/rooms", catalogHandler.ListRooms)
			catalog.GET("/rooms/:id", catalogHandler.GetRoom)
		}

		api.GET("/exports/:token", exportHandler.Download)
		api.GET("/metrics/snapshot", metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
