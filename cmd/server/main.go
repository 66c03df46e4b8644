package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"optiontracker/internal/client/oplab"
	"optiontracker/internal/config"
	cronrunner "optiontracker/internal/cron"
	"optiontracker/internal/db"
	"optiontracker/internal/handler"
	"optiontracker/internal/logger"
	"optiontracker/internal/marketdata"
	gormrepository "optiontracker/internal/repository/gorm"
	"optiontracker/internal/service"
	"optiontracker/internal/stream"

	_ "optiontracker/docs"
)

// @title Option Strategy Tracker API
// @version 1.0
// @description Multi-leg option strategy tracking with live valuation.
func main() {
	cfgPath := os.Getenv("OT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("OT_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	oplabHTTP := &http.Client{Timeout: cfg.Oplab.Timeout}
	oplabClient := oplab.NewClient(oplabHTTP, cfg.Oplab.BaseURL, cfg.Oplab.AccessToken)
	if oplabClient.Mocked() {
		logger.Warn("no oplab access token configured, serving canned market data")
	}

	store := gormrepository.New(dbConn.Gorm)
	market := &marketdata.Service{Client: oplabClient, Logger: logger}
	hub := stream.NewHub(cfg.Stream.BufferPerConn, logger)

	authSvc := &service.AuthService{Repo: store, Logger: logger}
	strategySvc := &service.StrategyService{Repo: store, Market: market, Logger: logger}
	refreshSvc := &service.QuoteRefreshService{Repo: store, Market: market, Hub: hub, Logger: logger}
	alertMonitor := &service.AlertMonitor{
		Repo:           store,
		Logger:         logger,
		DedupeInterval: cfg.Alerts.DedupeInterval,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.CORSMiddleware())
	engine.Use(handler.IdentityMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	authHandler := &handler.AuthHandler{Auth: authSvc}
	authHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Strategies: strategySvc, Repo: store, Logger: logger}
	strategyHandler.Register(engine)
	quoteHandler := &handler.QuoteHandler{Repo: store, Hub: hub, Logger: logger}
	quoteHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.QuoteRefresh, func(ctx context.Context) {
			if err := refreshSvc.RunOnce(ctx); err != nil {
				logger.Warn("quote refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register quote refresh failed", zap.Error(err))
		}
		if cfg.Alerts.Enabled {
			_, err = cronRunner.Add(cfg.Cron.AlertScan, func(ctx context.Context) {
				if err := alertMonitor.RunOnce(ctx); err != nil {
					logger.Warn("alert scan failed", zap.Error(err))
				}
			})
			if err != nil {
				logger.Warn("cron register alert scan failed", zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()

		// Warm the snapshot tables so the first page load has marks.
		go func() {
			if err := refreshSvc.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("initial quote refresh failed", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", zap.Error(err))
	}
}
