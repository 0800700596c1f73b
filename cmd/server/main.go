package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"adpilot/internal/client/amazonads"
	"adpilot/internal/config"
	cronrunner "adpilot/internal/cron"
	"adpilot/internal/db"
	"adpilot/internal/handler"
	"adpilot/internal/ingest"
	"adpilot/internal/logger"
	gormrepository "adpilot/internal/repository/gorm"
	"adpilot/internal/roi"
	"adpilot/internal/service"

	_ "adpilot/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("AP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("AP_ENV_ONLY"); envOnlyRaw != "" {
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

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default system switches failed", zap.Error(err))
	}

	var adsClient *amazonads.Client
	if cfg.Ads.ClientID != "" && cfg.Ads.RefreshToken != "" {
		adsClient = amazonads.New(amazonads.Config{
			Endpoint:     cfg.Ads.Endpoint,
			TokenURL:     cfg.Ads.TokenURL,
			ClientID:     cfg.Ads.ClientID,
			ClientSecret: cfg.Ads.ClientSecret,
			RefreshToken: cfg.Ads.RefreshToken,
			ProfileID:    cfg.Ads.ProfileID,
			Timeout:      cfg.Ads.Timeout,
		})
	} else {
		logger.Info("ads credentials absent; running in record-only mode")
	}

	roiCfg := roi.Config{
		RoyaltyPerUnit:        decimal.NewFromFloat(cfg.Profitability.RoyaltyPerUnit),
		PageReadRate:          decimal.NewFromFloat(cfg.Profitability.PageReadRate),
		BreakEvenFallbackACOS: decimal.NewFromFloat(cfg.Profitability.BreakEvenFallbackACOS),
	}
	reportSvc := &service.ReportService{Repo: store, Config: roiCfg}
	proposalSvc := &service.ProposalService{
		Repo:   store,
		Logger: logger,
		Flags:  settingsSvc,
	}
	if cfg.Executor.Enabled && adsClient != nil {
		proposalSvc.Backend = adsClient
	}
	syncSvc := &service.MetricsSyncService{
		Repo:   store,
		Ads:    adsClient,
		Logger: logger,
		Flags:  settingsSvc,
	}
	ingestSvc := &ingest.Service{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	campaignHandler := &handler.CampaignHandler{Repo: store}
	campaignHandler.Register(engine)
	reportHandler := &handler.ReportHandler{Service: reportSvc}
	reportHandler.Register(engine)
	proposalHandler := &handler.ProposalHandler{Repo: store, Service: proposalSvc}
	proposalHandler.Register(engine)
	ingestHandler := &handler.IngestHandler{Service: ingestSvc}
	ingestHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Repo: store, Service: settingsSvc}
	settingsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled && adsClient != nil {
		cronRunner := cronrunner.New(logger, ctx)
		lookback := cfg.MetricsSync.LookbackDays
		pageLimit := cfg.MetricsSync.PageLimit
		_, err = cronRunner.Add(cfg.Cron.MetricsSync, func(ctx context.Context) {
			if !settingsSvc.IsEnabled(ctx, service.FeatureMetricsSync, true) {
				return
			}
			result, err := syncSvc.Sync(ctx, service.SyncOptions{
				LookbackDays: lookback,
				PageLimit:    pageLimit,
			})
			if err != nil {
				logger.Warn("cron metrics sync failed", zap.Error(err))
				return
			}
			logger.Info("cron metrics sync ok",
				zap.Int("campaigns", result.Campaigns),
				zap.Int("keywords", result.Keywords),
				zap.Int("metric_days", result.MetricDays),
				zap.Int("metric_rows", result.MetricRows),
				zap.Time("from", result.From),
				zap.Time("to", result.To),
			)
		})
		if err != nil {
			logger.Warn("cron register metrics sync failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
