package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/config"
	"github.com/eystudio/caloriediet-backend/internal/database"
	"github.com/eystudio/caloriediet-backend/internal/handlers"
	"github.com/eystudio/caloriediet-backend/internal/logger"
	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/routes"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

const sweepInterval = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.Init(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	mongoClient, mongoDB, err := database.Connect(cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.String("host", cfg.MongoHost()), zap.Error(err))
	}
	defer database.Disconnect(mongoClient)
	if err := database.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Warn("index creation failed", zap.Error(err))
	}
	log.Info("mongodb connected", zap.String("host", cfg.MongoHost()), zap.String("db", cfg.DBName))

	pg, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()
	if err := database.InitPostgresTables(pg); err != nil {
		log.Fatal("postgres schema init failed", zap.Error(err))
	}
	if err := database.SeedContent(pg); err != nil {
		log.Warn("content seed failed", zap.Error(err))
	}
	log.Info("postgres connected")

	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Warn("redis unavailable, request rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
		log.Info("redis connected")
	}

	st := store.NewMongo(mongoDB)
	lifecycle := services.NewLifecycle(st, cfg.RetentionDays, log)

	var cloudinarySvc *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinarySvc, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Warn("cloudinary init failed, photo uploads disabled", zap.Error(err))
		}
	} else {
		log.Info("cloudinary credentials not set, photo uploads disabled")
	}

	api := &handlers.API{
		Cfg:        cfg,
		Store:      st,
		Lifecycle:  lifecycle,
		OAuth:      services.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthCallbackURL, "", ""),
		Handoff:    services.NewHandoffStore(),
		Vision:     services.NewVision(cfg.OpenAIKey, "", cfg.VisionModelPrimary, cfg.VisionModelFallback, log),
		DietGen:    services.NewDietGenerator(cfg.OpenAIKey, "", cfg.VisionModelPrimary, log),
		Content:    services.NewContentService(pg),
		Cloudinary: cloudinarySvc,
		FormLimit:  middleware.NewFormLimiter(5, time.Hour),
		Log:        log,
	}

	r := routes.Build(api, rdb)

	// Deletion sweep: once at startup, then daily.
	go func() {
		runSweep(ctx, lifecycle, log)
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			runSweep(ctx, lifecycle, log)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

func runSweep(ctx context.Context, lifecycle *services.Lifecycle, log *zap.Logger) {
	report, err := lifecycle.SweepExpired(ctx)
	if err != nil {
		log.Error("deletion sweep failed", zap.Error(err))
		return
	}
	log.Info("deletion sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("deleted", report.Deleted),
		zap.Int("not_due", report.NotDue),
		zap.Int("cancelled_malformed", report.CancelledMalformed),
		zap.Int("cancelled_activity", report.CancelledActivity),
		zap.Int("cancelled_session", report.CancelledSession),
		zap.Int("skipped_premium", report.SkippedPremium),
	)
}
