package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hostelhub/cache"
	"hostelhub/config"
	"hostelhub/database"
	"hostelhub/handlers"
	"hostelhub/mail"
	"hostelhub/media"
	"hostelhub/middleware"
	"hostelhub/scheduler"
	"hostelhub/services"
	"hostelhub/utils"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	config.ValidateConfig(cfg)

	slogger := newLogger(cfg.LogLevel)
	slog.SetDefault(slogger)

	if err := utils.InitializeEncryption(cfg.EncryptionKey); err != nil {
		log.Fatal("Failed to initialize encryption:", err)
	}
	if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
		log.Fatal("Failed to initialize JWT:", err)
	}

	gormLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLevel = logger.Info
	}
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DatabaseDriver, gormLevel)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := services.Deps{
		DB:     db,
		Fees:   cfg.Fees,
		Logger: slogger,
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, slogger)
		if err != nil {
			slogger.Warn("redis unavailable, profile cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer rc.Close()
			deps.Cache = rc
		}
	}

	if cfg.ResendAPIKey != "" {
		deps.Mailer = mail.NewResend(cfg.ResendAPIKey, cfg.MailFrom)
	} else {
		slogger.Warn("RESEND_API_KEY not set, reminder emails will only be logged")
	}

	if cfg.OSSEndpoint != "" && cfg.OSSBucket != "" {
		store, err := media.NewOSS(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, cfg.OSSBucket)
		if err != nil {
			slogger.Warn("object storage unavailable, gallery files will not be removed", "error", err)
		} else {
			deps.Media = store
		}
	}

	svc := services.New(deps)

	if cfg.ReminderSchedule != "" {
		c, err := scheduler.StartReminders(cfg.ReminderSchedule, svc, slogger)
		if err != nil {
			log.Fatal("Failed to schedule reminders:", err)
		}
		defer c.Stop()
	}

	if err := middleware.TrustProxies(cfg.TrustedProxies); err != nil {
		log.Fatal("Invalid TRUSTED_PROXIES:", err)
	}

	h := handlers.NewHandlers(svc, slogger)
	r := handlers.NewRouter(h)

	limiter := middleware.NewRateLimiter(10, 50)
	stopCleanup := make(chan struct{})
	go limiter.Cleanup(stopCleanup)
	defer close(stopCleanup)

	var handler http.Handler = r
	handler = middleware.Recover(slogger)(handler)
	handler = limiter.Middleware(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.RequestLogger(slogger)(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slogger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
