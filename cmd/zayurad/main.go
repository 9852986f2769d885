package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"zayura-backend/config"
	"zayura-backend/internal/api"
	"zayura-backend/internal/auth"
	"zayura-backend/internal/db"
	"zayura-backend/internal/mw"
	"zayura-backend/internal/notification"
	"zayura-backend/internal/reminder"
	"zayura-backend/internal/service"
	"zayura-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "zayura ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("failed to read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Push is optional: without VAPID keys the API still works, it just never notifies.
	var webpushOptions *webpush.Options
	var notifier service.Notifier
	var dispatcher reminder.Dispatcher
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		pool.Start(ctx)
		notifier, dispatcher = pool, pool
	} else {
		logger.Println("VAPID keys are not configured; push notifications are disabled")
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	svc := service.New(appStore, cfg.Billing, issuer, notifier)
	if err := svc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatalf("failed to seed admin user: %v", err)
	}

	reminderSvc := reminder.NewService(cfg.Reminder, cfg.Billing.Location, appStore, dispatcher)
	go reminderSvc.Run(ctx)

	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, 10*time.Minute)
	go sweepLimiter(ctx, limiter)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	router := api.NewRouter(api.NewHandler(svc, webpushOptions), issuer, limiter, cacheTTL)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

func sweepLimiter(ctx context.Context, limiter *mw.IPRateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				log.Printf("Dropped %d idle rate limiters", n)
			}
		}
	}
}
