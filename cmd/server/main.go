package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentpay-service/config"
	"rentpay-service/internal/auth"
	"rentpay-service/internal/cache"
	"rentpay-service/internal/handler"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/repository"
	"rentpay-service/internal/router"
	"rentpay-service/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting rentpay service",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store_backend", cfg.Store.Backend))

	// Initialize repositories
	var (
		linkRepo    repository.MerchantLinkRepository
		paymentRepo repository.PaymentRepository
	)
	switch cfg.Store.Backend {
	case "postgres":
		dbPool, err := pgxpool.New(context.Background(), cfg.Store.DSN)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer dbPool.Close()

		if err := dbPool.Ping(context.Background()); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")

		linkRepo = repository.NewPostgresMerchantLinkRepository(dbPool)
		paymentRepo = repository.NewPostgresPaymentRepository(dbPool)
	default:
		linkRepo = repository.NewMemoryMerchantLinkRepository()
		paymentRepo = repository.NewMemoryPaymentRepository()
	}

	// Optional merchant-verification cache
	verified := cache.NewVerificationCache(cfg.Redis)
	if verified != nil {
		logger.Info("merchant verification cache enabled",
			zap.String("redis_addr", cfg.Redis.Addr))
	}

	// Processor client
	gettrx := processor.NewClient(cfg.Gettrx, logger)
	if !gettrx.Configured() {
		logger.Warn("GETTRX_SECRET_KEY not set, merchant verification disabled")
	}

	// Usecases
	merchantUC := usecase.NewMerchantUsecase(linkRepo, gettrx, gettrx.Configured(), verified, logger)
	paymentUC := usecase.NewPaymentUsecase(linkRepo, paymentRepo, gettrx, cfg.Payment.DefaultMerchantAccount, logger)
	historyUC := usecase.NewHistoryUsecase(paymentRepo, logger)

	// Handlers
	merchantHandler := handler.NewMerchantHandler(merchantUC, logger, cfg.IsDevelopment())
	paymentHandler := handler.NewPaymentHandler(paymentUC, historyUC, gettrx, logger, cfg.IsDevelopment())

	// Identity resolution
	var resolver auth.Resolver
	switch cfg.Auth.Mode {
	case "jwt":
		resolver = auth.NewJWTResolver(cfg.Auth.JWTSecret)
	default:
		resolver = auth.StaticResolver{UserID: cfg.Auth.DevUserID}
		logger.Warn("static identity resolver in use, all requests act as one user",
			zap.String("user_id", cfg.Auth.DevUserID))
	}

	// Setup routes
	r := router.SetupRoutes(merchantHandler, paymentHandler, auth.Middleware(resolver, logger), cfg, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
