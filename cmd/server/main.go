package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/nmoreno/ventapos/internal/adapter/http"
	"github.com/nmoreno/ventapos/internal/adapter/http/handler"
	"github.com/nmoreno/ventapos/internal/adapter/http/middleware"
	postgresRepo "github.com/nmoreno/ventapos/internal/adapter/repository/postgres"
	redisRepo "github.com/nmoreno/ventapos/internal/adapter/repository/redis"
	"github.com/nmoreno/ventapos/internal/infrastructure/config"
	"github.com/nmoreno/ventapos/internal/infrastructure/logger"
	"github.com/nmoreno/ventapos/internal/infrastructure/postgres"
	"github.com/nmoreno/ventapos/internal/infrastructure/redis"
	"github.com/nmoreno/ventapos/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	// Apply schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	lineItemRepo := postgresRepo.NewLineItemRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	productUC := usecase.NewProductUseCase(productRepo, idGen)
	saleUC := usecase.NewSaleUseCase(txManager, productRepo, saleRepo, lineItemRepo, idGen, retrier, cache)
	balanceUC := usecase.NewBalanceUseCase(saleRepo, expenseRepo, cache, cfg.BalanceCacheTTL)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, idGen, cache)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productUC)
	saleHandler := handler.NewSaleHandler(saleUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ProductHandler:   productHandler,
		SaleHandler:      saleHandler,
		BalanceHandler:   balanceHandler,
		ExpenseHandler:   expenseHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
