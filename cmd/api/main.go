package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/qualitec/erp-backend/internal/adapters/primary/http"
	mw "github.com/qualitec/erp-backend/internal/adapters/primary/http/middleware"
	"github.com/qualitec/erp-backend/internal/adapters/secondary/postgres"
	"github.com/qualitec/erp-backend/internal/auth"
	"github.com/qualitec/erp-backend/internal/config"
	"github.com/qualitec/erp-backend/internal/core/services"
	"github.com/qualitec/erp-backend/internal/infrastructure/logging"
	"github.com/qualitec/erp-backend/internal/infrastructure/metrics"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 4. Initialize Security & Observability Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	branchRepo := postgres.NewBranchRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	ncRepo := postgres.NewNonConformanceRepository(pool)
	overtimeRepo := postgres.NewOvertimeRepository(pool)
	extraRepo := postgres.NewExtraServiceRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Services (Core)
	branchService := services.NewBranchService(branchRepo)
	clientService := services.NewClientService(clientRepo, branchRepo)
	employeeService := services.NewEmployeeService(employeeRepo, branchRepo)
	contractService := services.NewContractService(contractRepo)
	ncService := services.NewNonConformanceService(ncRepo, employeeRepo, clientRepo, logger)
	rankingService := services.NewRankingService(employeeRepo, ncRepo, m, logger)
	overtimeService := services.NewOvertimeService(overtimeRepo, employeeRepo, contractRepo)
	extraService := services.NewExtraServiceManager(extraRepo, contractRepo)
	measurementService := services.NewMeasurementService(contractRepo, overtimeRepo, extraRepo, txManager, m, logger)
	loanService := services.NewLoanService(loanRepo, employeeRepo)

	// Handlers (Primary Adapters)
	branchHandler := httpAdapter.NewBranchHandler(branchService, errorHandler, logger)
	clientHandler := httpAdapter.NewClientHandler(clientService, errorHandler, logger)
	employeeHandler := httpAdapter.NewEmployeeHandler(employeeService, errorHandler, logger)
	ncHandler := httpAdapter.NewNonConformanceHandler(ncService, errorHandler, logger)
	rankingHandler := httpAdapter.NewRankingHandler(rankingService, errorHandler, logger)
	overtimeHandler := httpAdapter.NewOvertimeHandler(overtimeService, errorHandler, logger)
	extraHandler := httpAdapter.NewExtraServiceHandler(extraService, errorHandler, logger)
	contractHandler := httpAdapter.NewContractHandler(contractService, measurementService, errorHandler, logger)
	loanHandler := httpAdapter.NewLoanHandler(loanService, errorHandler, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}
	if m != nil {
		r.Use(mw.HTTPMetrics(m))
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	healthHandler.RegisterRoutes(r)

	// Prometheus scrape endpoint
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.JWTMiddleware(tokenManager))

		r.Route("/branches", branchHandler.RegisterRoutes)
		r.Route("/clients", clientHandler.RegisterRoutes)
		r.Route("/employees", employeeHandler.RegisterRoutes)
		r.Route("/non-conformances", ncHandler.RegisterRoutes)
		r.Route("/ranking", rankingHandler.RegisterRoutes)
		r.Route("/overtime", overtimeHandler.RegisterRoutes)
		r.Route("/extra-services", extraHandler.RegisterRoutes)
		r.Route("/contracts", contractHandler.RegisterRoutes)
		r.Route("/loans", loanHandler.RegisterRoutes)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
