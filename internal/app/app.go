package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TioMeko/Property-Management/internal/auth"
	"github.com/TioMeko/Property-Management/internal/config"
	handler "github.com/TioMeko/Property-Management/internal/handler/http"
	"github.com/TioMeko/Property-Management/internal/repository/postgres"
	"github.com/TioMeko/Property-Management/internal/service"
	"github.com/TioMeko/Property-Management/migrations"
	"github.com/TioMeko/Property-Management/pkg/database"
	"github.com/TioMeko/Property-Management/pkg/health"
	"github.com/TioMeko/Property-Management/pkg/middleware"
)

// App wires together all dependencies and runs the server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Build the dependency graph.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenValidity())

	userRepo := postgres.NewUserRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	noticeRepo := postgres.NewNoticeRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	onboardingRepo := postgres.NewOnboardingRepository(pool)

	svcs := handler.Services{
		Auth:        service.NewAuthService(userRepo, tokens, logger),
		Tenant:      service.NewTenantService(paymentRepo, noticeRepo, logger),
		Lease:       service.NewLeaseService(leaseRepo, logger),
		Payment:     service.NewPaymentService(paymentRepo, logger),
		Invoice:     service.NewInvoiceService(invoiceRepo, logger),
		Maintenance: service.NewMaintenanceService(maintenanceRepo, logger),
		Notice:      service.NewNoticeService(noticeRepo, logger),
		Onboarding:  service.NewOnboardingService(onboardingRepo, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(svcs, tokens, healthHandler, logger, middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: drain in-flight HTTP requests,
// then close the PostgreSQL pool.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
