package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/application"
	applicationpg "github.com/jobnest/jobnest/internal/application/postgres"
	"github.com/jobnest/jobnest/internal/auth"
	authpg "github.com/jobnest/jobnest/internal/auth/postgres"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/candidate"
	candidatepg "github.com/jobnest/jobnest/internal/candidate/postgres"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/dashboard"
	"github.com/jobnest/jobnest/internal/feedback"
	feedbackpg "github.com/jobnest/jobnest/internal/feedback/postgres"
	"github.com/jobnest/jobnest/internal/interview"
	interviewpg "github.com/jobnest/jobnest/internal/interview/postgres"
	"github.com/jobnest/jobnest/internal/job"
	jobpg "github.com/jobnest/jobnest/internal/job/postgres"
	"github.com/jobnest/jobnest/internal/tenant"
	tenantpg "github.com/jobnest/jobnest/internal/tenant/postgres"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"github.com/jobnest/jobnest/internal/transport/rest"
	"github.com/jobnest/jobnest/internal/user"
	"github.com/jobnest/jobnest/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Manager  *tenantdb.Manager
	Router   *chi.Mux
	Resolver *tenant.Resolver
	Handlers rest.Handlers
	Cache    cache.Cache
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Cache, deps.Resolver, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Manager.Close()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// tenantModels is the full set of tables migrated into every tenant
// partition. The server and the seeder must agree on it.
func tenantModels() []interface{} {
	return []interface{}{
		&job.Job{},
		&candidate.Candidate{},
		&application.Application{},
		&interview.Interview{},
		&feedback.Feedback{},
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Environment)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sharedGorm, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open shared gorm handle: %w", err)
	}

	bus := events.NewEventBus(lg)

	var (
		redisCache cache.Cache
		views      *cache.Views
	)
	if cfg.Cache.Enabled {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisCache = rc
		views = cache.NewViews(rc, cfg.Cache.TTL, lg)
		views.SubscribeInvalidation(bus)
	}

	manager := tenantdb.NewManager(sharedGorm, cfg.Database.Source, cfg.Tenancy, lg, tenantModels()...)

	tenantRepo := tenantpg.NewTenantRepository(sharedGorm)
	resolver := tenant.NewResolver(tenantRepo, cfg.Tenancy, cfg.Environment, lg)
	tenantService := tenant.NewService(tenantRepo, manager, bus, lg)

	userRepo := authpg.NewUserRepository(sharedGorm)
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userRepo, tokenGen, cfg.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService, resolver, cfg.Environment)

	userService := user.NewService(userRepo, lg)

	jobService := job.NewService(jobpg.NewJobRepository(manager), bus, views, lg)
	candidateService := candidate.NewService(candidatepg.NewCandidateRepository(manager), bus, views, lg)
	applicationService := application.NewService(
		applicationpg.NewApplicationRepository(manager),
		jobOpenChecker{jobService},
		bus, views, lg,
	)
	interviewService := interview.NewService(interviewpg.NewInterviewRepository(manager), bus, views, lg)
	feedbackService := feedback.NewService(feedbackpg.NewFeedbackRepository(manager), bus, views, lg)
	dashboardService := dashboard.NewService(manager, lg)

	handlers := rest.Handlers{
		Tenant:      tenant.NewHandler(tenantService, resolver),
		Auth:        authHandler,
		User:        user.NewHandler(userService),
		Job:         job.NewHandler(jobService),
		Candidate:   candidate.NewHandler(candidateService),
		Application: application.NewHandler(applicationService, candidateProfileResolver{candidateService}),
		Interview:   interview.NewHandler(interviewService),
		Feedback:    feedback.NewHandler(feedbackService),
		Dashboard:   dashboard.NewHandler(dashboardService),
	}

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Manager:  manager,
		Router:   chi.NewRouter(),
		Resolver: resolver,
		Handlers: handlers,
		Cache:    redisCache,
		Logger:   lg,
	}, nil
}

// jobOpenChecker adapts the job service for application submission checks.
type jobOpenChecker struct {
	jobs *job.Service
}

func (c jobOpenChecker) IsOpen(ctx context.Context, jobID string) (bool, error) {
	j, err := c.jobs.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return j.IsOpen(), nil
}

// candidateProfileResolver maps a signed-in user to their candidate profile.
type candidateProfileResolver struct {
	candidates *candidate.Service
}

func (r candidateProfileResolver) CandidateIDForUser(ctx context.Context, userID string) (string, error) {
	c, err := r.candidates.GetOwnProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// initDB initializes the shared database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
