package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/target/gradebook/config"
	"github.com/target/gradebook/internal/adapters/backend"
	"github.com/target/gradebook/internal/observability/statsd"
	"github.com/target/gradebook/internal/service"
)

// ServiceContainer holds the application services shared by the HTTP server and the
// admin CLI.
type ServiceContainer struct {
	Auth        *service.AuthService
	Roster      *service.RosterService
	Diagnostics *service.DiagnosticsService
	// Backend builds per-request data clients. Credentials are checked when a client is
	// requested, so a partially configured backend still serves sign-in.
	Backend *backend.Factory
}

// ServiceDeps contains the infrastructure the services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB // optional
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the application services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	auth, err := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		IsDev:       deps.Config.IsDev,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	factory := NewBackendFactory(deps.Config.Backend)
	if missing := backendGaps(deps.Config.Backend); len(missing) > 0 {
		logger.Warn("backend partially configured; data pages will report it", "missing", missing)
	}

	return ServiceContainer{
		Auth:        auth,
		Roster:      service.NewRosterService(service.RosterServiceOptions{Clients: factory}),
		Diagnostics: service.NewDiagnosticsService(service.DiagnosticsServiceOptions{Clients: factory, Logger: logger}),
		Backend:     factory,
	}, nil
}

// NewBackendFactory builds the REST client factory for cfg.
func NewBackendFactory(cfg config.BackendConfig) *backend.Factory {
	return backend.NewFactory(backend.FactoryOptions{Config: cfg})
}

func backendGaps(cfg config.BackendConfig) []string {
	var missing []string
	if cfg.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if cfg.ServiceRoleKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	return missing
}

// ReadinessChecks returns the dependency probes served on /readyz.
func ReadinessChecks(db *sql.DB, redisClient redis.UniversalClient) map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error, 2)
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	return checks
}

// NewMetricsSink dials the StatsD agent, or returns a nil client that drops metrics when
// no address is configured.
func NewMetricsSink(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	var tags map[string]string
	if cfg.Env != "" {
		tags = map[string]string{"env": cfg.Env}
	}
	client, err := statsd.New(ctx, statsd.Config{
		Address: cfg.Address,
		Prefix:  cfg.Prefix,
		Tags:    tags,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if client != nil {
		logger.Info("statsd metrics enabled", "addr", cfg.Address)
	}
	return client, nil
}

// ServiceOrchestrationConfig holds everything needed to run the server until shutdown.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	// ShutdownTimeout bounds graceful shutdown; defaults to 10s.
	ShutdownTimeout time.Duration
}

// RunServicesWithShutdown serves HTTP until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then drains in-flight requests.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := NewMetricsSink(ctx, cfg.Config.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.Warn("close statsd client failed", "error", cerr)
		}
	}()

	var sink statsd.Sink
	if metrics != nil {
		sink = metrics
	}
	server := NewHTTPServer(&HTTPServerConfig{
		Config:          cfg.Config,
		Services:        cfg.Services,
		ReadinessChecks: ReadinessChecks(cfg.DB, cfg.RedisClient),
		Metrics:         sink,
		Logger:          logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		return ShutdownHTTPServer(ShutdownConfig{
			Server:  server,
			Timeout: cfg.ShutdownTimeout,
			Logger:  logger,
		})
	})

	return g.Wait()
}
