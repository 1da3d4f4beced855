package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zombar/readability-analyzer/internal/aidetect"
	"github.com/zombar/readability-analyzer/internal/analyzer"
	"github.com/zombar/readability-analyzer/internal/api"
	"github.com/zombar/readability-analyzer/internal/cache"
	"github.com/zombar/readability-analyzer/internal/config"
	"github.com/zombar/readability-analyzer/internal/database"
	"github.com/zombar/readability-analyzer/internal/metrics"
	"github.com/zombar/readability-analyzer/internal/tokenize"
	"github.com/zombar/readability-analyzer/internal/tracing"
	"github.com/zombar/readability-analyzer/internal/version"
	"github.com/zombar/readability-analyzer/pkg/logging"
)

const serviceName = "readability-analyzer"

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("readability service initializing", "version", version.Version)

	var (
		configPath = flag.String("config", getEnv("CONFIG_PATH", "config.yaml"), "YAML config file (env: CONFIG_PATH)")
		port       = flag.String("port", "", "Server port, overrides config (env: PORT)")
		historyDSN = flag.String("history-db", "", "Run history DSN, overrides config (env: HISTORY_DB)")
		redisAddr  = flag.String("redis-addr", "", "Redis address for the result cache (env: REDIS_ADDR)")
		noHistory  = flag.Bool("no-history", getEnvBool("DISABLE_HISTORY", false), "Disable the run history (env: DISABLE_HISTORY)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err, "path", *configPath)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Error("invalid environment configuration", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *historyDSN != "" {
		cfg.History.DSN = *historyDSN
	}
	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
	}
	if *noHistory {
		cfg.History.DSN = ""
	}

	// Initialize tracing
	tp, err := tracing.InitTracer(context.Background(), tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: version.Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized", "endpoint", cfg.Tracing.Endpoint, "sample_rate", cfg.Tracing.SampleRate)
	}

	m := metrics.New("readability", prometheus.DefaultRegisterer)

	deps := api.Deps{
		Metrics:            m,
		Gatherer:           prometheus.DefaultGatherer,
		Logger:             logger,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		DefaultSensitivity: cfg.Analysis.DefaultSensitivity,
		DefaultCount:       cfg.Analysis.DefaultCount,
	}

	// Background work stops before the resources it uses are closed
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Run history
	if cfg.History.DSN != "" {
		db, err := openHistory(cfg.History, m, logger)
		if err != nil {
			logger.Error("failed to initialize run history", "error", err, "driver", database.DetectDriver(cfg.History.DSN))
			os.Exit(1)
		}
		defer db.Close()
		deps.History = db

		if cfg.History.Retention > 0 {
			pruned := make(chan struct{})
			go func() {
				defer close(pruned)
				pruneLoop(bgCtx, db, cfg.History.Retention, pruneInterval, logger)
			}()
			defer func() {
				stopBackground()
				<-pruned
			}()
		}
	} else {
		logger.Info("run history disabled")
	}

	// Result cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			logger.Warn("failed to connect to redis, continuing without result cache", "error", err, "addr", cfg.Redis.Addr)
		} else {
			defer rc.Close()
			deps.Cache = rc
			logger.Info("result cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL.String())
		}
	}

	// Initialize analyzer
	catalog, err := aidetect.BuildCatalog()
	if err != nil {
		logger.Error("failed to build pattern catalog", "error", err)
		os.Exit(1)
	}
	deps.Analyzer = analyzer.New(aidetect.NewDetector(catalog, cfg.Scoring), tokenize.Default())
	logger.Info("analyzer initialized", "categories", len(catalog.Categories()))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      buildHandler(logger, api.NewHandler(deps)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("readability service starting",
			"port", cfg.Server.Port,
			"history_enabled", deps.History != nil,
			"cache_enabled", deps.Cache != nil,
			"default_sensitivity", cfg.Analysis.DefaultSensitivity,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildHandler wraps the API with the middleware chain:
// recovery -> HTTP logging -> tracing -> handlers
func buildHandler(logger *slog.Logger, apiHandler http.Handler) http.Handler {
	return logging.Recovery(logger)(
		logging.HTTPLoggingMiddleware(logger)(
			tracing.HTTPMiddleware(serviceName)(apiHandler),
		),
	)
}

// openHistory opens and migrates the run history and exports its pool stats
func openHistory(cfg config.HistoryConfig, m *metrics.Metrics, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	if err := m.RegisterDB(db.Conn(), "history"); err != nil {
		logger.Warn("failed to register database metrics", "error", err)
	}

	logger.Info("run history initialized", "driver", db.Driver(), "retention", cfg.Retention.String())
	return db, nil
}

// pruneInterval is how often old runs are deleted
const pruneInterval = time.Hour

// pruneLoop deletes runs older than retention every interval until ctx is done
func pruneLoop(ctx context.Context, db *database.DB, retention, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := db.PruneRuns(ctx, time.Now().UTC().Add(-retention))
		if err != nil && ctx.Err() == nil {
			logger.Error("failed to prune run history", "error", err)
		} else if n > 0 {
			logger.Info("pruned run history", "deleted", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
