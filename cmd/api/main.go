package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"charizard.ecotrip.dev/carbondb"
	"charizard.ecotrip.dev/internal/app"
	"charizard.ecotrip.dev/internal/appconf"
	"charizard.ecotrip.dev/internal/logging"
	"charizard.ecotrip.dev/internal/restapi"
	"charizard.ecotrip.dev/internal/storage"
)

func main() {
	// A missing .env is fine; flags and the process environment still apply.
	_ = godotenv.Load()

	var cfg app.Config
	var envFlag string

	flag.IntVar(&cfg.Port, "port", 8080, "API server port")
	flag.StringVar(&envFlag, "env", envOrDefault("APP_ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&cfg.DBPath, "db-path", os.Getenv("DB_PATH"), "SQLite database path (empty for in-memory store)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second allowed per API key (<0 disables)")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.AdminAPIKey = os.Getenv("ADMIN_API_KEY")

	var logger *slog.Logger
	if cfg.Env == appconf.Development {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	} else {
		logger = logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	}

	store, err := makeStore(cfg)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(store, logger, "store")

	if cfg.Env == appconf.Development {
		// Demo credentials for local poking; never seeded outside development.
		if err := store.SetAPIKey(context.Background(), "demo", "secret-demo-key", "demo"); err != nil {
			logger.Error("failed to seed demo api key", "error", err)
		}
	}

	application := &app.Application{
		Config: cfg,
		Logger: logger,
		Store:  store,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "db_path", cfg.DBPath)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}

// makeStore selects the backend: SQLite when a database path is configured,
// otherwise the in-memory store.
func makeStore(cfg app.Config) (storage.Store, error) {
	if cfg.DBPath != "" {
		return carbondb.NewClient(carbondb.Config{DBPath: cfg.DBPath, Env: cfg.Env})
	}
	return storage.NewMemoryStore(), nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
