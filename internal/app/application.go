package app

import (
	"log/slog"

	"charizard.ecotrip.dev/internal/appconf"
	"charizard.ecotrip.dev/internal/storage"
)

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware: the configuration, the structured logger, and the store the
// engine runs against.
type Application struct {
	Config Config
	Logger *slog.Logger
	Store  storage.Store
}

// Config holds all the configuration settings for our Application. These are
// read from command-line flags and the environment when the application
// starts.
type Config struct {
	Port        int
	Env         appconf.Environment
	DBPath      string
	AdminAPIKey string
	RateLimit   int
}
