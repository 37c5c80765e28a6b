// Package carbondb is the SQLite-backed Store implementation: events, API
// keys, request logs, and emission factors in one database file. The summary
// cache lives in memory next to the connection; no lock is held across SQL
// I/O.
package carbondb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"charizard.ecotrip.dev/internal/appconf"
	"charizard.ecotrip.dev/internal/emissions"
	"charizard.ecotrip.dev/internal/storage"
)

//go:embed schema.sql
var ddl string

// Config holds configuration options for the Client.
type Config struct {
	DBPath string // Path to the SQLite database file, or ":memory:"
	Env    appconf.Environment
}

// Client implements storage.Store on SQLite.
type Client struct {
	config Config
	DB     *sql.DB
	cache  *storage.SummaryCache
	calc   *emissions.Calculator
}

// NewClient opens (or creates) the database, runs the schema migration, and
// wires the client up as its own factor source for the resolver.
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, errors.New("test database must use in-memory storage")
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("performing database migration: %w", err)
	}

	client := &Client{
		config: config,
		DB:     db,
		cache:  storage.NewSummaryCache(),
	}
	client.calc = emissions.NewCalculator(emissions.NewResolver(client))
	return client, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}

// ClearAll wipes every table. Admin-only.
func (c *Client) ClearAll(ctx context.Context) error {
	for _, table := range []string{"events", "api_keys", "api_logs", "emission_factors"} {
		if _, err := c.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}
	}
	c.cache.Clear()
	return nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
