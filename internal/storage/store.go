// Package storage defines the capability interface the engine and API layer
// depend on, plus the in-memory implementation and the per-user summary
// cache shared by every backend.
package storage

import (
	"context"

	"charizard.ecotrip.dev/internal/emissions"
	"charizard.ecotrip.dev/internal/models"
)

// Window boundaries for the rolling aggregates, in seconds. Both windows are
// closed: an event exactly this old still counts.
const (
	WeekWindowSeconds  = 7 * 24 * 3600
	MonthWindowSeconds = 30 * 24 * 3600
)

// Store is the persistence contract consumed by the HTTP layer. The engine
// depends only on this interface, never on a concrete backend, so the
// calculation logic stays storage-agnostic and unit-testable without a
// database.
type Store interface {
	// API key management. Keys are stored hashed.
	SetAPIKey(ctx context.Context, userID, key, appName string) error
	CheckAPIKey(ctx context.Context, userID, key string) (bool, error)

	// Event persistence. AddEvent appends and invalidates the user's cached
	// summary; GetEvents returns the user's events in insertion order, empty
	// for an unknown user.
	AddEvent(ctx context.Context, ev models.TransitEvent) error
	GetEvents(ctx context.Context, userID string) ([]models.TransitEvent, error)

	// Summarize returns the user's cached footprint summary, recomputing it
	// from the full event history on a cache miss. GlobalAverageWeekly is
	// always recomputed.
	Summarize(ctx context.Context, userID string) (models.FootprintSummary, error)
	GlobalAverageWeekly(ctx context.Context) (float64, error)

	// Emission factor persistence, upsert by (mode, fuel_type, vehicle_size).
	// GetEmissionFactor returns (nil, nil) on a miss, which satisfies
	// emissions.FactorSource.
	StoreEmissionFactor(ctx context.Context, factor models.EmissionFactor) error
	GetEmissionFactor(ctx context.Context, mode, fuelType, vehicleSize string) (*models.EmissionFactor, error)
	GetAllEmissionFactors(ctx context.Context) ([]models.EmissionFactor, error)
	ClearEmissionFactors(ctx context.Context) error

	// Request audit log.
	AppendLog(ctx context.Context, rec models.APILogRecord) error
	GetLogs(ctx context.Context, limit int) ([]models.APILogRecord, error)
	ClearLogs(ctx context.Context) error

	// Admin operations.
	GetClients(ctx context.Context) ([]string, error)
	GetClientData(ctx context.Context, clientID string) ([]models.TransitEvent, error)
	ClearEvents(ctx context.Context) error
	ClearAll(ctx context.Context) error

	Close() error
}

// SummarizeEvents folds a user's full event history into the three rolling
// aggregates. Window membership is evaluated against now (the wall clock at
// recomputation time), not against event insertion time, so a cached summary
// can go stale relative to true elapsed time until the next write
// invalidates it. That staleness window is accepted behavior.
func SummarizeEvents(ctx context.Context, calc *emissions.Calculator, events []models.TransitEvent, now int64) (models.FootprintSummary, error) {
	weekStart := now - WeekWindowSeconds
	monthStart := now - MonthWindowSeconds

	var summary models.FootprintSummary
	for _, ev := range events {
		kg, err := calc.CalculateEvent(ctx, ev)
		if err != nil {
			return models.FootprintSummary{}, err
		}
		summary.LifetimeKgCO2 += kg
		if ev.TS >= weekStart {
			summary.WeekKgCO2 += kg
		}
		if ev.TS >= monthStart {
			summary.MonthKgCO2 += kg
		}
	}
	return summary, nil
}
