package carbondb

import (
	"context"
	"fmt"

	"charizard.ecotrip.dev/internal/models"
)

// AddEvent appends a validated event and invalidates the user's cached
// summary.
func (c *Client) AddEvent(ctx context.Context, ev models.TransitEvent) error {
	_, err := c.DB.ExecContext(ctx, `
		INSERT INTO events (user_id, mode, fuel_type, vehicle_size, occupancy, distance_km, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`, ev.UserID, ev.Mode, ev.FuelType, ev.VehicleSize, ev.Occupancy, ev.DistanceKM, ev.TS)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	c.cache.Invalidate(ev.UserID)
	return nil
}

// GetEvents returns the user's events in insertion order, empty for an
// unknown user.
func (c *Client) GetEvents(ctx context.Context, userID string) ([]models.TransitEvent, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT user_id, mode, fuel_type, vehicle_size, occupancy, distance_km, ts
		FROM events WHERE user_id = ? ORDER BY id;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetClients returns the distinct user IDs that have recorded events.
func (c *Client) GetClients(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT DISTINCT user_id FROM events ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var clients []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, userID)
	}
	return clients, rows.Err()
}

// GetClientData returns a client's raw events for the admin data endpoint.
func (c *Client) GetClientData(ctx context.Context, clientID string) ([]models.TransitEvent, error) {
	return c.GetEvents(ctx, clientID)
}

// ClearEvents deletes every event and drops all cached summaries.
func (c *Client) ClearEvents(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, `DELETE FROM events;`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	c.cache.Clear()
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner) ([]models.TransitEvent, error) {
	var events []models.TransitEvent
	for rows.Next() {
		var ev models.TransitEvent
		if err := rows.Scan(&ev.UserID, &ev.Mode, &ev.FuelType, &ev.VehicleSize, &ev.Occupancy, &ev.DistanceKM, &ev.TS); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
