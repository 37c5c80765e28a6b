package carbondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"charizard.ecotrip.dev/internal/models"
)

// StoreEmissionFactor upserts a factor by (mode, fuel_type, vehicle_size).
func (c *Client) StoreEmissionFactor(ctx context.Context, factor models.EmissionFactor) error {
	_, err := c.DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO emission_factors (mode, fuel_type, vehicle_size, kg_co2_per_km, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?);
	`, factor.Mode, factor.FuelType, factor.VehicleSize, factor.KgCO2PerKM, factor.Source, factor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting emission factor: %w", err)
	}

	// Summaries computed against the previous factor set are no longer valid.
	c.cache.Clear()
	return nil
}

// GetEmissionFactor returns the persisted factor for the key, or (nil, nil)
// when none is stored.
func (c *Client) GetEmissionFactor(ctx context.Context, mode, fuelType, vehicleSize string) (*models.EmissionFactor, error) {
	row := c.DB.QueryRowContext(ctx, `
		SELECT mode, fuel_type, vehicle_size, kg_co2_per_km, source, updated_at
		FROM emission_factors WHERE mode = ? AND fuel_type = ? AND vehicle_size = ?;
	`, mode, fuelType, vehicleSize)

	var factor models.EmissionFactor
	err := row.Scan(&factor.Mode, &factor.FuelType, &factor.VehicleSize, &factor.KgCO2PerKM, &factor.Source, &factor.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying emission factor: %w", err)
	}
	return &factor, nil
}

// GetAllEmissionFactors lists every persisted factor.
func (c *Client) GetAllEmissionFactors(ctx context.Context) ([]models.EmissionFactor, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT mode, fuel_type, vehicle_size, kg_co2_per_km, source, updated_at
		FROM emission_factors ORDER BY mode, fuel_type, vehicle_size;
	`)
	if err != nil {
		return nil, fmt.Errorf("querying emission factors: %w", err)
	}
	defer rows.Close()

	var factors []models.EmissionFactor
	for rows.Next() {
		var factor models.EmissionFactor
		if err := rows.Scan(&factor.Mode, &factor.FuelType, &factor.VehicleSize, &factor.KgCO2PerKM, &factor.Source, &factor.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning emission factor row: %w", err)
		}
		factors = append(factors, factor)
	}
	return factors, rows.Err()
}

// ClearEmissionFactors empties the persisted factor table; resolution falls
// back to the built-in tables afterwards.
func (c *Client) ClearEmissionFactors(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, `DELETE FROM emission_factors;`); err != nil {
		return fmt.Errorf("clearing emission factors: %w", err)
	}
	c.cache.Clear()
	return nil
}
