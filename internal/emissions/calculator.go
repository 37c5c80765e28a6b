package emissions

import (
	"context"

	"charizard.ecotrip.dev/internal/models"
)

// Calculator converts a single trip into a kg CO2e amount.
type Calculator struct {
	resolver *Resolver
}

// NewCalculator creates a Calculator using the given resolver.
func NewCalculator(resolver *Resolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Calculate returns the kg CO2e for one trip.
//
// For private vehicles (car, taxi) the raw emissions are divided by
// occupancy: sharing a ride linearly divides the per-rider footprint. For
// everything else the published factor is already per passenger, so
// occupancy must NOT be applied a second time. Applying the division to
// public transit would silently under-count shared-vehicle emissions, so
// this split must be preserved exactly.
func (c *Calculator) Calculate(ctx context.Context, mode, fuelType, vehicleSize string, occupancy, distanceKM float64) (float64, error) {
	if distanceKM < 0 {
		return 0, models.ErrNegativeDistance
	}
	if occupancy < 1.0 {
		return 0, models.ErrOccupancyBelowMinimum
	}

	factor := c.resolver.Resolve(ctx, mode, fuelType, vehicleSize)
	totalKgCO2 := factor.KgCO2PerKM * distanceKM

	if mode == "car" || mode == "taxi" {
		totalKgCO2 /= occupancy
	}

	return totalKgCO2, nil
}

// CalculateEvent computes the contribution of a stored event.
func (c *Calculator) CalculateEvent(ctx context.Context, ev models.TransitEvent) (float64, error) {
	return c.Calculate(ctx, ev.Mode, ev.FuelType, ev.VehicleSize, ev.Occupancy, ev.DistanceKM)
}
