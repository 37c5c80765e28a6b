package emissions

import (
	"context"

	"charizard.ecotrip.dev/internal/models"
)

// FactorSource is the persisted factor lookup a Resolver consults first.
// Implementations return (nil, nil) when no factor is stored for the key.
type FactorSource interface {
	GetEmissionFactor(ctx context.Context, mode, fuelType, vehicleSize string) (*models.EmissionFactor, error)
}

// Resolver resolves a (mode, fuel_type, vehicle_size) tuple to an emission
// factor. Resolution order: persisted store, then the built-in DEFRA 2024
// table, then a coarse per-mode fallback. A miss is never an error: the
// fallback always produces a usable factor, so the calculator never fails
// because factor data is missing. Validation of the mode itself happens
// earlier, at event construction.
type Resolver struct {
	source FactorSource
}

// NewResolver creates a Resolver backed by the given persisted factor source.
// A nil source skips the first tier, which is what the service runs with
// until factors are explicitly loaded.
func NewResolver(source FactorSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the applicable factor for the tuple. A lookup error from
// the persisted source degrades to the built-in tiers rather than failing.
func (r *Resolver) Resolve(ctx context.Context, mode, fuelType, vehicleSize string) models.EmissionFactor {
	if r.source != nil {
		if factor, err := r.source.GetEmissionFactor(ctx, mode, fuelType, vehicleSize); err == nil && factor != nil {
			return *factor
		}
	}

	if factor := DefaultFactor(mode, fuelType, vehicleSize); factor != nil {
		return *factor
	}

	return fallbackFactor(mode, fuelType, vehicleSize)
}

// fallbackFactor is the coarse tier keyed only on mode. Unknown modes get a
// generic conservative estimate.
func fallbackFactor(mode, fuelType, vehicleSize string) models.EmissionFactor {
	factor := models.EmissionFactor{Mode: mode, Source: SourceFallback}

	switch mode {
	case "car", "taxi":
		factor.FuelType = fuelType
		factor.VehicleSize = vehicleSize
		factor.KgCO2PerKM = 0.18
	case "bus":
		factor.KgCO2PerKM = 0.073
	case "subway", "train", "underground", "rail":
		factor.KgCO2PerKM = 0.041
	case "bike", "walk":
		factor.KgCO2PerKM = 0.0
	default:
		factor.KgCO2PerKM = 0.1
	}

	return factor
}
