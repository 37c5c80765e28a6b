package models

// EmissionFactor is one factor-table row: a well-to-wheel per-passenger-km
// CO2e rate keyed by (mode, fuel_type, vehicle_size). FuelType and
// VehicleSize are empty for modes without sub-classification (bus, subway,
// train, bike, walk).
type EmissionFactor struct {
	Mode        string  `json:"mode"`
	FuelType    string  `json:"fuel_type"`
	VehicleSize string  `json:"vehicle_size"`
	KgCO2PerKM  float64 `json:"kg_co2_per_km"`
	Source      string  `json:"source"`
	UpdatedAt   int64   `json:"updated_at"`
}

// Key returns the composite lookup key for the factor table. Factors upsert
// by this key, so storing a factor with an existing key replaces the prior
// entry rather than duplicating it.
func (f EmissionFactor) Key() string {
	return FactorKey(f.Mode, f.FuelType, f.VehicleSize)
}

// FactorKey builds the composite key used by factor stores and caches.
func FactorKey(mode, fuelType, vehicleSize string) string {
	return mode + "|" + fuelType + "|" + vehicleSize
}
