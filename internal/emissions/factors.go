// Package emissions implements the CO2e calculation engine: static factor
// tables, the three-tier factor resolver, and the per-event calculator.
package emissions

import "charizard.ecotrip.dev/internal/models"

// Provenance tags for factor table rows.
const (
	SourceBasicDefault = "BASIC-DEFAULT"
	SourceDEFRA2024    = "DEFRA-2024"
	SourceFallback     = "FALLBACK"
)

// factorRow keeps the built-in tables data-driven: the tables below are plain
// literal rows, separate from any resolution logic.
type factorRow struct {
	mode        string
	fuelType    string
	vehicleSize string
	kgCO2PerKM  float64
}

// basicDefaultRows are simplified, conservative estimates used to provide a
// working service before detailed data is loaded. All car sizes share one
// factor per fuel type.
var basicDefaultRows = []factorRow{
	{"car", "petrol", "small", 0.200},
	{"car", "petrol", "medium", 0.200},
	{"car", "petrol", "large", 0.200},
	{"car", "diesel", "small", 0.180},
	{"car", "diesel", "medium", 0.180},
	{"car", "diesel", "large", 0.180},
	{"car", "electric", "small", 0.100},
	{"car", "electric", "medium", 0.100},
	{"car", "electric", "large", 0.100},
	{"car", "hybrid", "small", 0.150},
	{"car", "hybrid", "medium", 0.150},
	{"car", "hybrid", "large", 0.150},

	{"taxi", "petrol", "medium", 0.200},
	{"taxi", "diesel", "medium", 0.180},
	{"taxi", "electric", "medium", 0.100},
	{"taxi", "hybrid", "medium", 0.150},

	{"bus", "", "", 0.100},
	{"subway", "", "", 0.050},
	{"train", "", "", 0.070},

	{"bike", "", "", 0.0},
	{"walk", "", "", 0.0},
}

// defra2024Rows are the DEFRA 2024 UK Government greenhouse-gas conversion
// factors, in kg CO2e per passenger-km, well-to-wheel (including fuel
// production). Public-transit rows are already averaged per passenger.
// Source: https://www.gov.uk/guidance/greenhouse-gas-reporting-conversion-factors-2024
var defra2024Rows = []factorRow{
	{"car", "petrol", "small", 0.167},
	{"car", "petrol", "medium", 0.203},
	{"car", "petrol", "large", 0.291},
	{"car", "diesel", "small", 0.142},
	{"car", "diesel", "medium", 0.168},
	{"car", "diesel", "large", 0.241},
	{"car", "electric", "small", 0.074},
	{"car", "electric", "medium", 0.088},
	{"car", "electric", "large", 0.115},
	{"car", "hybrid", "small", 0.132},
	{"car", "hybrid", "medium", 0.155},
	{"car", "hybrid", "large", 0.210},

	// Taxis use the same rates as cars; occupancy adjustment happens at
	// calculation time.
	{"taxi", "petrol", "medium", 0.203},
	{"taxi", "diesel", "medium", 0.168},
	{"taxi", "electric", "medium", 0.088},
	{"taxi", "hybrid", "medium", 0.155},

	{"bus", "", "", 0.073},
	{"subway", "", "", 0.041},
	{"train", "", "", 0.051},

	{"bike", "", "", 0.0},
	{"walk", "", "", 0.0},
}

func buildFactors(rows []factorRow, source string) []models.EmissionFactor {
	factors := make([]models.EmissionFactor, 0, len(rows))
	for _, row := range rows {
		factors = append(factors, models.EmissionFactor{
			Mode:        row.mode,
			FuelType:    row.fuelType,
			VehicleSize: row.vehicleSize,
			KgCO2PerKM:  row.kgCO2PerKM,
			Source:      source,
		})
	}
	return factors
}

// BasicDefaults returns the conservative built-in factor table.
func BasicDefaults() []models.EmissionFactor {
	return buildFactors(basicDefaultRows, SourceBasicDefault)
}

// DEFRA2024Factors returns the detailed DEFRA 2024 factor table.
func DEFRA2024Factors() []models.EmissionFactor {
	return buildFactors(defra2024Rows, SourceDEFRA2024)
}

// DefaultFactor looks up the DEFRA 2024 table by exact key match and returns
// nil when the tuple has no built-in row.
func DefaultFactor(mode, fuelType, vehicleSize string) *models.EmissionFactor {
	for _, row := range defra2024Rows {
		if row.mode == mode && row.fuelType == fuelType && row.vehicleSize == vehicleSize {
			f := models.EmissionFactor{
				Mode:        row.mode,
				FuelType:    row.fuelType,
				VehicleSize: row.vehicleSize,
				KgCO2PerKM:  row.kgCO2PerKM,
				Source:      SourceDEFRA2024,
			}
			return &f
		}
	}
	return nil
}
