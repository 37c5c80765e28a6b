package emissions

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charizard.ecotrip.dev/internal/models"
)

// LoadDEFRA2024 returns the DEFRA 2024 factor set stamped with the current
// time, ready to bulk-upsert into a factor store. A production deployment
// could fetch and parse the official DEFRA publication instead; the bundled
// table carries the same values.
func LoadDEFRA2024() []models.EmissionFactor {
	now := time.Now().Unix()
	factors := DEFRA2024Factors()
	for i := range factors {
		factors[i].UpdatedAt = now
	}
	return factors
}

// LoadFromJSON parses a JSON array of factor objects. Required keys per
// object: mode, kg_co2_per_km. Optional: fuel_type, vehicle_size, source
// (defaults to "UNKNOWN"), updated_at.
func LoadFromJSON(data string) ([]models.EmissionFactor, error) {
	var items []struct {
		Mode        string   `json:"mode"`
		FuelType    string   `json:"fuel_type"`
		VehicleSize string   `json:"vehicle_size"`
		KgCO2PerKM  *float64 `json:"kg_co2_per_km"`
		Source      string   `json:"source"`
		UpdatedAt   int64    `json:"updated_at"`
	}

	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("parsing factor JSON: %w", err)
	}

	factors := make([]models.EmissionFactor, 0, len(items))
	for i, item := range items {
		if item.Mode == "" {
			return nil, fmt.Errorf("factor item %d: missing mode", i)
		}
		if item.KgCO2PerKM == nil {
			return nil, fmt.Errorf("factor item %d: missing kg_co2_per_km", i)
		}
		source := item.Source
		if source == "" {
			source = "UNKNOWN"
		}
		factors = append(factors, models.EmissionFactor{
			Mode:        item.Mode,
			FuelType:    item.FuelType,
			VehicleSize: item.VehicleSize,
			KgCO2PerKM:  *item.KgCO2PerKM,
			Source:      source,
			UpdatedAt:   item.UpdatedAt,
		})
	}
	return factors, nil
}

// LoadFromCSV parses factors from CSV with a header row and columns
// mode,fuel_type,vehicle_size,kg_co2_per_km,source. CSV input carries no
// timestamps, so UpdatedAt is left zero.
func LoadFromCSV(data string) ([]models.EmissionFactor, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing factor CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("factor CSV is empty")
	}

	// First record is the header.
	factors := make([]models.EmissionFactor, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2

		kgCO2PerKM, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing kg_co2_per_km at row %d: %w", rowNum, err)
		}

		factors = append(factors, models.EmissionFactor{
			Mode:        strings.TrimSpace(record[0]),
			FuelType:    strings.TrimSpace(record[1]),
			VehicleSize: strings.TrimSpace(record[2]),
			KgCO2PerKM:  kgCO2PerKM,
			Source:      strings.TrimSpace(record[4]),
		})
	}
	return factors, nil
}
