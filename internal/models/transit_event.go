package models

import "time"

// AllowedTransitModes is the fixed set of modes accepted at event construction.
var AllowedTransitModes = []string{"taxi", "car", "bus", "subway", "train", "bike", "walk"}

// TransitEvent is one recorded trip for a user. Events are immutable after
// construction and are only ever created through NewTransitEvent, which
// enforces the validation invariants.
type TransitEvent struct {
	UserID      string  `json:"user_id"`
	Mode        string  `json:"mode"`
	FuelType    string  `json:"fuel_type,omitempty"`
	VehicleSize string  `json:"vehicle_size,omitempty"`
	Occupancy   float64 `json:"occupancy"`
	DistanceKM  float64 `json:"distance_km"`
	TS          int64   `json:"ts"`
}

// NewTransitEvent validates the inputs and fills defaults: occupancy 0 means
// "not supplied" and becomes 1.0, ts 0 becomes the current server time.
// FuelType and VehicleSize are only meaningful for car and taxi trips and are
// stored as given.
func NewTransitEvent(userID, mode, fuelType, vehicleSize string, occupancy, distanceKM float64, ts int64) (TransitEvent, error) {
	if userID == "" {
		return TransitEvent{}, ErrEmptyUserID
	}
	if !IsAllowedTransitMode(mode) {
		return TransitEvent{}, ErrInvalidMode
	}
	if distanceKM < 0 {
		return TransitEvent{}, ErrNegativeDistance
	}
	if occupancy == 0 {
		occupancy = 1.0
	}
	if occupancy < 1.0 {
		return TransitEvent{}, ErrOccupancyBelowMinimum
	}
	if ts == 0 {
		ts = time.Now().Unix()
	}

	return TransitEvent{
		UserID:      userID,
		Mode:        mode,
		FuelType:    fuelType,
		VehicleSize: vehicleSize,
		Occupancy:   occupancy,
		DistanceKM:  distanceKM,
		TS:          ts,
	}, nil
}

// IsAllowedTransitMode reports whether mode is in the fixed enumeration.
func IsAllowedTransitMode(mode string) bool {
	for _, m := range AllowedTransitModes {
		if m == mode {
			return true
		}
	}
	return false
}
