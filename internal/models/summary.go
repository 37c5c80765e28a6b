package models

// FootprintSummary is the derived, cached aggregation for one user.
// Invariant: Lifetime >= Month >= Week >= 0, because every per-event
// contribution is non-negative and the windows nest.
type FootprintSummary struct {
	LifetimeKgCO2 float64 `json:"lifetime_kg_co2"`
	WeekKgCO2     float64 `json:"week_kg_co2"`
	MonthKgCO2    float64 `json:"month_kg_co2"`
}
