package models

// Response bodies for the public API. Field names match the wire format the
// service has always produced, so they are part of the compatibility surface.

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    int64  `json:"time"`
}

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	APIKey  string `json:"api_key"`
	AppName string `json:"app_name"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type FootprintResponse struct {
	UserID         string  `json:"user_id"`
	LifetimeKgCO2  float64 `json:"lifetime_kg_co2"`
	Last7DaysKgCO2 float64 `json:"last_7d_kg_co2"`
	Last30DayKgCO2 float64 `json:"last_30d_kg_co2"`
}

type AnalyticsResponse struct {
	UserID           string  `json:"user_id"`
	ThisWeekKgCO2    float64 `json:"this_week_kg_co2"`
	PeerWeekAvgKgCO2 float64 `json:"peer_week_avg_kg_co2"`
	AbovePeerAvg     bool    `json:"above_peer_avg"`
}

type SuggestionsResponse struct {
	UserID      string   `json:"user_id"`
	Suggestions []string `json:"suggestions"`
}
