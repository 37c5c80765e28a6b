package models

// APILogRecord is one completed-request audit entry, appended by the request
// logging middleware and read back by the admin log endpoints.
type APILogRecord struct {
	TS         int64   `json:"ts"`
	Method     string  `json:"method"`
	Path       string  `json:"path"`
	Status     int     `json:"status"`
	DurationMS float64 `json:"duration_ms"`
	ClientIP   string  `json:"client_ip"`
	UserID     string  `json:"user_id"`
}
