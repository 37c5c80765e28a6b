package restapi

import (
	"net/http"
	"strings"
	"time"

	"charizard.ecotrip.dev/internal/logging"
	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

// statusRecorder captures the response status for the audit log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLoggingMiddleware appends an APILogRecord to the store for every
// completed request and emits a structured log line.
func (api *RestAPI) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		durationMS := float64(time.Since(start)) / float64(time.Millisecond)
		record := models.APILogRecord{
			TS:         start.Unix(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			DurationMS: durationMS,
			ClientIP:   utils.ClientIP(r),
			UserID:     pathUserID(r.URL.Path),
		}

		if err := api.Store.AppendLog(r.Context(), record); err != nil {
			logging.LogError(api.Logger, "failed to append api log", err)
		}

		logging.LogHTTPRequest(api.Logger, r.Method, r.URL.Path, rec.status, durationMS)
	})
}

// pathUserID pulls the user segment out of /users/{id}/... paths; other
// paths log an empty user.
func pathUserID(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "users" && parts[1] != "register" {
		return parts[1]
	}
	return ""
}
