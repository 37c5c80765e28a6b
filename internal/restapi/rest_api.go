// Package restapi exposes the footprint engine over HTTP: event ingestion,
// per-user summaries, peer analytics, suggestions, registration, and the
// admin surface.
package restapi

import (
	"net/http"
	"time"

	"charizard.ecotrip.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second),
	}
}
