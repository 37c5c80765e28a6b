package restapi

import (
	"net/http"

	"charizard.ecotrip.dev/internal/utils"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

// requireUserAuth wraps a per-user handler with X-API-Key validation against
// the path user. The key is checked against the stored hash; an unknown user
// is simply not a match.
func requireUserAuth(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := utils.ExtractIDFromParams(r, "id")
		if err := utils.ValidateUserID(userID); err != nil {
			api.badRequestResponse(w, r, err.Error())
			return
		}

		key := r.Header.Get("X-API-Key")
		if key == "" {
			api.unauthorizedResponse(w, r)
			return
		}

		ok, err := api.Store.CheckAPIKey(r.Context(), userID, key)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		if !ok {
			api.unauthorizedResponse(w, r)
			return
		}

		finalHandler(w, r)
	})
}

// requireAdmin wraps an admin handler with bearer-token validation against
// the configured admin key.
func requireAdmin(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !api.RequestHasValidAdminKey(r) {
			api.unauthorizedResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on the mux. Method-qualified patterns
// let the static /users/register route coexist with the /users/{id} subtree
// by precedence.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.Handle("GET /health", http.HandlerFunc(api.healthHandler))
	mux.Handle("POST /users/register", http.HandlerFunc(api.registerHandler))

	mux.Handle("POST /users/{id}/transit", requireUserAuth(api, api.transitHandler))
	mux.Handle("GET /users/{id}/lifetime-footprint", requireUserAuth(api, api.footprintHandler))
	mux.Handle("GET /users/{id}/analytics", requireUserAuth(api, api.analyticsHandler))
	mux.Handle("GET /users/{id}/suggestions", requireUserAuth(api, api.suggestionsHandler))

	mux.Handle("GET /admin/logs", requireAdmin(api, api.adminLogsHandler))
	mux.Handle("DELETE /admin/logs", requireAdmin(api, api.adminClearLogsHandler))
	mux.Handle("GET /admin/clients", requireAdmin(api, api.adminClientsHandler))
	mux.Handle("GET /admin/clients/{id}/data", requireAdmin(api, api.adminClientDataHandler))
	mux.Handle("GET /admin/clear-db-events", requireAdmin(api, api.adminClearEventsHandler))
	mux.Handle("GET /admin/clear-db", requireAdmin(api, api.adminClearAllHandler))
	mux.Handle("POST /admin/load-factors", requireAdmin(api, api.adminLoadFactorsHandler))
	mux.Handle("GET /admin/factors", requireAdmin(api, api.adminFactorsHandler))
}

// Router builds the full handler chain: request logging around rate limiting
// around gzip compression around the routed handlers.
func (api *RestAPI) Router() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = mux
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = api.requestLoggingMiddleware(handler)
	return handler
}
