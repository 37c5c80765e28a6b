package restapi

import (
	"net/http"

	"charizard.ecotrip.dev/internal/models"
)

// badRequestResponse sends a 400 with the machine-readable reason string.
// Validation reasons are propagated verbatim so clients can match on them.
func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, reason string) {
	api.sendJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: reason})
}

// unauthorizedResponse sends a 401 for a missing or mismatched API key.
func (api *RestAPI) unauthorizedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
	api.sendJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
}
