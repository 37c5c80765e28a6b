package restapi

import (
	"encoding/json"
	"net/http"
)

// sendJSON writes v as the JSON response body with the given status.
func (api *RestAPI) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.Logger.Error("failed to encode response", "error", err)
	}
}
