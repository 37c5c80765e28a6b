package restapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"charizard.ecotrip.dev/internal/models"
)

// registerHandler creates a new client: a fresh user ID plus an API key. The
// key is returned exactly once and only its hash is persisted.
func (api *RestAPI) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AppName *string `json:"app_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.badRequestResponse(w, r, "invalid_json")
		return
	}
	if input.AppName == nil {
		api.badRequestResponse(w, r, "missing_app_name")
		return
	}

	userID := "u_" + randomHex()[:8]
	apiKey := randomHex()

	if err := api.Store.SetAPIKey(r.Context(), userID, apiKey, *input.AppName); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, http.StatusCreated, models.RegisterResponse{
		UserID:  userID,
		APIKey:  apiKey,
		AppName: *input.AppName,
	})
}

// randomHex returns 32 hex characters of randomness.
func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
