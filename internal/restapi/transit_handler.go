package restapi

import (
	"encoding/json"
	"net/http"

	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

// transitHandler ingests one trip for the path user. Validation failures are
// surfaced as 400s carrying the validator's exact reason string.
func (api *RestAPI) transitHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.ExtractIDFromParams(r, "id")

	var input struct {
		Mode        string   `json:"mode"`
		DistanceKM  *float64 `json:"distance_km"`
		FuelType    string   `json:"fuel_type"`
		VehicleSize string   `json:"vehicle_size"`
		Occupancy   float64  `json:"occupancy"`
		TS          int64    `json:"ts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.badRequestResponse(w, r, "invalid_json")
		return
	}
	if input.Mode == "" || input.DistanceKM == nil {
		api.badRequestResponse(w, r, "missing_fields")
		return
	}

	ev, err := models.NewTransitEvent(userID, input.Mode, input.FuelType, input.VehicleSize, input.Occupancy, *input.DistanceKM, input.TS)
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	if err := api.Store.AddEvent(r.Context(), ev); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, http.StatusCreated, models.StatusResponse{Status: "ok"})
}
