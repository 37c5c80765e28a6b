package restapi

import (
	"net/http"

	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

// footprintHandler returns the user's lifetime, trailing-7-day, and
// trailing-30-day totals. A user with no events gets all zeros.
func (api *RestAPI) footprintHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.ExtractIDFromParams(r, "id")

	summary, err := api.Store.Summarize(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, http.StatusOK, models.FootprintResponse{
		UserID:         userID,
		LifetimeKgCO2:  summary.LifetimeKgCO2,
		Last7DaysKgCO2: summary.WeekKgCO2,
		Last30DayKgCO2: summary.MonthKgCO2,
	})
}
