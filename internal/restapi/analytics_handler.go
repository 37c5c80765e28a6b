package restapi

import (
	"net/http"

	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

// analyticsHandler compares the user's weekly footprint against the
// anonymized peer average. "Above" is a strict inequality: matching the
// average exactly does not count as above it.
func (api *RestAPI) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.ExtractIDFromParams(r, "id")

	summary, err := api.Store.Summarize(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	peerAvg, err := api.Store.GlobalAverageWeekly(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, http.StatusOK, models.AnalyticsResponse{
		UserID:           userID,
		ThisWeekKgCO2:    summary.WeekKgCO2,
		PeerWeekAvgKgCO2: peerAvg,
		AbovePeerAvg:     summary.WeekKgCO2 > peerAvg,
	})
}
