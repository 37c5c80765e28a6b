package restapi

import (
	"net/http"

	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

// weeklySuggestionThresholdKg is the weekly footprint above which the
// reduction suggestions are served instead of the encouragement text.
const weeklySuggestionThresholdKg = 20.0

// suggestionsHandler returns canned suggestion text selected solely by the
// strict weekly threshold.
func (api *RestAPI) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.ExtractIDFromParams(r, "id")

	summary, err := api.Store.Summarize(r.Context(), userID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	var suggestions []string
	if summary.WeekKgCO2 > weeklySuggestionThresholdKg {
		suggestions = []string{
			"Try switching short taxi rides to subway or bus.",
			"Batch trips to reduce total distance.",
		}
	} else {
		suggestions = []string{
			"Nice work! Consider biking or walking for short hops.",
		}
	}

	api.sendJSON(w, http.StatusOK, models.SuggestionsResponse{
		UserID:      userID,
		Suggestions: suggestions,
	})
}
