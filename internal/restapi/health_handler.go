package restapi

import (
	"net/http"
	"time"

	"charizard.ecotrip.dev/internal/models"
)

// healthHandler reports liveness. No auth.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, http.StatusOK, models.HealthResponse{
		OK:      true,
		Service: "charizard",
		Time:    time.Now().Unix(),
	})
}
