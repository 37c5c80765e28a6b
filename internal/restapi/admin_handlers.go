package restapi

import (
	"io"
	"net/http"
	"strings"

	"charizard.ecotrip.dev/internal/emissions"
	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/utils"
)

const adminLogLimit = 1000

// adminLogsHandler lists the most recent request log records.
func (api *RestAPI) adminLogsHandler(w http.ResponseWriter, r *http.Request) {
	logs, err := api.Store.GetLogs(r.Context(), adminLogLimit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if logs == nil {
		logs = []models.APILogRecord{}
	}
	api.sendJSON(w, http.StatusOK, logs)
}

func (api *RestAPI) adminClearLogsHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.ClearLogs(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// adminClientsHandler enumerates every user ID with recorded events.
func (api *RestAPI) adminClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := api.Store.GetClients(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if clients == nil {
		clients = []string{}
	}
	api.sendJSON(w, http.StatusOK, clients)
}

// adminClientDataHandler returns a single client's raw events.
func (api *RestAPI) adminClientDataHandler(w http.ResponseWriter, r *http.Request) {
	clientID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateUserID(clientID); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	events, err := api.Store.GetClientData(r.Context(), clientID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if events == nil {
		events = []models.TransitEvent{}
	}
	api.sendJSON(w, http.StatusOK, events)
}

func (api *RestAPI) adminClearEventsHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.ClearEvents(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

func (api *RestAPI) adminClearAllHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.ClearAll(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// adminLoadFactorsHandler bulk-upserts emission factors into the persisted
// store. With no body it loads the bundled DEFRA 2024 table; otherwise the
// body is parsed as JSON or, with a text/csv content type, as CSV.
func (api *RestAPI) adminLoadFactorsHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	var factors []models.EmissionFactor
	switch {
	case len(strings.TrimSpace(string(body))) == 0:
		factors = emissions.LoadDEFRA2024()
	case strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv"):
		factors, err = emissions.LoadFromCSV(string(body))
	default:
		factors, err = emissions.LoadFromJSON(string(body))
	}
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	for _, factor := range factors {
		if err := api.Store.StoreEmissionFactor(r.Context(), factor); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
	}

	api.sendJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		Loaded int    `json:"loaded"`
	}{Status: "ok", Loaded: len(factors)})
}

// adminFactorsHandler lists the persisted factor table.
func (api *RestAPI) adminFactorsHandler(w http.ResponseWriter, r *http.Request) {
	factors, err := api.Store.GetAllEmissionFactors(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if factors == nil {
		factors = []models.EmissionFactor{}
	}
	api.sendJSON(w, http.StatusOK, factors)
}
