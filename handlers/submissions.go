package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// ListSubmissions lists recent submission attempts
// @Summary      List submissions
// @Description  Most recent deposit submission attempts first, successful or not.
// @Tags         submissions
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries, default 50"
// @Success      200    {object}  Response{data=[]models.Submission}
// @Failure      400    {object}  Response{error=string}
// @Router       /submissions [get]
// @Security     BasicAuth
func ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	list, err := Journal.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HealthStatus reports service dependencies.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Breaker  string `json:"deposit_api_breaker"`
	Wizards  int    `json:"wizards"`
}

// Health reports service health
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response{data=HealthStatus}
// @Failure      503  {object}  Response{data=HealthStatus}
// @Router       /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	h := HealthStatus{Status: "ok", Database: "ok", Breaker: Deposits.BreakerState(), Wizards: Wizards.Len()}
	status := http.StatusOK
	if err := Journal.Ping(ctx); err != nil {
		h.Status = "degraded"
		h.Database = err.Error()
		status = http.StatusServiceUnavailable
	}
	if h.Breaker == "open" {
		h.Status = "degraded"
	}
	writeJSON(w, status, h)
}
