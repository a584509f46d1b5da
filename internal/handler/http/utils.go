package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	health := h.services.AppInfoService.Health(r.Context())

	status := http.StatusOK
	if !health.Success {
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, health, status)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.AppInfo(r.Context()), http.StatusOK)
}

func (h *Handler) serviceStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stats, err := h.services.AppInfoService.ServiceStats(ctx)
	if err != nil {
		log.Err(err).Msg("service stats ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ServiceStatsResponse{
		Success: true,
		Stats:   stats,
	}, http.StatusOK)
}

// cleanup removes expired session rows. An optional JSON body narrows the
// sweep to one user:
//
//	{"user_id": 42}
//
// An empty body cleans the whole ledger.
func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var scope struct {
		UserID *int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&scope); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	removed, err := h.services.AppInfoService.CleanupSessions(ctx, scope.UserID)
	if err != nil {
		log.Err(err).Msg("session cleanup ended with error")
		writeError(w, r, err)
		return
	}

	response := models.CleanupResponse{
		Success: true,
		Message: "cleanup complete",
	}
	response.Cleaned.ExpiredSessions = removed

	utils.WriteJSON(w, response, http.StatusOK)
}
