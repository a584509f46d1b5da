package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	profile, err := h.services.UserService.Profile(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile lookup ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProfileResponse{
		Success: true,
		User:    profile,
	}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	updatedUser, err := h.services.UserService.UpdateProfile(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		Message: "profile updated successfully",
		User:    updatedUser.Public(),
	}, http.StatusOK)
}

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	preferences, err := h.services.UserService.Preferences(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("preferences lookup ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PreferencesResponse{
		Success:     true,
		Preferences: preferences,
	}, http.StatusOK)
}

func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var update models.PreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	preferences, err := h.services.UserService.UpdatePreferences(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("preferences update ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PreferencesResponse{
		Success:     true,
		Message:     "preferences updated successfully",
		Preferences: preferences,
	}, http.StatusOK)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	stats, err := h.services.UserService.Stats(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("stats lookup ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatsResponse{
		Success: true,
		Stats:   stats,
	}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var req models.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	if err := h.services.UserService.DeleteAccount(ctx, userID, req); err != nil {
		log.Err(err).Int64("id", userID).Msg("account deletion ended with error")
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", userID).Msg("account soft-deleted")

	utils.WriteJSON(w, models.MessageResponse{
		Success: true,
		Message: "account deleted successfully",
	}, http.StatusOK)
}

func (h *Handler) getSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	sessions, err := h.services.UserService.Sessions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session listing ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SessionsResponse{
		Success:  true,
		Sessions: sessions,
		Count:    len(sessions),
	}, http.StatusOK)
}

func (h *Handler) revokeAllSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	revoked, err := h.services.UserService.RevokeAllSessions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session revocation ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RevokeAllResponse{
		Success: true,
		Message: "all sessions revoked",
		Revoked: revoked,
	}, http.StatusOK)
}
