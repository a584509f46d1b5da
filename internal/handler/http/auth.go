package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration ended with error")
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		Message: "user registered successfully",
		User:    registeredUser.Public(),
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	foundUser, tokens, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user login ended with error")
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		Success:      true,
		Message:      "login successful",
		AccessToken:  tokens.AccessToken.SignedString,
		RefreshToken: tokens.RefreshToken.SignedString,
		User:         foundUser.Public(),
		ExpiresIn:    tokens.AccessToken.ExpiresIn(),
		RememberMe:   req.RememberMe,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	foundUser, accessToken, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Err(err).Msg("token refresh ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RefreshResponse{
		Success:     true,
		Message:     "token refreshed",
		AccessToken: accessToken.SignedString,
		User:        foundUser.Public(),
	}, http.StatusOK)
}

// logout revokes the session behind the presented access token. It always
// answers with success: the client discards its token regardless of whether
// a ledger record was still there to revoke.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	accessToken, ok := utils.GetAccessTokenFromContext(ctx)
	if !ok {
		log.Error().Msg("no access token in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	_ = h.services.AuthService.Logout(ctx, userID, accessToken)

	utils.WriteJSON(w, models.MessageResponse{
		Success: true,
		Message: "logged out successfully",
	}, http.StatusOK)
}

// verify confirms that the presented access token is valid and returns its
// owner. The heavy lifting already happened in the auth middleware; this
// handler re-reads the account so the payload matches /api/auth/me.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	currentUser, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("current user lookup ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		Message: "token is valid",
		User:    currentUser.Public(),
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	currentUser, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("current user lookup ended with error")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		User:    currentUser.Public(),
	}, http.StatusOK)
}
