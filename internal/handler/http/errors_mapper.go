package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWrongConfirmation:   http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrUserInactive:        http.StatusUnauthorized,

	// 403 is reserved for the login path: correct credentials on a
	// soft-deleted account. Token-bearing paths reject an unusable owner
	// with ErrUserInactive (401) instead.
	service.ErrAccountDisabled:     http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	errInvalidJSON: http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,

	store.ErrUsernameAlreadyExists:   http.StatusConflict,
	store.ErrEmailAlreadyExists:      http.StatusConflict,
	store.ErrPreferencesAlreadyExist: http.StatusConflict,
	store.ErrUniqueViolation:         http.StatusConflict,
	store.ErrNoUserWasFound:          http.StatusNotFound,
	store.ErrNoPreferencesFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// categoryFromStatus maps an HTTP status code to the short machine-oriented
// error category carried in the response envelope.
func categoryFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}

// writeError maps err onto the HTTP status and JSON error envelope and
// writes them out. Validation failures additionally carry their per-field
// details; internal errors are masked with the generic status text so that
// storage internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)

	response := models.ErrorResponse{
		Error:   categoryFromStatus(status),
		Message: err.Error(),
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.Message = "validation failed"
		response.Details = validationErr.Details
	}

	if status == http.StatusInternalServerError {
		response.Message = http.StatusText(http.StatusInternalServerError)
	}

	if _, writeErr := utils.WriteJSON(w, response, status); writeErr != nil {
		log.Err(writeErr).Msg("writing error response failed")
	}
}
