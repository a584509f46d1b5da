package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository        store.UserRepository
	sessionRepository     store.SessionRepository
	preferencesRepository store.PreferencesRepository

	logger *logger.Logger
}

// NewUserService constructs a UserService on top of the three repositories.
func NewUserService(userRepository store.UserRepository, sessionRepository store.SessionRepository, preferencesRepository store.PreferencesRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		preferencesRepository: preferencesRepository,
		logger:                logger,
	}
}

// Profile aggregates the public user record, preferences, and session
// statistics into the single view served by the profile endpoint.
func (u *userService) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	foundUser, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.Profile{}, fmt.Errorf("user search by id failed: %w", err)
	}

	preferences, err := u.preferencesRepository.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("preferences lookup failed")
		return models.Profile{}, fmt.Errorf("preferences lookup failed: %w", err)
	}

	stats, err := u.sessionStats(ctx, foundUser)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session stats lookup failed")
		return models.Profile{}, fmt.Errorf("session stats lookup failed: %w", err)
	}

	return models.Profile{
		PublicUser:  foundUser.Public(),
		Preferences: preferences,
		Stats:       stats,
	}, nil
}

// UpdateProfile applies a partial username/email change after validation.
// Uniqueness collisions surface as the store's field-specific conflict
// sentinels.
func (u *userService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateProfileUpdate(update); err != nil {
		log.Error().Int64("id", userID).Msg("invalid profile update provided")
		return models.User{}, err
	}

	updatedUser, err := u.userRepository.UpdateProfile(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updatedUser, nil
}

// Preferences returns the user's preferences, creating the default row
// when none exists yet.
func (u *userService) Preferences(ctx context.Context, userID int64) (models.UserPreferences, error) {
	log := logger.FromContext(ctx)

	preferences, err := u.preferencesRepository.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("preferences lookup failed")
		return models.UserPreferences{}, fmt.Errorf("preferences lookup failed: %w", err)
	}

	return preferences, nil
}

// UpdatePreferences applies a partial preferences change after validation.
func (u *userService) UpdatePreferences(ctx context.Context, userID int64, update models.PreferencesUpdate) (models.UserPreferences, error) {
	log := logger.FromContext(ctx)

	if err := validatePreferencesUpdate(update); err != nil {
		log.Error().Int64("id", userID).Msg("invalid preferences update provided")
		return models.UserPreferences{}, err
	}

	preferences, err := u.preferencesRepository.UpdatePreferences(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("preferences update ended with error")
		return models.UserPreferences{}, fmt.Errorf("preferences update ended with error: %w", err)
	}

	return preferences, nil
}

// Stats returns the user's session statistics with the account age filled
// in from the account's creation time.
func (u *userService) Stats(ctx context.Context, userID int64) (models.SessionStats, error) {
	log := logger.FromContext(ctx)

	foundUser, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.SessionStats{}, fmt.Errorf("user search by id failed: %w", err)
	}

	stats, err := u.sessionStats(ctx, foundUser)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session stats lookup failed")
		return models.SessionStats{}, fmt.Errorf("session stats lookup failed: %w", err)
	}

	return stats, nil
}

// DeleteAccount soft-deletes the account: it verifies the current password
// and the literal confirmation phrase, then revokes every session and flips
// the active flag in one transaction. The row itself is kept.
//
// Returns:
//   - a *ValidationError when password or confirmation is missing.
//   - ErrWrongConfirmation when the confirmation phrase does not match.
//   - ErrWrongPassword when the password check fails.
func (u *userService) DeleteAccount(ctx context.Context, userID int64, req models.DeleteAccountRequest) error {
	log := logger.FromContext(ctx)

	if err := validateDeleteAccountRequest(req); err != nil {
		log.Error().Int64("id", userID).Msg("invalid account deletion request")
		return err
	}
	if req.Confirmation != deleteConfirmationPhrase {
		log.Error().Int64("id", userID).Msg("account deletion confirmation mismatch")
		return ErrWrongConfirmation
	}

	foundUser, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, req.Password) {
		log.Error().Int64("id", userID).Msg("account deletion with wrong password")
		return ErrWrongPassword
	}

	if err := u.userRepository.DeactivateUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("account deactivation ended with error")
		return fmt.Errorf("account deactivation ended with error: %w", err)
	}

	return nil
}

// Sessions lists the user's active, unexpired sessions ordered by creation
// time.
func (u *userService) Sessions(ctx context.Context, userID int64) ([]models.UserSession, error) {
	log := logger.FromContext(ctx)

	sessions, err := u.sessionRepository.ActiveSessions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session listing failed")
		return nil, fmt.Errorf("session listing failed: %w", err)
	}

	return sessions, nil
}

// RevokeAllSessions logs the user out everywhere and returns the number of
// sessions revoked. Revoking when no sessions exist is a no-op, not an
// error.
func (u *userService) RevokeAllSessions(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	revoked, err := u.sessionRepository.RevokeAllSessions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session revocation failed")
		return 0, fmt.Errorf("session revocation failed: %w", err)
	}

	return revoked, nil
}

func (u *userService) sessionStats(ctx context.Context, user models.User) (models.SessionStats, error) {
	stats, err := u.sessionRepository.SessionStats(ctx, user.UserID)
	if err != nil {
		return models.SessionStats{}, err
	}

	stats.AccountAgeDays = int64(time.Since(user.CreatedAt).Hours() / 24)

	return stats, nil
}
