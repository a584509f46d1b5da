package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
)

type preferencesRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPreferencesRepository constructs a [PreferencesRepository] backed by
// the provided database connection and logger.
func NewPreferencesRepository(db *DB, logger *logger.Logger) PreferencesRepository {
	logger.Debug().Msg("creating preferences repository")
	return &preferencesRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreatePreferences returns the user's preferences row, inserting the
// defaults first if none exists yet. Registration already creates the row,
// so the insert path only fires for accounts predating that behaviour.
//
// Two concurrent callers may both miss and both insert; the loser of that
// race hits the user_id unique constraint and falls back to re-reading the
// winner's row.
func (r *preferencesRepository) GetOrCreatePreferences(ctx context.Context, userID int64) (models.UserPreferences, error) {
	log := logger.FromContext(ctx)

	prefs, err := r.findByUserID(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, ErrNoPreferencesFound) {
		log.Err(err).Str("func", "*preferencesRepository.GetOrCreatePreferences").Int64("user_id", userID).Msg("error: lookup failed")
		return models.UserPreferences{}, err
	}

	row := r.db.QueryRowContext(ctx, createDefaultPreferences, userID)
	err = row.Scan(&prefs.PreferencesID, &prefs.UserID, &prefs.Theme,
		&prefs.NotificationsEnabled, &prefs.RememberMe, &prefs.UpdatedAt)
	if err != nil {
		if uniqueErr := classifyUniqueViolation(err); errors.Is(uniqueErr, ErrPreferencesAlreadyExist) {
			// lost the race — another request created the row first
			return r.findByUserID(ctx, userID)
		}
		log.Err(err).Str("func", "*preferencesRepository.GetOrCreatePreferences").Int64("user_id", userID).Msg("error: insert failed")
		return models.UserPreferences{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return prefs, nil
}

// UpdatePreferences applies the non-nil fields of update to the user's
// preferences row and returns the updated row. A missing row is created
// with defaults first, so the update always has something to act on.
func (r *preferencesRepository) UpdatePreferences(ctx context.Context, userID int64, update models.PreferencesUpdate) (models.UserPreferences, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return r.GetOrCreatePreferences(ctx, userID)
	}

	query, args, err := buildUpdatePreferencesQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*preferencesRepository.UpdatePreferences").Msg("failed to build update query")
		return models.UserPreferences{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var prefs models.UserPreferences
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&prefs.PreferencesID, &prefs.UserID, &prefs.Theme,
		&prefs.NotificationsEnabled, &prefs.RememberMe, &prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, createErr := r.GetOrCreatePreferences(ctx, userID); createErr != nil {
				return models.UserPreferences{}, createErr
			}
			row = r.db.QueryRowContext(ctx, query, args...)
			err = row.Scan(&prefs.PreferencesID, &prefs.UserID, &prefs.Theme,
				&prefs.NotificationsEnabled, &prefs.RememberMe, &prefs.UpdatedAt)
			if err == nil {
				return prefs, nil
			}
		}
		log.Err(err).Str("func", "*preferencesRepository.UpdatePreferences").Int64("user_id", userID).Msg("error: update failed")
		return models.UserPreferences{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return prefs, nil
}

func (r *preferencesRepository) findByUserID(ctx context.Context, userID int64) (models.UserPreferences, error) {
	var prefs models.UserPreferences

	row := r.db.QueryRowContext(ctx, findPreferencesByUserID, userID)
	err := row.Scan(&prefs.PreferencesID, &prefs.UserID, &prefs.Theme,
		&prefs.NotificationsEnabled, &prefs.RememberMe, &prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserPreferences{}, ErrNoPreferencesFound
		}
		return models.UserPreferences{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return prefs, nil
}
