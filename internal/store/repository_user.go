package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, profile updates, and soft deletion
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and its default preferences row in
// a single transaction, returning the fully populated [models.User] with
// server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// A partially created account (user without preferences) is a correctness
// bug, not a degraded state, hence the shared transaction scope.
//
// Error handling:
//   - unique_violation on username/email → [ErrUsernameAlreadyExists] /
//     [ErrEmailAlreadyExists], including races lost at commit time.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := r.db.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		row := tx.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash)
		if err := row.Scan(&created.UserID, &created.Username, &created.Email, &created.PasswordHash,
			&created.IsActive, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return err
		}

		// default preferences row, same transaction
		var prefs models.UserPreferences
		row = tx.QueryRowContext(ctx, createDefaultPreferences, created.UserID)
		return row.Scan(&prefs.PreferencesID, &prefs.UserID, &prefs.Theme,
			&prefs.NotificationsEnabled, &prefs.RememberMe, &prefs.UpdatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error: user creation failed")

		if conflictErr := classifyUniqueViolation(err); conflictErr != nil {
			return models.User{}, conflictErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByID retrieves a user record by its primary key.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.Email, &foundUser.PasswordHash,
		&foundUser.IsActive, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// FindUserByIdentifier retrieves a user whose username OR email equals the
// given identifier. The login form accepts either form, so the lookup does
// not need to know which one it received.
//
// Error handling mirrors [userRepository.FindUserByID].
func (r *userRepository) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByIdentifier, identifier)

	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.Email, &foundUser.PasswordHash,
		&foundUser.IsActive, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByIdentifier").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile applies the non-nil fields of update to the user row and
// returns the canonical post-update record.
//
// The UPDATE statement is built dynamically so that an omitted field is
// genuinely untouched rather than overwritten with its zero value.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - unique_violation → field-specific conflict sentinel.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("failed to build update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&updated.UserID, &updated.Username, &updated.Email, &updated.PasswordHash,
		&updated.IsActive, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		if conflictErr := classifyUniqueViolation(err); conflictErr != nil {
			return models.User{}, conflictErr
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error: profile update failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeactivateUser soft-deletes the account: every session row is marked
// inactive and the user's is_active flag flips to false, in one
// transaction. The row itself is never physically removed.
func (r *userRepository) DeactivateUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	err := r.db.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		if _, err := tx.ExecContext(ctx, revokeAllSessions, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		result, err := tx.ExecContext(ctx, deactivateUser, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNoUserWasFound
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeactivateUser").Int64("user_id", userID).Msg("error: account deactivation failed")
		return err
	}

	return nil
}

// CountUsers aggregates service-wide account figures (total, active,
// created today, created this week) for the public stats endpoint.
func (r *userRepository) CountUsers(ctx context.Context) (models.ServiceStats, error) {
	log := logger.FromContext(ctx)

	var stats models.ServiceStats
	row := r.db.QueryRowContext(ctx, countUsers)
	if err := row.Scan(&stats.Users.Total, &stats.Users.Active,
		&stats.Users.CreatedToday, &stats.Users.CreatedThisWeek); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error: scanning error")
		return models.ServiceStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	stats.Users.Inactive = stats.Users.Total - stats.Users.Active

	return stats, nil
}
