package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-auth-service/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, username, email, password_hash, is_active, created_at, updated_at;`

	findUserByID = `SELECT id, username, email, password_hash, is_active, created_at, updated_at
    FROM users
    WHERE id = $1;`

	findUserByIdentifier = `SELECT id, username, email, password_hash, is_active, created_at, updated_at
    FROM users
    WHERE username = $1 OR email = $1;`

	deactivateUser = `UPDATE users
    SET is_active = FALSE, updated_at = NOW()
    WHERE id = $1;`

	createDefaultPreferences = `INSERT INTO user_preferences (user_id)
    VALUES ($1)
    RETURNING id, user_id, theme, notifications_enabled, remember_me, updated_at;`

	findPreferencesByUserID = `SELECT id, user_id, theme, notifications_enabled, remember_me, updated_at
    FROM user_preferences
    WHERE user_id = $1;`

	upsertRememberMe = `INSERT INTO user_preferences (user_id, remember_me)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE SET remember_me = EXCLUDED.remember_me, updated_at = NOW();`

	createSession = `INSERT INTO user_sessions (user_id, token_hash, expires_at)
    VALUES ($1, $2, $3)
    RETURNING id, user_id, token_hash, expires_at, created_at, is_active;`

	deleteExpiredSessionsForUser = `DELETE FROM user_sessions
    WHERE user_id = $1 AND expires_at < NOW();`

	revokeSession = `UPDATE user_sessions
    SET is_active = FALSE
    WHERE user_id = $1 AND token_hash = $2 AND is_active = TRUE;`

	revokeAllSessions = `UPDATE user_sessions
    SET is_active = FALSE
    WHERE user_id = $1;`

	sessionTotalsByUserID = `SELECT COUNT(*), MAX(created_at)
    FROM user_sessions
    WHERE user_id = $1;`

	countUsers = `SELECT COUNT(*),
       COUNT(*) FILTER (WHERE is_active),
       COUNT(*) FILTER (WHERE created_at::date = NOW()::date),
       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
    FROM users;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// ($n) placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildCleanupExpiredSessionsQuery builds the DELETE statement for the lazy
// cleanup sweep. The user filter is optional: a nil userID produces the
// system-wide variant used by the maintenance endpoint.
func buildCleanupExpiredSessionsQuery(userID *int64) (string, []any, error) {
	builder := psql.
		Delete(models.UserSession{}.TableName()).
		Where(sq.Lt{"expires_at": time.Now()})

	if userID != nil {
		builder = builder.Where(sq.Eq{"user_id": *userID})
	}

	return builder.ToSql()
}

// buildActiveSessionsQuery builds the SELECT returning a user's sessions
// that are active and not yet expired, oldest first.
func buildActiveSessionsQuery(userID int64) (string, []any, error) {
	return psql.
		Select("id", "user_id", "token_hash", "expires_at", "created_at", "is_active").
		From(models.UserSession{}.TableName()).
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		Where(sq.Gt{"expires_at": time.Now()}).
		OrderBy("created_at ASC").
		ToSql()
}

// buildCountActiveSessionsQuery builds the COUNT over the same predicate as
// buildActiveSessionsQuery. Optionally scoped to one user; the global form
// feeds the service-wide stats endpoint.
func buildCountActiveSessionsQuery(userID *int64) (string, []any, error) {
	builder := psql.
		Select("COUNT(*)").
		From(models.UserSession{}.TableName()).
		Where(sq.Eq{"is_active": true}).
		Where(sq.Gt{"expires_at": time.Now()})

	if userID != nil {
		builder = builder.Where(sq.Eq{"user_id": *userID})
	}

	return builder.ToSql()
}

// buildUpdateProfileQuery builds the partial UPDATE for profile changes.
// Only non-nil fields of update become SET clauses; updated_at always moves.
func buildUpdateProfileQuery(userID int64, update models.ProfileUpdate) (string, []any, error) {
	builder := psql.
		Update(models.User{}.TableName()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING id, username, email, password_hash, is_active, created_at, updated_at")

	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}

	return builder.ToSql()
}

// buildUpdatePreferencesQuery builds the partial UPDATE for preference
// changes. Only non-nil fields of update become SET clauses.
func buildUpdatePreferencesQuery(userID int64, update models.PreferencesUpdate) (string, []any, error) {
	builder := psql.
		Update(models.UserPreferences{}.TableName()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING id, user_id, theme, notifications_enabled, remember_me, updated_at")

	if update.Theme != nil {
		builder = builder.Set("theme", string(*update.Theme))
	}
	if update.NotificationsEnabled != nil {
		builder = builder.Set("notifications_enabled", *update.NotificationsEnabled)
	}
	if update.RememberMe != nil {
		builder = builder.Set("remember_me", *update.RememberMe)
	}

	return builder.ToSql()
}
