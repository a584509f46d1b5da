package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Names of the uniqueness constraints declared in the migrations. They are
// used to translate a PostgreSQL unique_violation into the precise domain
// sentinel, so a registration race lost at commit time still reports which
// field collided.
const (
	constraintUsersUsername   = "users_username_key"
	constraintUsersEmail      = "users_email_key"
	constraintPreferencesUser = "user_preferences_user_id_key"
)

// classifyUniqueViolation maps a unique_violation error to the matching
// domain sentinel based on the violated constraint name. It returns nil when
// err is not a PostgreSQL unique violation at all, so callers can fall
// through to their generic error handling.
//
// The pre-insert existence checks in the service layer cannot rule out a
// concurrent insert between check and commit; this mapping is what turns
// that race into a Conflict outcome instead of an internal error.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintUsersUsername:
		return ErrUsernameAlreadyExists
	case constraintUsersEmail:
		return ErrEmailAlreadyExists
	case constraintPreferencesUser:
		return ErrPreferencesAlreadyExist
	}

	// Unique violation on an unrecognised constraint: still a conflict,
	// but without field attribution.
	return ErrUniqueViolation
}
