package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an insert or profile update
	// collides with the uniqueness constraint on users.username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when an insert or profile update
	// collides with the uniqueness constraint on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrPreferencesAlreadyExist is returned when a second preferences row
	// is inserted for the same user.
	ErrPreferencesAlreadyExist = errors.New("preferences already exist for user")

	// ErrUniqueViolation is returned for a uniqueness violation on a
	// constraint the store does not recognise by name.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrNoUserWasFound is returned when a query expected to match exactly
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoPreferencesFound is returned when a user has no preferences row
	// yet. Most callers should use GetOrCreatePreferences instead of
	// treating this as a failure.
	ErrNoPreferencesFound = errors.New("no preferences were found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
