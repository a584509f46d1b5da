package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository] — the session ledger. One row tracks one issued
// access token: its hash, expiry, and active flag.
//
// Expired rows are removed lazily: opportunistically on the write path
// (every session creation sweeps the owner's stale rows first) and on
// demand via [sessionRepository.CleanupExpiredSessions]. There is no
// background timer.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession inserts a new ledger record for the given token hash,
// expiring after ttl. The insert shares a transaction with the lazy
// cleanup of the owner's already-expired rows, so either both effects
// land or neither does.
func (r *sessionRepository) CreateSession(ctx context.Context, userID int64, tokenHash string, ttl time.Duration) (models.UserSession, error) {
	log := logger.FromContext(ctx)

	var created models.UserSession
	err := r.db.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		// lazy cleanup on the write path
		if _, err := tx.ExecContext(ctx, deleteExpiredSessionsForUser, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		row := tx.QueryRowContext(ctx, createSession, userID, tokenHash, time.Now().Add(ttl))
		return row.Scan(&created.SessionID, &created.UserID, &created.TokenHash,
			&created.ExpiresAt, &created.CreatedAt, &created.IsActive)
	})
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Int64("user_id", userID).Msg("error: session creation failed")
		return models.UserSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// RecordLogin performs the full login write set in one transaction: lazy
// cleanup, session insert, and the remember-me preference upsert. If any of
// the three statements fails the transaction rolls back entirely — a token
// is never handed out without its backing ledger record, and the recorded
// preference never disagrees with the session that was created.
func (r *sessionRepository) RecordLogin(ctx context.Context, userID int64, tokenHash string, ttl time.Duration, rememberMe bool) (models.UserSession, error) {
	log := logger.FromContext(ctx)

	var created models.UserSession
	err := r.db.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		if _, err := tx.ExecContext(ctx, deleteExpiredSessionsForUser, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		row := tx.QueryRowContext(ctx, createSession, userID, tokenHash, time.Now().Add(ttl))
		if err := row.Scan(&created.SessionID, &created.UserID, &created.TokenHash,
			&created.ExpiresAt, &created.CreatedAt, &created.IsActive); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, upsertRememberMe, userID, rememberMe); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RecordLogin").Int64("user_id", userID).Msg("error: login recording failed")
		return models.UserSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// CleanupExpiredSessions deletes every ledger row whose expiry is strictly
// in the past — for one user when userID is non-nil, system-wide otherwise —
// and returns the number of rows removed.
//
// The operation is idempotent and safe under concurrency: a row already
// deleted by a concurrent sweep is simply not found, which is not an error.
func (r *sessionRepository) CleanupExpiredSessions(ctx context.Context, userID *int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCleanupExpiredSessionsQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CleanupExpiredSessions").Msg("failed to build cleanup query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CleanupExpiredSessions").Msg("error: cleanup failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// RevokeSession marks the single active session matching tokenHash as
// inactive. Revoking an unknown, expired, or already-revoked token is a
// no-op reported as (false, nil) — not a failure.
func (r *sessionRepository) RevokeSession(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, revokeSession, userID, tokenHash)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeSession").Int64("user_id", userID).Msg("error: revoke failed")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// RevokeAllSessions marks every ledger row of the user inactive, regardless
// of current state or expiry, and returns the number of rows affected.
// Used by the "log out everywhere" endpoint and by account deletion.
func (r *sessionRepository) RevokeAllSessions(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, revokeAllSessions, userID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeAllSessions").Int64("user_id", userID).Msg("error: revoke-all failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// ActiveSessions returns the user's sessions that are active and not yet
// expired, ordered by creation time (oldest first).
func (r *sessionRepository) ActiveSessions(ctx context.Context, userID int64) ([]models.UserSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildActiveSessionsQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ActiveSessions").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ActiveSessions").Int64("user_id", userID).Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.UserSession, 0, 8)
	for rows.Next() {
		var session models.UserSession
		if err := rows.Scan(&session.SessionID, &session.UserID, &session.TokenHash,
			&session.ExpiresAt, &session.CreatedAt, &session.IsActive); err != nil {
			log.Err(err).Str("func", "*sessionRepository.ActiveSessions").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}

// SessionStats aggregates the figures shown on the profile page: how many
// sessions were ever created (login count), when the latest one was
// created, and how many are currently active and unexpired.
func (r *sessionRepository) SessionStats(ctx context.Context, userID int64) (models.SessionStats, error) {
	log := logger.FromContext(ctx)

	var stats models.SessionStats
	var lastLogin sql.NullTime

	row := r.db.QueryRowContext(ctx, sessionTotalsByUserID, userID)
	if err := row.Scan(&stats.TotalLogins, &lastLogin); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SessionStats").Msg("error: scanning totals")
		return models.SessionStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if lastLogin.Valid {
		stats.LastLogin = &lastLogin.Time
	}

	query, args, err := buildCountActiveSessionsQuery(&userID)
	if err != nil {
		return models.SessionStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row = r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.ActiveSessions); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SessionStats").Msg("error: scanning active count")
		return models.SessionStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return stats, nil
}

// CountActiveSessions returns the number of active, unexpired sessions
// across all users, for the service-wide stats endpoint.
func (r *sessionRepository) CountActiveSessions(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountActiveSessionsQuery(nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Err(err).Str("func", "*sessionRepository.CountActiveSessions").Msg("error: scanning error")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}
