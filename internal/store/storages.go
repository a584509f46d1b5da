package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
)

// Storages bundles every repository behind one handle for the service
// layer to consume.
type Storages struct {
	UserRepository        UserRepository
	SessionRepository     SessionRepository
	PreferencesRepository PreferencesRepository

	db *DB
}

// NewStorages connects to PostgreSQL using the passed storage config,
// applies pending migrations, and constructs all repositories on top of
// the shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Debug().Msg("creating storages")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, logger),
		SessionRepository:     NewSessionRepository(db, logger),
		PreferencesRepository: NewPreferencesRepository(db, logger),
		db:                    db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}

// Ping reports whether the underlying database connection is alive.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
