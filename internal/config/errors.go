package config

import "errors"

var (
	// ErrNoTokenSignKey is returned when no JWT signing key was provided by
	// any configuration source. The service cannot issue or verify tokens
	// without it, so startup is aborted.
	ErrNoTokenSignKey = errors.New("token sign key is not specified")

	// ErrNoDatabaseDSN is returned when no database connection string was
	// provided by any configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is not specified")

	// ErrInvalidTokenDurations is returned when any of the three token
	// durations is zero or negative after merging all sources.
	ErrInvalidTokenDurations = errors.New("token durations must be positive")
)
