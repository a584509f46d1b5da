// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}

	if cfg.Auth.AccessTokenDuration <= 0 ||
		cfg.Auth.RememberMeDuration <= 0 ||
		cfg.Auth.RefreshTokenDuration <= 0 {
		return ErrInvalidTokenDurations
	}

	return nil
}
