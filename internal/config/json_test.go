// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_AllFields(t *testing.T) {
	// Arrange
	content := `{
		"app": {"name": "auth-from-json", "version": "3.1.4"},
		"auth": {
			"token_sign_key": "json-sign-key",
			"token_issuer": "json-issuer",
			"access_token_duration": "1h",
			"remember_me_duration": "168h",
			"refresh_token_duration": "720h"
		},
		"storage": {"db": {"dsn": "postgres://localhost/jsondb"}},
		"server": {"http_address": "0.0.0.0:9000", "request_timeout": "45s"}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Act
	cfg, err := parseJSON(path)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "auth-from-json", cfg.App.Name)
	assert.Equal(t, "3.1.4", cfg.App.Version)

	assert.Equal(t, "json-sign-key", cfg.Auth.TokenSignKey)
	assert.Equal(t, "json-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RememberMeDuration)
	assert.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenDuration)

	assert.Equal(t, "postgres://localhost/jsondb", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)

	// the file's own path never leaks into the parsed config
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_PartialFields(t *testing.T) {
	// Arrange
	content := `{"auth": {"token_issuer": "only-issuer"}}`
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Act
	cfg, err := parseJSON(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "only-issuer", cfg.Auth.TokenIssuer)
	assert.Empty(t, cfg.Auth.TokenSignKey)
	assert.Zero(t, cfg.Auth.AccessTokenDuration)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("/nonexistent/config.json")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	cfg, err := parseJSON(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"duration string hours", `"2h"`, 2 * time.Hour, false},
		{"duration string combined", `"1h30m"`, 90 * time.Minute, false},
		{"duration string seconds", `"30s"`, 30 * time.Second, false},
		{"number is nanoseconds", `3600000000000`, time.Hour, false},
		{"zero number", `0`, 0, false},
		{"unparsable string", `"not-a-duration"`, 0, true},
		{"boolean rejected", `true`, 0, true},
		{"object rejected", `{}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}
