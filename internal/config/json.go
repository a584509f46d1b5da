package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations so operators can keep configuration in a file.
type StructuredJSONConfig struct {
	App struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RememberMeDuration   Duration `json:"remember_me_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:    jsonCfg.App.Name,
			Version: jsonCfg.App.Version,
		},
		Auth: Auth{
			TokenSignKey:         jsonCfg.Auth.TokenSignKey,
			TokenIssuer:          jsonCfg.Auth.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.Auth.AccessTokenDuration),
			RememberMeDuration:   time.Duration(jsonCfg.Auth.RememberMeDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.Auth.RefreshTokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from either a JSON number
// (nanoseconds) or a duration string such as "1h30m".
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for Duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, parseErr := time.ParseDuration(asString)
		if parseErr != nil {
			return fmt.Errorf("error parsing duration %q: %w", asString, parseErr)
		}
		*d = Duration(parsed)
		return nil
	}

	var asNumber int64
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("duration must be a string or a number: %w", err)
	}
	*d = Duration(asNumber)
	return nil
}
