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

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempFile(t, `{
		"app": {
			"token_sign_key": "json-secret",
			"token_issuer": "json-issuer",
			"token_duration": "2h",
			"bcrypt_cost": 10,
			"version": "3.1.0"
		},
		"storage": {
			"db": {
				"dsn": "postgres://localhost/cardify",
				"max_open_conns": 15
			}
		},
		"server": {
			"http_address": "0.0.0.0:8080",
			"request_timeout": "45s"
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10, cfg.App.BcryptCost)
	assert.Equal(t, "3.1.0", cfg.App.Version)

	assert.Equal(t, "postgres://localhost/cardify", cfg.Storage.DB.DSN)
	assert.Equal(t, 15, cfg.Storage.DB.MaxOpenConns)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)

	// The JSON file never nominates another JSON file.
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_PartialConfig(t *testing.T) {
	path := writeTempFile(t, `{"server": {"http_address": "localhost:9000"}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)
	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Storage{}, cfg.Storage)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("/nonexistent/config.json")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempFile(t, `{not json`)

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
		{"string hours", `"1h"`, time.Hour, false},
		{"string combined", `"1h30m"`, 90 * time.Minute, false},
		{"numeric nanoseconds", `1000000000`, time.Second, false},
		{"invalid string", `"not-a-duration"`, 0, true},
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

func TestDuration_MarshalJSON_RoundTrip(t *testing.T) {
	d := Duration(90 * time.Minute)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(data))

	var back Duration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}
