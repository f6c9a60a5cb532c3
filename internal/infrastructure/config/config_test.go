package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/finder/backend/internal/shared/paths"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"http://localhost:1420", "http://localhost:3000"}, cfg.CORS.Origins)

	assert.Empty(t, cfg.Filesystem.Home)
	assert.Equal(t, paths.DefaultReadOnlyRoots(), cfg.Filesystem.Roots())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                  "9000",
		"HOST":                  "0.0.0.0",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
		"RATE_LIMIT_RPS":        "500",
		"RATE_LIMIT_BURST":      "1000",
		"RATE_LIMIT_ENABLED":    "false",
		"CORS_ORIGINS":          "http://localhost:5173",
		"FINDER_HOME":           "/srv/finder",
		"FINDER_READONLY_ROOTS": "/Applications,/opt",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.Origins)
	assert.Equal(t, "/srv/finder", cfg.Filesystem.Home)
	assert.Equal(t, []string{"/Applications", "/opt"}, cfg.Filesystem.Roots())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"zero rps", "RATE_LIMIT_RPS", "0"},
		{"bad origin", "CORS_ORIGINS", "tauri://localhost"},
		{"unparseable burst", "RATE_LIMIT_BURST", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)

			fallback := LoadOrDefault()
			assert.Equal(t, Default(), fallback)
		})
	}
}

func TestServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		host     string
		wantPort string
		wantHost string
	}{
		{"default values", "", "", "8000", "127.0.0.1"},
		{"custom port", "9000", "", "9000", "127.0.0.1"},
		{"custom host", "", "localhost", "8000", "localhost"},
		{"custom port and host", "3000", "0.0.0.0", "3000", "0.0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("PORT")
			os.Unsetenv("HOST")
			if tt.port != "" {
				t.Setenv("PORT", tt.port)
			}
			if tt.host != "" {
				t.Setenv("HOST", tt.host)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "finder.toml", `
[server]
port = "8100"

[logging]
level = "warn"

[filesystem]
home = "/Users/me"
readonly_roots = ["/Applications"]
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8100", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/Users/me", cfg.Filesystem.Home)
	assert.Equal(t, []string{"/Applications"}, cfg.Filesystem.Roots())
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "finder.yaml", `
server:
  host: 0.0.0.0
rate_limit:
  enabled: false
cors:
  origins:
    - https://finder.local
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"https://finder.local"}, cfg.CORS.Origins)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown toml key", "a.toml", "[server]\nprot = \"1\"\n"},
		{"unknown yaml key", "a.yml", "logging:\n  levle: debug\n"},
		{"malformed toml", "b.toml", "[server\n"},
		{"invalid value", "c.toml", "[server]\nport = \"0\"\n"},
		{"unsupported extension", "d.json", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
