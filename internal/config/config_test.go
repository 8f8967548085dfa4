package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, 640.0, cfg.Chart.Width)
	assert.Equal(t, 220.0, cfg.Chart.Height)
	assert.Equal(t, 6, cfg.UpcomingLimit)
	assert.Equal(t, "researchhub_export.json", cfg.ExportFile)
	assert.Equal(t, "researchhub.db", filepath.Base(cfg.Database))
}

func TestParse_OverridesSubset(t *testing.T) {
	cfg, err := parse([]byte(`
database: /tmp/hub.db
chart:
  width: 800
upcoming_limit: 3
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hub.db", cfg.Database)
	assert.Equal(t, 800.0, cfg.Chart.Width)
	assert.Equal(t, 220.0, cfg.Chart.Height)
	assert.Equal(t, 3, cfg.UpcomingLimit)
	assert.Equal(t, "sqlite3", cfg.Driver)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown field", "databse: x\n", "field databse not found"},
		{"bad driver", "driver: postgres\n", `unknown driver "postgres"`},
		{"zero width", "chart:\n  width: 0\n", "chart size must be positive"},
		{"negative limit", "upcoming_limit: -1\n", "upcoming_limit must be positive"},
		{"empty export", "export_file: \"\"\n", "export_file is required"},
		{"malformed", "database: [\n", "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, "driver: sqlite\ndatabase: /data/hub.db\n")

	cfg, err := Load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "/data/hub.db", cfg.Database)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "driver: sqlite\ndatabase: /data/hub.db\n")
	env := map[string]string{
		EnvDatabase: "/env/hub.db",
		EnvDriver:   "sqlite3",
	}

	cfg, err := Load(path, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "/env/hub.db", cfg.Database)
	assert.Equal(t, "sqlite3", cfg.Driver)
}

func TestLoad_EnvValidated(t *testing.T) {
	path := writeConfig(t, "")
	_, err := Load(path, func(k string) string {
		if k == EnvDriver {
			return "mysql"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown driver "mysql"`)
}

func TestLoad_DefaultPathMayBeAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
