package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
app:
  name: f1-race-predictor
  environment: development
  log_level: debug

server:
  host: 127.0.0.1
  port: 5000
  backend: auto

predictor:
  default_weights:
    quali: 0.7
    pace: 0.6

ml_service:
  enabled: true
  url: http://localhost:8501
  timeout_seconds: 5
  model_version: v2
  cache_ttl_seconds: 120

database:
  enabled: false

data_ingestion:
  data_dir: data
  format: csv
  batch_size: 5
  sources:
    - name: ergast
      enabled: true
    - name: synthetic
      enabled: true

metrics:
  enabled: true
  port: 9090
  path: /metrics

health:
  enabled: true
  port: "8080"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "f1-race-predictor", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "127.0.0.1:5000", cfg.ListenAddress())
	assert.Equal(t, BackendAuto, cfg.Server.Backend)
	assert.Equal(t, 0.7, cfg.Predictor.DefaultWeights["quali"])
	assert.True(t, cfg.MLService.Enabled)
	assert.Equal(t, "v2", cfg.MLService.ModelVersion)
	require.Len(t, cfg.DataIngestion.Sources, 2)
	assert.Equal(t, "ergast", cfg.DataIngestion.Sources[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	withVar := `
app:
  name: f1-race-predictor
  environment: development
  log_level: info
server:
  port: 5000
  backend: perturbation
database:
  enabled: true
  host: localhost
  port: 5432
  name: f1
  user: f1
  password: ${TEST_DB_PASSWORD}
  ssl_mode: disable
  max_connections: 10
  max_idle_connections: 2
metrics:
  enabled: true
  port: 9090
  path: /metrics
`
	cfg, err := Load(writeConfig(t, withVar))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Contains(t, cfg.GetDatabaseDSN(), "hunter2")
}

func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "f1-race-predictor", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, BackendAuto, cfg.Server.Backend)
	assert.Equal(t, "csv", cfg.DataIngestion.Format)
	assert.True(t, cfg.Metrics.Enabled)

	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.App.LogLevel = "verbose" }},
		{"bad backend", func(c *Config) { c.Server.Backend = "quantum" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown weight name", func(c *Config) { c.Predictor.DefaultWeights = map[string]float64{"luck": 0.5} }},
		{"weight above one", func(c *Config) { c.Predictor.DefaultWeights = map[string]float64{"quali": 1.5} }},
		{"model backend without ml service", func(c *Config) {
			c.Server.Backend = BackendModel
			c.MLService.Enabled = false
		}},
		{"ml enabled without url", func(c *Config) {
			c.MLService.Enabled = true
			c.MLService.URL = ""
		}},
		{"postgres format without database", func(c *Config) { c.DataIngestion.Format = "postgres" }},
		{"schedule without cron", func(c *Config) { c.DataIngestion.Schedule.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, validYAML))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestValidateProductionRequiresSSL(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.Database = DatabaseConfig{
		Enabled: true, Host: "db", Port: 5432, Name: "f1", User: "f1",
		SSLMode: "disable", MaxConnections: 10, MaxIdleConnections: 2,
	}
	assert.Error(t, Validate(cfg))

	cfg.Database.SSLMode = "require"
	assert.NoError(t, Validate(cfg))
}

func TestOverlaySecrets(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	overlaySecretsOnConfig(cfg, &SecretsOverlay{
		DatabasePassword: "from-aws",
		MLServiceAPIKey:  "token",
	})

	assert.Equal(t, "from-aws", cfg.Database.Password)
	assert.Equal(t, "token", cfg.MLService.APIKey)

	// Empty secret fields leave existing values alone.
	overlaySecretsOnConfig(cfg, &SecretsOverlay{})
	assert.Equal(t, "from-aws", cfg.Database.Password)
}
