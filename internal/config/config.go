// Package config provides configuration management for the F1 race predictor.
package config

import (
	"fmt"
)

// Prediction backends selectable through configuration or per request.
const (
	BackendPerturbation = "perturbation"
	BackendModel        = "model"
	BackendAuto         = "auto"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Predictor     PredictorConfig     `mapstructure:"predictor"`
	MLService     MLServiceConfig     `mapstructure:"ml_service"`
	Database      DatabaseConfig      `mapstructure:"database"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Health        HealthConfig        `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the prediction API server configuration
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Backend                string `mapstructure:"backend" validate:"required,backend"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// PredictorConfig represents prediction core tuning
type PredictorConfig struct {
	// DefaultWeights overrides the built-in factor weights used when a
	// request omits a weight. Keys: quali, pace, tire, weather, strategy.
	// Values must lie in [0,1]; validation rejects anything outside.
	DefaultWeights map[string]float64 `mapstructure:"default_weights"`
}

// MLServiceConfig represents the position classifier service configuration
type MLServiceConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	URL             string `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	ModelVersion    string `mapstructure:"model_version"`
	APIKey          string `mapstructure:"api_key"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	DataDir   string             `mapstructure:"data_dir"`
	Format    string             `mapstructure:"format" validate:"omitempty,oneof=csv json postgres"`
	BatchSize int                `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	Sources   []DataSourceConfig `mapstructure:"sources"`
	Schedule  ScheduleConfig     `mapstructure:"schedule"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string  `mapstructure:"name" validate:"required"`
	Enabled   bool    `mapstructure:"enabled"`
	BaseURL   string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey    string  `mapstructure:"api_key"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents the scheduled season sync
type ScheduleConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SeasonSync string `mapstructure:"season_sync"` // cron expression
	Source     string `mapstructure:"source"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ListenAddress returns the host:port the prediction API binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
