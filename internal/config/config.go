// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Module provides the loaded configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config is the full runtime configuration.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Export      ExportConfig
	Log         LogConfig
}

// HTTPConfig controls the HTTP listener.
type HTTPConfig struct {
	Addr string
}

// DatabaseConfig locates the local invoice history store.
type DatabaseConfig struct {
	Path string
}

// ExportConfig bounds a single export request.
type ExportConfig struct {
	MaxLogoBytes int64
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool { return c.Environment == "production" }

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_PATH", "invoices.db")
	v.SetDefault("EXPORT_MAX_LOGO_BYTES", 5<<20)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Addr: v.GetString("HTTP_ADDR"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("DB_PATH"),
		},
		Export: ExportConfig{
			MaxLogoBytes: v.GetInt64("EXPORT_MAX_LOGO_BYTES"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
	return cfg, nil
}
