// Package config loads the sheetfilter server configuration from a YAML
// file, a .env file and SHEETFILTER_* environment variables.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Filter  FilterConfig  `yaml:"filter"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the host:port the server binds to.
	ListenAddress string `yaml:"listen_address"`
	// MaxUploadBytes caps the size of an uploaded workbook.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// ReadTimeout bounds reading a whole request, upload included.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// FilterConfig holds the defaults applied to filter requests.
type FilterConfig struct {
	// SheetName is used when a request names no sheet.
	SheetName string `yaml:"sheet_name"`
	// Column is used when a request names no column.
	Column string `yaml:"column"`
	// RawValues reads stored cell values instead of formatted text.
	RawValues bool `yaml:"raw_values"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}
