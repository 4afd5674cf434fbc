package config

import (
	"time"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
)

// Default values for configuration fields.
const (
	DefaultListenAddress   = ":8501"
	DefaultMaxUploadBytes  = 50 * 1024 * 1024 // 50MB
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "sheetfilter"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Filter.SheetName == "" {
		cfg.Filter.SheetName = sheetfilter.DefaultSheetName
	}
	if cfg.Filter.Column == "" {
		cfg.Filter.Column = sheetfilter.DefaultColumn
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}
