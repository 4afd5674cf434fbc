package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHEETFILTER_"

// Load builds the configuration in this order:
//  1. defaults
//  2. the YAML file at path, when path is not empty
//  3. SHEETFILTER_* environment variables (a .env file in the working directory is read first)
//  4. validation
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
		ApplyDefaults(cfg)
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// applyEnvOverrides applies SHEETFILTER_SECTION_FIELD variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	var err error

	// Server overrides
	if val, ok := lookupEnv("SERVER_LISTEN_ADDRESS"); ok {
		cfg.Server.ListenAddress = val
	}
	if val, ok := lookupEnv("SERVER_MAX_UPLOAD_BYTES"); ok {
		if cfg.Server.MaxUploadBytes, err = strconv.ParseInt(val, 10, 64); err != nil {
			return envError("SERVER_MAX_UPLOAD_BYTES", err)
		}
	}
	if val, ok := lookupEnv("SERVER_READ_TIMEOUT"); ok {
		if cfg.Server.ReadTimeout, err = time.ParseDuration(val); err != nil {
			return envError("SERVER_READ_TIMEOUT", err)
		}
	}
	if val, ok := lookupEnv("SERVER_WRITE_TIMEOUT"); ok {
		if cfg.Server.WriteTimeout, err = time.ParseDuration(val); err != nil {
			return envError("SERVER_WRITE_TIMEOUT", err)
		}
	}
	if val, ok := lookupEnv("SERVER_SHUTDOWN_TIMEOUT"); ok {
		if cfg.Server.ShutdownTimeout, err = time.ParseDuration(val); err != nil {
			return envError("SERVER_SHUTDOWN_TIMEOUT", err)
		}
	}

	// Filter overrides
	if val, ok := lookupEnv("FILTER_SHEET_NAME"); ok {
		cfg.Filter.SheetName = val
	}
	if val, ok := lookupEnv("FILTER_COLUMN"); ok {
		cfg.Filter.Column = val
	}
	if val, ok := lookupEnv("FILTER_RAW_VALUES"); ok {
		if cfg.Filter.RawValues, err = strconv.ParseBool(val); err != nil {
			return envError("FILTER_RAW_VALUES", err)
		}
	}

	// Logging overrides
	if val, ok := lookupEnv("LOGGING_LEVEL"); ok {
		cfg.Logging.Level = val
	}
	if val, ok := lookupEnv("LOGGING_FORMAT"); ok {
		cfg.Logging.Format = val
	}

	// Metrics overrides
	if val, ok := lookupEnv("METRICS_ENABLED"); ok {
		if cfg.Metrics.Enabled, err = strconv.ParseBool(val); err != nil {
			return envError("METRICS_ENABLED", err)
		}
	}
	if val, ok := lookupEnv("METRICS_PATH"); ok {
		cfg.Metrics.Path = val
	}
	if val, ok := lookupEnv("METRICS_NAMESPACE"); ok {
		cfg.Metrics.Namespace = val
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func envError(key string, err error) error {
	return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
}
