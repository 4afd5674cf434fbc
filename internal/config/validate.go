package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "server.listen_address").
	Field string
	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate returns a ValidationError listing every invalid field, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Server.ListenAddress == "" {
		errs = append(errs, FieldError{"server.listen_address", "must not be empty"})
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		errs = append(errs, FieldError{"server.max_upload_bytes", "must be positive"})
	}
	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, FieldError{"server.read_timeout", "must not be negative"})
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, FieldError{"server.write_timeout", "must not be negative"})
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{"server.shutdown_timeout", "must not be negative"})
	}

	if strings.TrimSpace(cfg.Filter.SheetName) == "" {
		errs = append(errs, FieldError{"filter.sheet_name", "must not be blank"})
	}
	if strings.TrimSpace(cfg.Filter.Column) == "" {
		errs = append(errs, FieldError{"filter.column", "must not be blank"})
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, FieldError{"logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{"metrics.path", "must start with /"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
