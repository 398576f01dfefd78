// Package errors holds the sentinel errors shared across revctl and small
// helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors. Any of these is fatal: no store operation runs.
	ErrConfig            = fmt.Errorf("configuration error")
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigEnv         = fmt.Errorf("failed to read environment overrides")

	// Settings validation errors.
	ErrBaseURLEmpty         = fmt.Errorf("store base_url cannot be empty")
	ErrBaseURLInvalid       = fmt.Errorf("store base_url is not a valid http(s) URL")
	ErrManifestEmpty        = fmt.Errorf("deploy manifest cannot be empty")
	ErrManifestInvalid      = fmt.Errorf("deploy manifest cannot be \".\" or \"..\"")
	ErrHTTPTimeoutNegative  = fmt.Errorf("http_timeout cannot be negative")
	ErrInvalidOutputFormat  = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel      = fmt.Errorf("invalid log level")
	ErrMultipleAuthSettings = fmt.Errorf("only one of auth_header, auth.basic, auth.bearer, auth.header may be set")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json, yaml", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ConfigError marks err as a configuration error while keeping it inspectable.
func ConfigError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConfig, err)
}
