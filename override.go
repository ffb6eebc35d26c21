package relinka

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyConfigString applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification, the logger only sees the result.
//
// Example:
//
//	logger := relinka.NewLogger()
//	err := logger.ApplyConfigString(
//	    "save_logs_to_file=true",
//	    "log_file_path=logs/app.log",
//	    "level=warn",
//	)
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.GetConfig()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("relinka: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "relinka: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
// Keys are the toml names of the Config fields.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "level":
		levelVal, err := ParseLevel(value)
		if err != nil {
			return fmtErrorf("invalid level value '%s': %w", value, err)
		}
		cfg.Level = levelVal

	// Strings
	case "log_file_path":
		cfg.LogFilePath = value
	case "name_with_date":
		cfg.NameWithDate = strings.ToLower(value)
	case "base_dir":
		cfg.BaseDir = value
	case "timestamp_format":
		cfg.TimestampFormat = value

	// Booleans
	case "verbose":
		return parseBoolField(key, value, &cfg.Verbose)
	case "disable_colors":
		return parseBoolField(key, value, &cfg.DisableColors)
	case "save_logs_to_file":
		return parseBoolField(key, value, &cfg.SaveLogsToFile)
	case "fresh_log_file":
		return parseBoolField(key, value, &cfg.FreshLogFile)
	case "timestamp_enabled":
		return parseBoolField(key, value, &cfg.TimestampEnabled)

	// Integers
	case "buffer_size":
		return parseIntField(key, value, &cfg.BufferSize)
	case "max_buffer_age_ms":
		return parseIntField(key, value, &cfg.MaxBufferAgeMs)
	case "cleanup_interval_ms":
		return parseIntField(key, value, &cfg.CleanupIntervalMs)
	case "max_log_files":
		return parseIntField(key, value, &cfg.MaxLogFiles)
	case "throttle_ms":
		return parseIntField(key, value, &cfg.ThrottleMs)
	case "throttle_min":
		return parseIntField(key, value, &cfg.ThrottleMin)

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}

func parseBoolField(key, value string, dst *bool) error {
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
	}
	*dst = boolVal
	return nil
}

func parseIntField(key, value string, dst *int64) error {
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
	}
	*dst = intVal
	return nil
}

// configKeys lists every key accepted by applyConfigField and read from
// RELINKA_<KEY> environment variables
var configKeys = []string{
	"verbose", "disable_colors", "level",
	"save_logs_to_file", "log_file_path", "name_with_date", "fresh_log_file", "base_dir",
	"timestamp_enabled", "timestamp_format",
	"buffer_size", "max_buffer_age_ms", "cleanup_interval_ms", "max_log_files",
	"throttle_ms", "throttle_min",
}
