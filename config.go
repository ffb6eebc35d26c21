package relinka

import (
	"errors"
	"os"
	"strings"

	"github.com/lixenwraith/config"

	"github.com/lixenwraith/relinka/formatter"
)

// Config holds all logger configuration values
type Config struct {
	// Console behavior
	Verbose       bool  `toml:"verbose" yaml:"verbose"`               // Emit verbose records and internal diagnostics
	DisableColors bool  `toml:"disable_colors" yaml:"disable_colors"` // Plain console output
	Level         int64 `toml:"level" yaml:"level"`                   // Drop records less severe than this threshold

	// File output
	SaveLogsToFile bool   `toml:"save_logs_to_file" yaml:"save_logs_to_file"`
	LogFilePath    string `toml:"log_file_path" yaml:"log_file_path"`   // May include a directory
	NameWithDate   string `toml:"name_with_date" yaml:"name_with_date"` // "disable", "append-before" or "append-after"
	FreshLogFile   bool   `toml:"fresh_log_file" yaml:"fresh_log_file"` // Truncate the log file once per session
	BaseDir        string `toml:"base_dir" yaml:"base_dir"`             // Root for relative paths, working directory when empty

	// Formatting
	TimestampEnabled bool   `toml:"timestamp_enabled" yaml:"timestamp_enabled"`
	TimestampFormat  string `toml:"timestamp_format" yaml:"timestamp_format"` // Tokens: YYYY MM DD HH mm ss SSS

	// Buffering and retention
	BufferSize        int64 `toml:"buffer_size" yaml:"buffer_size"`                 // Bytes buffered per file before a flush
	MaxBufferAgeMs    int64 `toml:"max_buffer_age_ms" yaml:"max_buffer_age_ms"`     // Max age of buffered lines
	CleanupIntervalMs int64 `toml:"cleanup_interval_ms" yaml:"cleanup_interval_ms"` // Min time between cleanups
	MaxLogFiles       int64 `toml:"max_log_files" yaml:"max_log_files"`             // 0 keeps every file

	// Repeat throttling
	ThrottleMs  int64 `toml:"throttle_ms" yaml:"throttle_ms"`   // Window in which repeats are suppressed
	ThrottleMin int64 `toml:"throttle_min" yaml:"throttle_min"` // Repeats emitted before suppression starts

	// Level styles, file layers merge into the defaults
	Levels map[string]formatter.Style `toml:"-" yaml:"levels"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Verbose:       false,
	DisableColors: false,
	Level:         SeverityVerbose,

	SaveLogsToFile: false,
	LogFilePath:    defaultLogFileName,
	NameWithDate:   NameWithDateDisable,
	FreshLogFile:   true,
	BaseDir:        "",

	TimestampEnabled: false,
	TimestampFormat:  formatter.DefaultTimestampFormat,

	BufferSize:        4096,
	MaxBufferAgeMs:    5000,
	CleanupIntervalMs: 10000,
	MaxLogFiles:       0,

	ThrottleMs:  1000,
	ThrottleMin: 5,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	copiedConfig.Levels = formatter.DefaultStyles()
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file, keys under the
// "relinka." table, with RELINKA_<KEY> environment variables on top, and
// returns a validated Config. A missing file leaves defaults and the
// environment.
func NewConfigFromFile(path string) (*Config, error) {
	cfg, err := loadLayers(DefaultConfig(), path)
	if cfg == nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		cfg, err = loadLayers(DefaultConfig(), "")
		if cfg == nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLayers layers an optional TOML file and RELINKA_<KEY> environment
// variables over base with precedence env > file > base. base is registered
// as the defaults, so values already decoded from YAML/JSON rank like a file.
// A nil Config means the file layer failed; a non-nil Config with an error
// lists rejected environment variables.
func loadLayers(base *Config, tomlPath string) (*Config, error) {
	loader := config.New()

	if err := loader.RegisterStruct(configPrefix, *base); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	opts := config.LoadOptions{
		Sources:      []config.Source{config.SourceEnv, config.SourceFile, config.SourceDefault},
		EnvTransform: envVarName,
		EnvWhitelist: make(map[string]bool),
	}
	envErr := selectEnvOverrides(loader, &opts, base)

	if err := loader.LoadWithOptions(tomlPath, nil, opts); err != nil {
		return nil, fmtErrorf("failed to load config from %s: %w", tomlPath, err)
	}

	cfg := base.Clone()
	if err := loader.Scan(configSection, cfg); err != nil {
		return nil, fmtErrorf("failed to decode config values: %w", err)
	}
	return cfg, envErr
}

// envVarName maps a registered path such as relinka.max_log_files to
// RELINKA_MAX_LOG_FILES
func envVarName(path string) string {
	return envPrefix + strings.ToUpper(strings.TrimPrefix(path, configPrefix))
}

// selectEnvOverrides whitelists the RELINKA_<KEY> variables whose values
// parse like ApplyConfigString input; the rest are skipped and reported.
// Named levels are converted here and stored as the env value of level.
func selectEnvOverrides(loader *config.Config, opts *config.LoadOptions, base *Config) error {
	var errs []error
	scratch := *base

	for _, key := range configKeys {
		path := configPrefix + key
		value, ok := os.LookupEnv(opts.EnvTransform(path))
		if !ok || value == "" {
			continue
		}

		if err := applyConfigField(&scratch, key, value); err != nil {
			errs = append(errs, fmtErrorf("%s ignored: %w", opts.EnvTransform(path), err))
			continue
		}

		if key == "level" {
			if err := loader.SetSource(path, config.SourceEnv, scratch.Level); err != nil {
				errs = append(errs, fmtErrorf("%s ignored: %w", opts.EnvTransform(path), err))
			}
			continue
		}
		opts.EnvWhitelist[path] = true
	}

	return combineConfigErrors(errs)
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errs []error

	switch c.NameWithDate {
	case NameWithDateDisable, NameWithDateAppendBefore, NameWithDateAppendAfter:
	default:
		errs = append(errs, fmtErrorf("invalid name_with_date: '%s' (use disable, append-before, or append-after)", c.NameWithDate))
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		errs = append(errs, fmtErrorf("timestamp_format cannot be empty"))
	}

	if c.BufferSize <= 0 {
		errs = append(errs, fmtErrorf("buffer_size must be positive: %d", c.BufferSize))
	}

	if c.MaxBufferAgeMs <= 0 {
		errs = append(errs, fmtErrorf("max_buffer_age_ms must be positive: %d", c.MaxBufferAgeMs))
	}

	if c.CleanupIntervalMs < 0 || c.MaxLogFiles < 0 {
		errs = append(errs, fmtErrorf("cleanup settings cannot be negative"))
	}

	if c.ThrottleMs < 0 || c.ThrottleMin < 0 {
		errs = append(errs, fmtErrorf("throttle settings cannot be negative"))
	}

	for level, style := range c.Levels {
		if style.Color != "" && !formatter.IsKnownColor(style.Color) {
			errs = append(errs, fmtErrorf("unknown color '%s' for level '%s'", style.Color, level))
		}
	}

	return combineConfigErrors(errs)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	if c.Levels != nil {
		copiedConfig.Levels = formatter.MergeStyles(c.Levels, nil)
	}
	return &copiedConfig
}
