package relinka

import (
	"io"

	"github.com/spf13/afero"

	"github.com/lixenwraith/relinka/formatter"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
// The configuration is applied immediately, so resolution from files and
// the environment is skipped.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger(b.opts...)

	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Level sets the severity threshold.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the severity threshold from a level name or number.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Verbose enables verbose records and internal diagnostics.
func (b *Builder) Verbose(enable bool) *Builder {
	b.cfg.Verbose = enable
	return b
}

// DisableColors turns off ANSI colors on the console.
func (b *Builder) DisableColors(disable bool) *Builder {
	b.cfg.DisableColors = disable
	return b
}

// SaveLogsToFile enables buffered file output.
func (b *Builder) SaveLogsToFile(enable bool) *Builder {
	b.cfg.SaveLogsToFile = enable
	return b
}

// LogFilePath sets the log file path.
func (b *Builder) LogFilePath(path string) *Builder {
	b.cfg.LogFilePath = path
	return b
}

// NameWithDate sets the date naming mode.
func (b *Builder) NameWithDate(mode string) *Builder {
	b.cfg.NameWithDate = mode
	return b
}

// BaseDir sets the root for relative log paths.
func (b *Builder) BaseDir(dir string) *Builder {
	b.cfg.BaseDir = dir
	return b
}

// Timestamp enables the timestamp prefix with the given pattern; empty keeps the default.
func (b *Builder) Timestamp(format string) *Builder {
	b.cfg.TimestampEnabled = true
	if format != "" {
		b.cfg.TimestampFormat = format
	}
	return b
}

// BufferSize sets the per-file flush threshold in bytes.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// MaxBufferAgeMs sets how long lines may stay buffered.
func (b *Builder) MaxBufferAgeMs(ms int64) *Builder {
	b.cfg.MaxBufferAgeMs = ms
	return b
}

// Retention sets how many log files to keep and the minimum time between cleanups.
func (b *Builder) Retention(maxLogFiles, cleanupIntervalMs int64) *Builder {
	b.cfg.MaxLogFiles = maxLogFiles
	b.cfg.CleanupIntervalMs = cleanupIntervalMs
	return b
}

// Throttle sets the repeat window and the repeats emitted before suppression.
func (b *Builder) Throttle(windowMs, min int64) *Builder {
	b.cfg.ThrottleMs = windowMs
	b.cfg.ThrottleMin = min
	return b
}

// Style overrides the style of one level; zero fields keep the current value.
func (b *Builder) Style(level string, style formatter.Style) *Builder {
	b.cfg.Levels = formatter.MergeStyles(b.cfg.Levels, map[string]formatter.Style{level: style})
	return b
}

// Output sets the console streams.
func (b *Builder) Output(stdout, stderr io.Writer) *Builder {
	b.opts = append(b.opts, WithOutput(stdout, stderr))
	return b
}

// Fs sets the filesystem used for log files.
func (b *Builder) Fs(fs afero.Fs) *Builder {
	b.opts = append(b.opts, WithFs(fs))
	return b
}

// Unicode forces symbol or fallback symbol rendering.
func (b *Builder) Unicode(supported bool) *Builder {
	b.opts = append(b.opts, WithUnicode(supported))
	return b
}

// Example usage:
// logger, err := relinka.NewBuilder().
//
//	SaveLogsToFile(true).
//	LogFilePath("logs/app.log").
//	LevelString("info").
//	Retention(5, 10000).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown(context.Background())
//	 logger.Info("Logger initialized successfully")
//
// }
