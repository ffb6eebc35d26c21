package relinka

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/afero"

	"github.com/lixenwraith/relinka/formatter"
)

// Logger is the core struct that encapsulates all logger functionality
type Logger struct {
	currentConfig    atomic.Value // stores *Config
	currentFormatter atomic.Value // stores *formatter.Formatter
	state            State
	initMu           sync.Mutex

	resolver     *Resolver
	resolveOnce  sync.Once
	ready        chan struct{}
	readyOnce    sync.Once
	processorEnd chan struct{}
	stopCh       chan struct{}

	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	outMu    sync.Mutex
	unicode  bool
	exitFunc func(int)
	baseDir  string

	throttle *throttle
	writer   *bufferedWriter
	cleaner  *cleaner

	sigMu sync.Mutex
	sigCh chan os.Signal
}

// Option configures a Logger at construction
type Option func(*Logger)

// WithResolver sets the resolver used by Start and the context-aware entry points
func WithResolver(r *Resolver) Option {
	return func(l *Logger) { l.resolver = r }
}

// WithFs sets the filesystem for log files
func WithFs(fs afero.Fs) Option {
	return func(l *Logger) { l.fs = fs }
}

// WithOutput sets the console streams; nil keeps the current one
func WithOutput(stdout, stderr io.Writer) Option {
	return func(l *Logger) {
		if stdout != nil {
			l.stdout = stdout
		}
		if stderr != nil {
			l.stderr = stderr
		}
	}
}

// WithUnicode forces symbol (true) or fallback symbol (false) rendering
func WithUnicode(supported bool) Option {
	return func(l *Logger) { l.unicode = supported }
}

// WithExitFunc replaces os.Exit for the signal handler
func WithExitFunc(exit func(int)) Option {
	return func(l *Logger) { l.exitFunc = exit }
}

// WithBaseDir sets the directory relative log paths resolve against
func WithBaseDir(dir string) Option {
	return func(l *Logger) { l.baseDir = dir }
}

// NewLogger creates a new Logger with default settings. The default
// configuration is used until Start resolves the configured one or
// ApplyConfig is called.
func NewLogger(opts ...Option) *Logger {
	l := &Logger{
		ready:        make(chan struct{}),
		stopCh:       make(chan struct{}),
		processorEnd: make(chan struct{}),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		unicode:      formatter.IsUnicodeSupported(),
		exitFunc:     os.Exit,
		fs:           afero.NewOsFs(),
	}
	if wd, err := os.Getwd(); err == nil {
		l.baseDir = wd
	}

	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		l.resolver = NewResolver()
	}

	l.state.LoggerStartTime.Store(time.Now())

	cfg := DefaultConfig()
	l.currentConfig.Store(cfg)
	l.currentFormatter.Store(l.newFormatter(cfg))

	l.writer = newBufferedWriter(l.fs)
	l.writer.onWritten = func(string) {
		l.state.TotalFlushes.Add(1)
		l.cleaner.trigger()
	}
	l.writer.onFailed = l.reportFailure

	l.cleaner = newCleaner(l.fs, func() (*Config, string) {
		c := l.getConfig()
		return c, l.currentLogFilePath(c, time.Now())
	})
	l.cleaner.onDeleted = func(string) { l.state.TotalDeletions.Add(1) }
	l.cleaner.onFailed = l.reportFailure

	l.throttle = newThrottle(l.processLogRecord, func() { l.state.TotalSuppressed.Add(1) })

	return l
}

// ApplyConfig applies a validated configuration to the logger
// This is the primary way applications should configure the logger
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.applyConfig(cfg.Clone())
	return nil
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// Ready is closed once a configuration has been resolved or applied
func (l *Logger) Ready() <-chan struct{} {
	return l.ready
}

// Start resolves the configuration in the background and starts the buffer
// age sweep. Safe to call multiple times.
func (l *Logger) Start(ctx context.Context) error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}
	if !l.state.Started.CompareAndSwap(false, true) {
		return nil
	}

	go l.resolveConfig()

	go l.processBuffers(ctx, l.stopCh, l.processorEnd)

	return nil
}

// EnsureConfig waits for the resolved configuration. With supportFreshLogFile
// set and fresh_log_file enabled, the current log file is truncated the first
// time this is called in the logger's lifetime.
func (l *Logger) EnsureConfig(ctx context.Context, supportFreshLogFile bool) (*Config, error) {
	if err := l.waitReady(ctx); err != nil {
		return nil, err
	}

	cfg := l.getConfig()
	if supportFreshLogFile && cfg.SaveLogsToFile && cfg.FreshLogFile &&
		l.state.FreshLogDone.CompareAndSwap(false, true) {
		path := l.currentLogFilePath(cfg, time.Now())
		if err := l.writer.truncate(ctx, path); err != nil {
			l.reportFailure(path, err)
		}
	}
	return cfg.Clone(), nil
}

// FlushOne writes the buffered lines of one log file and waits for the write
func (l *Logger) FlushOne(ctx context.Context, path string) error {
	return l.writer.flushOne(ctx, path)
}

// FlushAll writes every buffered line and waits until all writes complete
func (l *Logger) FlushAll(ctx context.Context) error {
	return l.writer.flushAll(ctx)
}

// Cleanup triggers retention cleanup, subject to the debounce interval
func (l *Logger) Cleanup() {
	l.cleaner.trigger()
}

// Shutdown stops background timers, detaches signal handling and flushes
// all buffers. Only the first call has any effect.
func (l *Logger) Shutdown(ctx context.Context) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	var finalErr error
	if l.state.Started.Load() {
		close(l.stopCh)
		select {
		case <-l.processorEnd:
		case <-ctx.Done():
			finalErr = fmtErrorf("buffer sweep did not stop: %w", ctx.Err())
		}
	}

	l.throttle.stop()
	l.cleaner.stop()
	l.stopSignals()

	if err := l.FlushAll(ctx); err != nil {
		finalErr = combineErrors(finalErr, err)
	}
	return finalErr
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

func (l *Logger) getFormatter() *formatter.Formatter {
	return l.currentFormatter.Load().(*formatter.Formatter)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) {
	l.currentConfig.Store(cfg)
	l.currentFormatter.Store(l.newFormatter(cfg))
	l.readyOnce.Do(func() { close(l.ready) })
}

func (l *Logger) newFormatter(cfg *Config) *formatter.Formatter {
	return formatter.New().
		Styles(formatter.MergeStyles(formatter.DefaultStyles(), cfg.Levels)).
		ShowTimestamp(cfg.TimestampEnabled).
		TimestampFormat(cfg.TimestampFormat).
		Unicode(l.unicode)
}

// resolveConfig applies the resolver's result unless a configuration was
// applied explicitly first
func (l *Logger) resolveConfig() {
	l.resolveOnce.Do(func() {
		cfg, err := l.resolver.Resolve()

		l.initMu.Lock()
		applied := false
		select {
		case <-l.ready:
		default:
			l.applyConfig(cfg)
			applied = true
		}
		l.initMu.Unlock()

		if err != nil {
			l.internalLog("configuration fell back: %v\n", err)
		}
		if applied && cfg.Verbose {
			l.internalLog("resolved configuration from '%s':\n%s", l.resolver.Source(), spew.Sdump(cfg))
		}
	})
}

// waitReady triggers resolution if needed and waits for a configuration
func (l *Logger) waitReady(ctx context.Context) error {
	select {
	case <-l.ready:
		return nil
	default:
	}

	go l.resolveConfig()

	select {
	case <-l.ready:
		return nil
	case <-ctx.Done():
		return fmtErrorf("configuration not ready: %w", ctx.Err())
	}
}

// currentLogFilePath resolves the active log file for cfg at t
func (l *Logger) currentLogFilePath(cfg *Config, t time.Time) string {
	return logFilePath(cfg, l.baseDir, t)
}

// reportFailure counts a filesystem failure and reports it in verbose mode
func (l *Logger) reportFailure(_ string, err error) {
	l.state.TotalFailures.Add(1)
	l.internalLog("%v\n", err)
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	cfg := l.getConfig()
	if !cfg.Verbose {
		return
	}

	l.outMu.Lock()
	defer l.outMu.Unlock()
	fmt.Fprintf(l.stderr, "relinka: "+format, args...)
}
