package relinka

import (
	"context"
	"errors"
	"time"
)

// emit handles the core logging logic shared by both entry points.
// The returned error is non-nil only for the fatal level.
func (l *Logger) emit(level Level, message string, args []any) error {
	level = normalizeLevel(level)
	if level == LevelFatal {
		return l.emitFatal(message, args)
	}
	if message == "" {
		return nil
	}

	cfg := l.getConfig()
	if level == LevelVerbose && !cfg.Verbose {
		return nil
	}
	if Severity(level) > cfg.Level {
		l.state.TotalFiltered.Add(1)
		return nil
	}

	record := logRecord{
		Level:     level,
		Message:   message,
		Args:      args,
		TimeStamp: time.Now(),
	}
	window := time.Duration(cfg.ThrottleMs) * time.Millisecond
	l.throttle.submit(record, window, cfg.ThrottleMin)
	return nil
}

// emitFatal bypasses the throttle and the buffer: the line goes to stderr and
// is appended to the log file synchronously before the FatalError is returned
func (l *Logger) emitFatal(message string, args []any) error {
	cfg := l.getConfig()
	f := l.getFormatter()
	now := time.Now()

	line := f.Format(string(LevelFatal), message, args, now)
	l.writeConsole(cfg, f, LevelFatal, line)
	l.state.TotalEmitted.Add(1)

	if cfg.SaveLogsToFile {
		// Best effort, the console already has the message
		_ = appendToFile(l.fs, l.currentLogFilePath(cfg, now), []byte(line+"\n"))
		l.cleaner.trigger()
	}

	return &FatalError{Message: message}
}

// Emit logs message at level using the current configuration. It never
// fails except for the fatal level, which panics with a *FatalError after
// the message has been written.
func (l *Logger) Emit(level Level, message string, args ...any) {
	if err := l.emit(level, message, args); err != nil {
		panic(err)
	}
}

// EmitContext waits for the resolved configuration before logging.
// The fatal level returns a *FatalError instead of panicking.
func (l *Logger) EmitContext(ctx context.Context, level Level, message string, args ...any) error {
	if err := l.waitReady(ctx); err != nil {
		return err
	}
	return l.emit(level, message, args)
}

// IsFatal reports whether err carries a fatal log escape
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
