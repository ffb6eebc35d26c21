package relinka

import (
	"context"
	"fmt"
)

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default package-level functions that delegate to the default logger

// Default returns the logger behind the package-level functions
func Default() *Logger {
	return defaultLogger
}

// Init starts configuration resolution and the buffer sweep of the default
// logger and installs signal handling for it
func Init(ctx context.Context) error {
	if err := defaultLogger.Start(ctx); err != nil {
		return err
	}
	defaultLogger.HandleSignals()
	return nil
}

// Relinka logs with the current configuration; fatal panics with a *FatalError
func Relinka(level Level, message string, args ...any) {
	defaultLogger.Emit(level, message, args...)
}

// RelinkaAsync waits for the resolved configuration before logging; fatal
// returns a *FatalError
func RelinkaAsync(ctx context.Context, level Level, message string, args ...any) error {
	return defaultLogger.EmitContext(ctx, level, message, args...)
}

// RelinkaConfig waits for the resolved configuration, truncating the log
// file once per process when supportFreshLogFile is set
func RelinkaConfig(ctx context.Context, supportFreshLogFile bool) (*Config, error) {
	return defaultLogger.EnsureConfig(ctx, supportFreshLogFile)
}

// FlushAllLogBuffers writes every buffered line of the default logger
func FlushAllLogBuffers(ctx context.Context) error {
	return defaultLogger.FlushAll(ctx)
}

// RelinkaShutdown stops timers, detaches signals and flushes the default logger
func RelinkaShutdown(ctx context.Context) error {
	return defaultLogger.Shutdown(ctx)
}

// ShouldNeverHappen logs an impossible state at fatal level and panics
func ShouldNeverHappen(message string, args ...any) {
	defaultLogger.Fatal(fmt.Sprintf("Something went wrong: %s", message), args...)
}

// Error logs a message at error level
func Error(message string, args ...any) {
	defaultLogger.Error(message, args...)
}

// Fatal logs a message at fatal level and panics with a *FatalError
func Fatal(message string, args ...any) {
	defaultLogger.Fatal(message, args...)
}

// Warn logs a message at warn level
func Warn(message string, args ...any) {
	defaultLogger.Warn(message, args...)
}

// Info logs a message at info level
func Info(message string, args ...any) {
	defaultLogger.Info(message, args...)
}

// Success logs a message at success level
func Success(message string, args ...any) {
	defaultLogger.Success(message, args...)
}

// Verbose logs a message only when verbose output is enabled
func Verbose(message string, args ...any) {
	defaultLogger.Verbose(message, args...)
}

// Log logs a message at log level
func Log(message string, args ...any) {
	defaultLogger.Log(message, args...)
}

// Internal logs a message at internal level
func Internal(message string, args ...any) {
	defaultLogger.Internal(message, args...)
}

// Null writes message without any symbol
func Null(message string, args ...any) {
	defaultLogger.Null(message, args...)
}

// Step logs a message at step level
func Step(message string, args ...any) {
	defaultLogger.Step(message, args...)
}

// Box writes message framed in a border
func Box(message string, args ...any) {
	defaultLogger.Box(message, args...)
}

// Message logs a message at message level
func Message(message string, args ...any) {
	defaultLogger.Message(message, args...)
}
