package relinka

// Logger instance methods for logging at each built-in level.

// Error logs a message at error level
func (l *Logger) Error(message string, args ...any) {
	l.Emit(LevelError, message, args...)
}

// Fatal logs a message at fatal level and panics with a *FatalError
func (l *Logger) Fatal(message string, args ...any) {
	l.Emit(LevelFatal, message, args...)
}

// Warn logs a message at warn level
func (l *Logger) Warn(message string, args ...any) {
	l.Emit(LevelWarn, message, args...)
}

// Info logs a message at info level
func (l *Logger) Info(message string, args ...any) {
	l.Emit(LevelInfo, message, args...)
}

// Success logs a message at success level
func (l *Logger) Success(message string, args ...any) {
	l.Emit(LevelSuccess, message, args...)
}

// Verbose logs a message only when verbose output is enabled
func (l *Logger) Verbose(message string, args ...any) {
	l.Emit(LevelVerbose, message, args...)
}

// Log logs a message at log level
func (l *Logger) Log(message string, args ...any) {
	l.Emit(LevelLog, message, args...)
}

// Internal logs a message at internal level
func (l *Logger) Internal(message string, args ...any) {
	l.Emit(LevelInternal, message, args...)
}

// Null writes message without any symbol
func (l *Logger) Null(message string, args ...any) {
	l.Emit(LevelNull, message, args...)
}

// Step logs a message at step level
func (l *Logger) Step(message string, args ...any) {
	l.Emit(LevelStep, message, args...)
}

// Box writes message framed in a border
func (l *Logger) Box(message string, args ...any) {
	l.Emit(LevelBox, message, args...)
}

// Message logs a message at message level
func (l *Logger) Message(message string, args ...any) {
	l.Emit(LevelMessage, message, args...)
}
