package relinka

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FatalError is raised by the fatal level after the message has been emitted
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string {
	return "fatal error: " + e.Message
}

// Severity returns the numeric severity of a level; unknown levels rank as info
func Severity(level Level) int64 {
	switch level {
	case LevelFatal:
		return SeverityFatal
	case LevelError:
		return SeverityError
	case LevelWarn:
		return SeverityWarn
	case LevelLog, LevelNull:
		return SeverityLog
	case LevelInternal:
		return SeverityInternal
	case LevelVerbose:
		return SeverityVerbose
	default:
		return SeverityInfo
	}
}

// ParseLevel converts a level name or a numeric string to a severity threshold
func ParseLevel(levelStr string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	switch Level(s) {
	case LevelFatal, LevelError, LevelWarn, LevelLog, LevelNull, LevelInfo,
		LevelSuccess, LevelStep, LevelBox, LevelMessage, LevelInternal, LevelVerbose:
		return Severity(Level(s)), nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use fatal, error, warn, log, info, internal, verbose or a number)", levelStr)
	}
}

// normalizeLevel lower-cases and trims a caller-supplied level
func normalizeLevel(level Level) Level {
	return Level(strings.ToLower(strings.TrimSpace(string(level))))
}

// CasesHandled panics unconditionally. Place it in the default branch of a
// switch that is meant to be exhaustive.
func CasesHandled(unexpected any) {
	panic(fmt.Sprintf("a case was not handled for value: %s", TruncateString(fmt.Sprint(unexpected), 100)))
}

// TruncateString shortens s to maxLength runes, ending in an ellipsis when cut
func TruncateString(s string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength-1]) + "…"
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "relinka: ") {
		format = "relinka: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
