package relinka

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"fatal", SeverityFatal, false},
		{"ERROR", SeverityError, false},
		{" warn ", SeverityWarn, false},
		{"log", SeverityLog, false},
		{"null", SeverityLog, false},
		{"info", SeverityInfo, false},
		{"success", SeverityInfo, false},
		{"box", SeverityInfo, false},
		{"internal", SeverityInternal, false},
		{"verbose", SeverityVerbose, false},
		{"3", 3, false},
		{"-1", -1, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, Severity(LevelFatal))
	assert.Equal(t, SeverityWarn, Severity(LevelWarn))
	assert.Equal(t, SeverityInfo, Severity(LevelStep))
	assert.Equal(t, SeverityInfo, Severity("custom"))
	assert.Equal(t, SeverityVerbose, Severity(LevelVerbose))
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=with=equals", "key", "value=with=equals", false},
		{"key=", "key", "", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd…", TruncateString("abcdefgh", 5))
	assert.Equal(t, "ünï…", TruncateString("ünïcode", 4))
	assert.Equal(t, "anything", TruncateString("anything", 0))
}

func TestCasesHandled(t *testing.T) {
	assert.PanicsWithValue(t, "a case was not handled for value: surprise", func() {
		CasesHandled("surprise")
	})

	long := strings.Repeat("x", 200)
	assert.Panics(t, func() { CasesHandled(long) })
}

func TestErrorHelpers(t *testing.T) {
	err := fmtErrorf("failed: %w", errors.New("io"))
	assert.Equal(t, "relinka: failed: io", err.Error())
	assert.Equal(t, "relinka: already prefixed", fmtErrorf("relinka: already prefixed").Error())

	a, b := errors.New("a"), errors.New("b")
	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, a, combineErrors(a, nil))
	assert.Equal(t, b, combineErrors(nil, b))
	assert.ErrorIs(t, combineErrors(a, b), b)
}

func TestFatalError(t *testing.T) {
	var err error = &FatalError{Message: "halt"}
	assert.Equal(t, "fatal error: halt", err.Error())
	assert.True(t, IsFatal(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsFatal(errors.New("plain")))
}
