package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next"`
}

func TestFormatter(t *testing.T) {
	timestamp := time.Date(2024, 1, 2, 3, 4, 5, 67*int(time.Millisecond), time.UTC)

	t.Run("fluent API", func(t *testing.T) {
		f := New().
			ShowTimestamp(true).
			TimestampFormat("HH:mm:ss").
			Unicode(true)

		line := f.Format("info", "hello", nil, timestamp)
		assert.Equal(t, "[03:04:05] ◈   hello", line)
	})

	t.Run("no timestamp by default", func(t *testing.T) {
		line := New().Format("success", "done", nil, timestamp)
		assert.Equal(t, "✓   done", line)
	})

	t.Run("fallback symbols", func(t *testing.T) {
		f := New().Unicode(false)
		assert.Equal(t, "[ERR]   failed", f.Format("error", "failed", nil, timestamp))
		assert.Equal(t, "|   plain", f.Format("log", "plain", nil, timestamp))
	})

	t.Run("unknown level", func(t *testing.T) {
		f := New()
		style := f.StyleFor("custom")
		assert.Equal(t, "[CUSTOM]", style.Symbol)
		assert.Equal(t, "dim", style.Color)
		assert.Equal(t, "[CUSTOM]   text", f.Format("custom", "text", nil, timestamp))
	})

	t.Run("null level has no decoration", func(t *testing.T) {
		f := New().ShowTimestamp(false)
		assert.Equal(t, "raw passthrough", f.Format("null", "raw passthrough", nil, timestamp))
		assert.Equal(t, 0, f.StyleFor("null").Spacing)
	})

	t.Run("custom styles", func(t *testing.T) {
		styles := MergeStyles(DefaultStyles(), map[string]Style{
			"info": {Symbol: "i", Spacing: 1},
		})
		f := New().Styles(styles)
		assert.Equal(t, "i info", f.Format("info", "info", nil, timestamp))
		assert.Equal(t, "cyanBright", f.StyleFor("info").Color)
	})
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 11, 9, 8, 7, 6, 5*int(time.Millisecond), time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"YYYY-MM-DD HH:mm:ss.SSS", "2024-11-09 08:07:06.005"},
		{"HH:mm", "08:07"},
		{"DD/MM/YYYY", "09/11/2024"},
		{"", "2024-11-09 08:07:06.005"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.format, ts))
		})
	}
}

func TestFormatDetails(t *testing.T) {
	t.Run("no details", func(t *testing.T) {
		assert.Equal(t, "", FormatDetails(nil))
	})

	t.Run("primitive", func(t *testing.T) {
		assert.Equal(t, " 42", FormatDetails([]any{42}))
		assert.Equal(t, " text", FormatDetails([]any{"text"}))
		assert.Equal(t, " true", FormatDetails([]any{true}))
		assert.Equal(t, " null", FormatDetails([]any{nil}))
	})

	t.Run("error", func(t *testing.T) {
		got := FormatDetails([]any{errors.New("disk full")})
		assert.Equal(t, "\nStack Trace: disk full", got)
	})

	t.Run("object as indented JSON", func(t *testing.T) {
		got := FormatDetails([]any{map[string]int{"a": 1}})
		assert.Equal(t, " {\n  \"a\": 1\n}", got)
	})

	t.Run("multiple args render as a list", func(t *testing.T) {
		got := FormatDetails([]any{"a", 1})
		assert.Equal(t, " [\n  \"a\",\n  1\n]", got)
	})

	t.Run("circular reference falls back to placeholder", func(t *testing.T) {
		n := &node{Name: "loop"}
		n.Next = n

		var got string
		require.NotPanics(t, func() {
			got = FormatDetails([]any{n})
		})
		assert.Equal(t, " "+Placeholder, got)
	})

	t.Run("stringer", func(t *testing.T) {
		assert.Equal(t, " 1s", FormatDetails([]any{time.Second}))
	})
}

func TestBox(t *testing.T) {
	boxed := Box("hi\nlonger line")
	lines := strings.Split(boxed, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "┌"+strings.Repeat("─", 15)+"┐", lines[0])
	assert.Equal(t, "│  hi           │", lines[1])
	assert.Equal(t, "│  longer line  │", lines[2])
	assert.Equal(t, "└"+strings.Repeat("─", 15)+"┘", lines[3])

	f := New()
	line := f.Format("box", "title", nil, time.Now())
	assert.True(t, strings.HasPrefix(line, "┌"))
	assert.Contains(t, line, "■ title")
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "\x1b[91mboom\x1b[39m", Colorize("redBright", "boom"))
	assert.Equal(t, "\x1b[2mx\x1b[22m", Colorize("no-such-color", "x"))
	assert.Equal(t, "boom", StripANSI(Colorize("redBright", "boom")+Reset))
	assert.True(t, IsKnownColor("cyan"))
	assert.False(t, IsKnownColor("chartreuse"))
}

func TestIsUnicodeSupported(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	assert.True(t, isUnicodeSupported(env(map[string]string{"TERM_PROGRAM": "vscode"}), "windows", 6))
	assert.True(t, isUnicodeSupported(env(nil), "linux", 0))
	assert.True(t, isUnicodeSupported(env(nil), "windows", 10))
	assert.False(t, isUnicodeSupported(env(nil), "windows", 6))
	assert.True(t, isUnicodeSupported(env(map[string]string{"TERM_PROGRAM": "mintty"}), "windows", 6))
}
