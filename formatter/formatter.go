// Package formatter renders log records into display lines: optional
// timestamp prefix, level symbol, message, serialized details and the
// box framing used by the box level.
package formatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimestampFormat is used when no pattern is configured.
// Tokens: YYYY, MM, DD, HH, mm, ss, SSS.
const DefaultTimestampFormat = "YYYY-MM-DD HH:mm:ss.SSS"

// Placeholder replaces object details that cannot be serialized
const Placeholder = "[unserializable value]"

// Formatter turns (level, message, details) into a single display string.
// Configure it with the fluent setters before sharing; Format does not mutate.
type Formatter struct {
	styles           map[string]Style
	timestampEnabled bool
	timestampFormat  string
	unicode          bool
}

// New creates a formatter with the default style table, timestamps off and
// Unicode symbols on
func New() *Formatter {
	return &Formatter{
		styles:          DefaultStyles(),
		timestampFormat: DefaultTimestampFormat,
		unicode:         true,
	}
}

// Styles replaces the level style table
func (f *Formatter) Styles(styles map[string]Style) *Formatter {
	if styles != nil {
		f.styles = styles
	}
	return f
}

// ShowTimestamp toggles the bracketed timestamp prefix
func (f *Formatter) ShowTimestamp(show bool) *Formatter {
	f.timestampEnabled = show
	return f
}

// TimestampFormat sets the token pattern for timestamps
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// Unicode selects symbols (true) or fallback symbols (false)
func (f *Formatter) Unicode(supported bool) *Formatter {
	f.unicode = supported
	return f
}

// StyleFor resolves the effective style of a level: the symbol matching the
// terminal capability and its spacing. Unknown levels get a bracketed
// uppercase label in the neutral color.
func (f *Formatter) StyleFor(level string) Style {
	style, ok := f.styles[level]
	if !ok {
		return Style{
			Symbol:  "[" + strings.ToUpper(level) + "]",
			Color:   neutralColor,
			Spacing: defaultSpacing,
		}
	}

	if level == "null" {
		return Style{Color: style.Color}
	}

	symbol := style.Symbol
	if !f.unicode {
		symbol = style.FallbackSymbol
		if symbol == "" {
			symbol = "[" + strings.ToUpper(level) + "]"
		}
	}

	spacing := style.Spacing
	if spacing == 0 {
		spacing = defaultSpacing
	} else if spacing < 0 {
		spacing = 0
	}

	return Style{
		Symbol:         symbol,
		FallbackSymbol: style.FallbackSymbol,
		Color:          style.Color,
		Spacing:        spacing,
	}
}

// Format renders a record. Details are the caller's extra arguments: none
// renders nothing, one renders that value, several render as a list.
func (f *Formatter) Format(level, message string, args []any, ts time.Time) string {
	style := f.StyleFor(level)

	var sb strings.Builder
	if f.timestampEnabled {
		sb.WriteByte('[')
		sb.WriteString(f.Timestamp(ts))
		sb.WriteString("] ")
	}
	if style.Symbol != "" {
		sb.WriteString(style.Symbol)
		sb.WriteString(strings.Repeat(" ", style.Spacing))
	}
	sb.WriteString(message)
	sb.WriteString(FormatDetails(args))

	content := sb.String()
	if level == "box" {
		content = Box(content)
	}
	return content
}

// Timestamp renders t using the configured token pattern.
// Each token is substituted once, left to right.
func (f *Formatter) Timestamp(t time.Time) string {
	return FormatTimestamp(f.timestampFormat, t)
}

// FormatTimestamp renders t with a YYYY/MM/DD/HH/mm/ss/SSS token pattern
func FormatTimestamp(format string, t time.Time) string {
	if format == "" {
		format = DefaultTimestampFormat
	}
	r := format
	r = strings.Replace(r, "YYYY", strconv.Itoa(t.Year()), 1)
	r = strings.Replace(r, "MM", pad(int(t.Month()), 2), 1)
	r = strings.Replace(r, "DD", pad(t.Day(), 2), 1)
	r = strings.Replace(r, "HH", pad(t.Hour(), 2), 1)
	r = strings.Replace(r, "mm", pad(t.Minute(), 2), 1)
	r = strings.Replace(r, "ss", pad(t.Second(), 2), 1)
	r = strings.Replace(r, "SSS", pad(t.Nanosecond()/int(time.Millisecond), 3), 1)
	return r
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// FormatDetails serializes the extra arguments of a log call
func FormatDetails(args []any) string {
	switch len(args) {
	case 0:
		return ""
	case 1:
		return FormatValue(args[0])
	default:
		return FormatValue(args)
	}
}

// FormatValue serializes a single detail value with its leading separator.
// Errors render as a stack trace block, objects as indented JSON with a
// placeholder when they cannot be encoded, everything else as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return " null"
	case error:
		// %+v yields a stack for errors that carry one, the message otherwise
		return "\nStack Trace: " + fmt.Sprintf("%+v", val)
	case string:
		return " " + val
	case []byte:
		return " " + string(val)
	case fmt.Stringer:
		return " " + val.String()
	}

	if isObject(v) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return " " + Placeholder
		}
		return " " + string(data)
	}

	return " " + fmt.Sprint(v)
}

// isObject reports whether v is a composite value rendered as JSON
func isObject(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// Box frames text in a rectangular border sized to its longest line
func Box(text string) string {
	lines := strings.Split(text, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := utf8.RuneCountInString(line); w > maxWidth {
			maxWidth = w
		}
	}
	width := maxWidth + 4

	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for _, line := range lines {
		padding := width - utf8.RuneCountInString(line) - 2
		sb.WriteString("│  " + line + strings.Repeat(" ", padding) + "│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", width) + "┘")
	return sb.String()
}
