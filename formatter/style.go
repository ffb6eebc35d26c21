package formatter

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

// Style describes how a level is decorated on output
type Style struct {
	Symbol         string `yaml:"symbol"`
	FallbackSymbol string `yaml:"fallbackSymbol"`
	Color          string `yaml:"color"`
	Spacing        int    `yaml:"spacing"`
}

// defaultSpacing applies when a style leaves spacing unset
const defaultSpacing = 3

// neutralColor is used for levels without a configured style
const neutralColor = "dim"

var defaultStyles = map[string]Style{
	"success":  {Symbol: "✓", FallbackSymbol: "[OK]", Color: "greenBright", Spacing: 3},
	"info":     {Symbol: "◈", FallbackSymbol: "[i]", Color: "cyanBright", Spacing: 3},
	"error":    {Symbol: "✖", FallbackSymbol: "[ERR]", Color: "redBright", Spacing: 3},
	"warn":     {Symbol: "⚠", FallbackSymbol: "[WARN]", Color: "yellowBright", Spacing: 3},
	"fatal":    {Symbol: "‼", FallbackSymbol: "[FATAL]", Color: "redBright", Spacing: 3},
	"verbose":  {Symbol: "✱", FallbackSymbol: "[VERBOSE]", Color: "gray", Spacing: 3},
	"internal": {Symbol: "⚙", FallbackSymbol: "[INTERNAL]", Color: "magentaBright", Spacing: 3},
	"log":      {Symbol: "│", FallbackSymbol: "|", Color: "dim", Spacing: 3},
	"step":     {Symbol: "→", FallbackSymbol: "[STEP]", Color: "blueBright", Spacing: 3},
	"box":      {Symbol: "■", FallbackSymbol: "[BOX]", Color: "whiteBright", Spacing: 1},
	"message":  {Symbol: "🞠", FallbackSymbol: "[MSG]", Color: "cyan", Spacing: 3},
	"null":     {Symbol: "", FallbackSymbol: "", Color: "dim", Spacing: 0},
}

// DefaultStyles returns a copy of the built-in level style table
func DefaultStyles() map[string]Style {
	styles := make(map[string]Style, len(defaultStyles))
	for level, style := range defaultStyles {
		styles[level] = style
	}
	return styles
}

// MergeStyles overlays custom styles on top of base, returning a new table.
// Zero-valued fields in an override keep the base value.
func MergeStyles(base, overrides map[string]Style) map[string]Style {
	merged := make(map[string]Style, len(base)+len(overrides))
	for level, style := range base {
		merged[level] = style
	}
	for level, override := range overrides {
		style, ok := merged[level]
		if !ok {
			merged[level] = override
			continue
		}
		if override.Symbol != "" {
			style.Symbol = override.Symbol
		}
		if override.FallbackSymbol != "" {
			style.FallbackSymbol = override.FallbackSymbol
		}
		if override.Color != "" {
			style.Color = override.Color
		}
		if override.Spacing != 0 {
			style.Spacing = override.Spacing
		}
		merged[level] = style
	}
	return merged
}

// ANSI SGR open/close pairs keyed by color name
var colorCodes = map[string][2]string{
	"reset":     {"\x1b[0m", "\x1b[0m"},
	"bold":      {"\x1b[1m", "\x1b[22m"},
	"dim":       {"\x1b[2m", "\x1b[22m"},
	"italic":    {"\x1b[3m", "\x1b[23m"},
	"underline": {"\x1b[4m", "\x1b[24m"},
	"inverse":   {"\x1b[7m", "\x1b[27m"},
	"hidden":    {"\x1b[8m", "\x1b[28m"},

	"black":   {"\x1b[30m", "\x1b[39m"},
	"red":     {"\x1b[31m", "\x1b[39m"},
	"green":   {"\x1b[32m", "\x1b[39m"},
	"yellow":  {"\x1b[33m", "\x1b[39m"},
	"blue":    {"\x1b[34m", "\x1b[39m"},
	"magenta": {"\x1b[35m", "\x1b[39m"},
	"cyan":    {"\x1b[36m", "\x1b[39m"},
	"white":   {"\x1b[37m", "\x1b[39m"},
	"gray":    {"\x1b[90m", "\x1b[39m"},

	"blackBright":   {"\x1b[90m", "\x1b[39m"},
	"redBright":     {"\x1b[91m", "\x1b[39m"},
	"greenBright":   {"\x1b[92m", "\x1b[39m"},
	"yellowBright":  {"\x1b[93m", "\x1b[39m"},
	"blueBright":    {"\x1b[94m", "\x1b[39m"},
	"magentaBright": {"\x1b[95m", "\x1b[39m"},
	"cyanBright":    {"\x1b[96m", "\x1b[39m"},
	"whiteBright":   {"\x1b[97m", "\x1b[39m"},
}

// Reset is the SGR sequence that clears all attributes
const Reset = "\x1b[0m"

// Colorize wraps text in the escape codes for the named color.
// Unknown names fall back to dim. Embedded close codes are re-opened so that
// nested coloring does not bleed.
func Colorize(color, text string) string {
	codes, ok := colorCodes[color]
	if !ok {
		codes = colorCodes[neutralColor]
	}
	if strings.Contains(text, codes[1]) {
		text = strings.ReplaceAll(text, codes[1], codes[1]+codes[0])
	}
	return codes[0] + text + codes[1]
}

// IsKnownColor reports whether Colorize has escape codes for color
func IsKnownColor(color string) bool {
	_, ok := colorCodes[color]
	return ok
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape sequences from s
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// IsUnicodeSupported guesses whether the attached terminal renders Unicode
// symbols, using the same environment hints popular terminals export.
func IsUnicodeSupported() bool {
	return isUnicodeSupported(os.Getenv, runtime.GOOS, windowsMajorVersion())
}

func isUnicodeSupported(getenv func(string) string, goos string, winMajor uint32) bool {
	switch {
	case getenv("TERM_PROGRAM") == "vscode",
		getenv("WT_SESSION") != "",
		getenv("TERM_PROGRAM") == "iTerm.app",
		getenv("TERM_PROGRAM") == "hyper",
		getenv("TERMINAL_EMULATOR") == "JetBrains-JediTerm",
		getenv("ConEmuTask") == "{cmd::Cmder}",
		getenv("TERM") == "xterm-256color":
		return true
	}

	if goos == "windows" {
		// Windows 10 console hosts render Unicode, mintty always has
		return winMajor >= 10 || getenv("TERM_PROGRAM") == "mintty"
	}

	return true
}
