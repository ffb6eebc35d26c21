package relinka

import (
	"time"
)

// Level names a log level. The set below is the default; any other name is
// accepted and rendered with a neutral fallback style.
type Level string

// Built-in levels
const (
	LevelError    Level = "error"
	LevelFatal    Level = "fatal"
	LevelWarn     Level = "warn"
	LevelInfo     Level = "info"
	LevelSuccess  Level = "success"
	LevelVerbose  Level = "verbose"
	LevelLog      Level = "log"
	LevelInternal Level = "internal"
	LevelNull     Level = "null"
	LevelStep     Level = "step"
	LevelBox      Level = "box"
	LevelMessage  Level = "message"
)

// Severity thresholds, lower is more severe
const (
	SeverityFatal    int64 = 0
	SeverityError    int64 = 0
	SeverityWarn     int64 = 1
	SeverityLog      int64 = 2
	SeverityInfo     int64 = 3
	SeverityInternal int64 = 4
	SeverityVerbose  int64 = 5
)

// Name-date modes for the log file name
const (
	NameWithDateDisable      = "disable"
	NameWithDateAppendBefore = "append-before"
	NameWithDateAppendAfter  = "append-after"
)

// Storage
const (
	// Extension recognized by cleanup and appended to bare file names
	logExtension = ".log"
	// Fallback file name when the configured one is empty
	defaultLogFileName = "logs.log"
	// Permissions for created directories and files
	dirPerm  = 0o755
	filePerm = 0o644
)

// Timers
const (
	// Upper bound for the buffer age sweep interval
	maxSweepInterval = 2500 * time.Millisecond
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Time allowed for the final flush when a signal arrives
	signalFlushTimeout = 5 * time.Second
)

// removeConcurrency bounds parallel removals during retention cleanup
const removeConcurrency = 8

// repeatSuffixFormat is appended to the summary line of a suppressed run
const repeatSuffixFormat = "(repeated %d times)"

// envPrefix prefixes configuration keys read from the environment
const envPrefix = "RELINKA_"

// configPrefix is the key namespace inside TOML configuration files
const configPrefix = "relinka."

// configSection is the TOML table holding the configuration keys
const configSection = "relinka"

// configName is the base name searched for during config discovery
const configName = "relinka"

// configSubdir is searched before the project root during discovery
const configSubdir = ".reliverse"
