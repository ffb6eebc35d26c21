package relinka

import (
	"time"
)

// logRecord represents a single log call
type logRecord struct {
	Level     Level
	Message   string
	Args      []any
	TimeStamp time.Time
}

// withArgs returns a copy of the record with extra args appended
func (r logRecord) withArgs(extra ...any) logRecord {
	args := make([]any, 0, len(r.Args)+len(extra))
	args = append(args, r.Args...)
	args = append(args, extra...)
	r.Args = args
	return r
}

// LogFileInfo is a log file found during a cleanup scan
type LogFileInfo struct {
	Path    string
	ModTime time.Time
}

// Stats is a point-in-time snapshot of logger counters
type Stats struct {
	RecordsEmitted    uint64
	RecordsSuppressed uint64
	RecordsFiltered   uint64
	Flushes           uint64
	WriteFailures     uint64
	FilesDeleted      uint64
	BufferedPaths     int
	Uptime            time.Duration
}
