package relinka

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the logger
type State struct {
	Started        atomic.Bool
	ShutdownCalled atomic.Bool
	FreshLogDone   atomic.Bool // The log file was truncated for this session

	LoggerStartTime atomic.Value // stores time.Time for uptime calculation

	// Counters reported by Stats
	TotalEmitted    atomic.Uint64 // Records written to the console, summaries included
	TotalSuppressed atomic.Uint64 // Repeats swallowed by the throttle
	TotalFiltered   atomic.Uint64 // Records below the level threshold
	TotalFlushes    atomic.Uint64 // Successful buffer writes
	TotalFailures   atomic.Uint64 // Failed appends or unlinks
	TotalDeletions  atomic.Uint64 // Log files removed by cleanup
}

// Stats returns a snapshot of the logger counters
func (l *Logger) Stats() Stats {
	var uptime time.Duration
	if start, ok := l.state.LoggerStartTime.Load().(time.Time); ok {
		uptime = time.Since(start)
	}
	return Stats{
		RecordsEmitted:    l.state.TotalEmitted.Load(),
		RecordsSuppressed: l.state.TotalSuppressed.Load(),
		RecordsFiltered:   l.state.TotalFiltered.Load(),
		Flushes:           l.state.TotalFlushes.Load(),
		WriteFailures:     l.state.TotalFailures.Load(),
		FilesDeleted:      l.state.TotalDeletions.Load(),
		BufferedPaths:     l.writer.pathCount(),
		Uptime:            uptime,
	}
}
