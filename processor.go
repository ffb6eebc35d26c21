package relinka

import (
	"context"
	"time"

	"github.com/lixenwraith/relinka/formatter"
)

// processBuffers is the buffer age sweep loop running in a separate goroutine
func (l *Logger) processBuffers(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timers := l.setupProcessingTimers()
	defer l.closeProcessingTimers(timers)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-timers.sweepTicker.C:
			l.adjustSweepInterval(timers)
			maxAge := time.Duration(l.getConfig().MaxBufferAgeMs) * time.Millisecond
			l.writer.sweep(maxAge)
		}
	}
}

// processLogRecord renders a record that passed the throttle and routes it to
// the console and, when enabled, the buffered log file
func (l *Logger) processLogRecord(record logRecord) {
	cfg := l.getConfig()
	f := l.getFormatter()

	line := f.Format(string(record.Level), record.Message, record.Args, record.TimeStamp)
	l.writeConsole(cfg, f, record.Level, line)
	l.state.TotalEmitted.Add(1)

	if cfg.SaveLogsToFile {
		path := l.currentLogFilePath(cfg, record.TimeStamp)
		l.writer.enqueue(path, line, cfg.BufferSize)
	}
}

// writeConsole prints line to stderr for error, fatal and warn and to stdout
// otherwise, wrapped in the level color unless colors are disabled
func (l *Logger) writeConsole(cfg *Config, f *formatter.Formatter, level Level, line string) {
	w := l.stdout
	switch level {
	case LevelError, LevelFatal, LevelWarn:
		w = l.stderr
	}

	if !cfg.DisableColors {
		line = formatter.Colorize(f.StyleFor(string(level)).Color, line) + formatter.Reset
	}

	l.outMu.Lock()
	defer l.outMu.Unlock()
	_, _ = w.Write([]byte(line + "\n"))
}
