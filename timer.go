package relinka

import "time"

// TimerSet holds all timers used in processBuffers
type TimerSet struct {
	sweepTicker   *time.Ticker
	sweepInterval time.Duration
}

// setupProcessingTimers creates and configures all necessary timers for the processor
func (l *Logger) setupProcessingTimers() *TimerSet {
	timers := &TimerSet{}

	c := l.getConfig()
	timers.sweepInterval = sweepInterval(c.MaxBufferAgeMs)
	timers.sweepTicker = time.NewTicker(timers.sweepInterval)

	return timers
}

// closeProcessingTimers stops all active timers
func (l *Logger) closeProcessingTimers(timers *TimerSet) {
	timers.sweepTicker.Stop()
}

// adjustSweepInterval follows max_buffer_age_ms after a reconfiguration
func (l *Logger) adjustSweepInterval(timers *TimerSet) {
	want := sweepInterval(l.getConfig().MaxBufferAgeMs)
	if want != timers.sweepInterval {
		timers.sweepInterval = want
		timers.sweepTicker.Reset(want)
	}
}

// sweepInterval is half the max buffer age, capped at maxSweepInterval
func sweepInterval(maxBufferAgeMs int64) time.Duration {
	interval := time.Duration(maxBufferAgeMs) * time.Millisecond / 2
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	if interval < minWaitTime {
		interval = minWaitTime
	}
	return interval
}
