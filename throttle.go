package relinka

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type throttleState int

const (
	throttleIdle throttleState = iota
	throttleSuppressing
)

// throttle collapses runs of identical records. Within the window the first
// min+1 repeats are emitted, the rest are counted and replaced by a single
// summary emitted when the run ends.
type throttle struct {
	mu sync.Mutex

	state      throttleState
	lastObject *logRecord // Last emitted record
	key        string     // Key of the most recent call
	keyValid   bool
	count      int64 // Matching calls since lastObject was emitted
	lastTime   time.Time
	seen       bool

	min        int64
	timer      *time.Timer
	generation uint64 // Invalidates fired timers that lost a race with a reschedule
	closed     bool

	deliver    func(logRecord)
	onSuppress func()
}

func newThrottle(deliver func(logRecord), onSuppress func()) *throttle {
	return &throttle{deliver: deliver, onSuppress: onSuppress}
}

// submit routes a record through the throttle. window <= 0 disables suppression.
func (t *throttle) submit(rec logRecord, window time.Duration, min int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		t.deliver(rec)
		return
	}

	var diff time.Duration
	if t.seen {
		diff = rec.TimeStamp.Sub(t.lastTime)
	}
	t.lastTime = rec.TimeStamp
	t.seen = true
	t.min = min

	if diff >= window {
		t.flushPendingLocked()
		t.key, t.keyValid = "", false
		if key, err := throttleKey(rec); err == nil {
			t.key, t.keyValid = key, true
		}
		t.count = 0
		t.emitLocked(rec)
		return
	}

	key, err := throttleKey(rec)
	if err != nil {
		// Unserializable records are never treated as repeats
		t.flushPendingLocked()
		t.key, t.keyValid = "", false
		t.count = 0
		t.emitLocked(rec)
		return
	}

	if t.keyValid && key == t.key {
		t.count++
		if t.count > min {
			t.state = throttleSuppressing
			t.scheduleLocked(window)
			if t.onSuppress != nil {
				t.onSuppress()
			}
			return
		}
		t.emitLocked(rec)
		return
	}

	t.flushPendingLocked()
	t.key, t.keyValid = key, true
	t.count = 0
	t.emitLocked(rec)
}

func (t *throttle) emitLocked(rec logRecord) {
	t.lastObject = &rec
	t.deliver(rec)
}

// flushPendingLocked emits the summary of a suppressed run, if any
func (t *throttle) flushPendingLocked() {
	t.cancelLocked()
	if t.state != throttleSuppressing {
		return
	}
	t.state = throttleIdle

	repeated := t.count - t.min
	t.count = 0
	if t.lastObject == nil || repeated <= 0 {
		return
	}

	summary := *t.lastObject
	summary.TimeStamp = time.Now()
	if repeated > 1 {
		summary = summary.withArgs(fmt.Sprintf(repeatSuffixFormat, repeated))
	}
	t.deliver(summary)
}

func (t *throttle) scheduleLocked(window time.Duration) {
	t.cancelLocked()
	gen := t.generation
	t.timer = time.AfterFunc(window, func() {
		t.fire(gen)
	})
}

func (t *throttle) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.generation++
}

// fire runs when a suppressed run has seen no repeat for a full window
func (t *throttle) fire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || gen != t.generation {
		return
	}
	t.timer = nil
	t.flushPendingLocked()
}

// pending reports whether a summary is waiting on its timer
func (t *throttle) pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == throttleSuppressing
}

// stop cancels the pending summary; later records pass straight through
func (t *throttle) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.closed = true
	t.state = throttleIdle
	t.count = 0
}

// throttleKey builds the equality key of a record. Errors are keyed by their
// text since they usually marshal to an empty object.
func throttleKey(rec logRecord) (string, error) {
	args := make([]any, len(rec.Args))
	for i, arg := range rec.Args {
		if err, ok := arg.(error); ok {
			args[i] = err.Error()
			continue
		}
		args[i] = arg
	}
	data, err := json.Marshal([]any{string(rec.Level), rec.Message, args})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
