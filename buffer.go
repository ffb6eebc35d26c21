package relinka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// logBuffer holds formatted lines for one log file that are not yet on disk
type logBuffer struct {
	filePath      string
	entries       []string
	byteSize      int64 // Sum of entry lengths plus one newline each
	lastFlushTime time.Time
}

// bufferedWriter batches lines per file path. Physical writes for every path
// go through one chain so they reach disk in the order they were flushed.
type bufferedWriter struct {
	mu      sync.Mutex
	buffers map[string]*logBuffer
	tail    chan struct{} // Closed when the most recently queued write finishes

	fs  afero.Fs
	now func() time.Time

	onWritten func(path string)
	onFailed  func(path string, err error)
}

func newBufferedWriter(fs afero.Fs) *bufferedWriter {
	tail := make(chan struct{})
	close(tail)
	return &bufferedWriter{
		buffers: make(map[string]*logBuffer),
		tail:    tail,
		fs:      fs,
		now:     time.Now,
	}
}

// enqueue appends line to the buffer of path. When the buffer reaches
// threshold bytes it is flushed; the returned channel closes once that write
// completes. Without a flush the channel is already closed.
func (w *bufferedWriter) enqueue(path, line string, threshold int64) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf, ok := w.buffers[path]
	if !ok {
		buf = &logBuffer{filePath: path, lastFlushTime: w.now()}
		w.buffers[path] = buf
	}
	buf.entries = append(buf.entries, line)
	buf.byteSize += int64(len(line)) + 1

	if buf.byteSize >= threshold {
		return w.flushLocked(buf)
	}
	return closedChan
}

// flushLocked detaches the pending lines of buf and chains their write.
// An empty buffer returns the chain tail so callers still wait for
// in-flight writes.
func (w *bufferedWriter) flushLocked(buf *logBuffer) chan struct{} {
	if len(buf.entries) == 0 {
		return w.tail
	}

	data := strings.Join(buf.entries, "\n") + "\n"
	buf.entries = nil
	buf.byteSize = 0
	buf.lastFlushTime = w.now()

	prev := w.tail
	done := make(chan struct{})
	w.tail = done

	go func(path string) {
		<-prev
		err := appendToFile(w.fs, path, []byte(data))
		close(done)
		if err != nil {
			if w.onFailed != nil {
				w.onFailed(path, err)
			}
			return
		}
		if w.onWritten != nil {
			w.onWritten(path)
		}
	}(buf.filePath)

	return done
}

// truncate empties path on disk once every write queued before it has
// finished. Lines still buffered for path are kept and land after the
// truncation.
func (w *bufferedWriter) truncate(ctx context.Context, path string) error {
	w.mu.Lock()
	prev := w.tail
	done := make(chan struct{})
	w.tail = done
	w.mu.Unlock()

	var err error
	go func() {
		<-prev
		err = truncateFile(w.fs, path)
		close(done)
	}()

	if waitErr := waitDone(ctx, done); waitErr != nil {
		return waitErr
	}
	return err
}

// flushOne writes the pending lines of path and waits for the write
func (w *bufferedWriter) flushOne(ctx context.Context, path string) error {
	w.mu.Lock()
	var done chan struct{}
	if buf, ok := w.buffers[path]; ok {
		done = w.flushLocked(buf)
	} else {
		done = w.tail
	}
	w.mu.Unlock()

	return waitDone(ctx, done)
}

// flushAll writes every pending buffer and waits until the chain drains
func (w *bufferedWriter) flushAll(ctx context.Context) error {
	w.mu.Lock()
	for _, buf := range w.buffers {
		w.flushLocked(buf)
	}
	done := w.tail
	w.mu.Unlock()

	return waitDone(ctx, done)
}

// sweep flushes every non-empty buffer older than maxAge
func (w *bufferedWriter) sweep(maxAge time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	flushed := 0
	for _, buf := range w.buffers {
		if len(buf.entries) > 0 && now.Sub(buf.lastFlushTime) >= maxAge {
			w.flushLocked(buf)
			flushed++
		}
	}
	return flushed
}

// pending returns a copy of the unflushed lines of path and their byte count
func (w *bufferedWriter) pending(path string) ([]string, int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	buf, ok := w.buffers[path]
	if !ok {
		return nil, 0
	}
	return append([]string(nil), buf.entries...), buf.byteSize
}

func (w *bufferedWriter) pathCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buffers)
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func waitDone(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmtErrorf("timeout waiting for log buffers to flush: %w", ctx.Err())
	}
}
