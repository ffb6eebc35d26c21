package relinka

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// cleaner deletes the oldest log files beyond the retention count. Runs are
// debounced: a trigger inside the interval schedules one deferred run.
type cleaner struct {
	mu          sync.Mutex
	lastCleanup time.Time
	scheduled   bool
	timer       *time.Timer
	stopped     bool

	fs     afero.Fs
	now    func() time.Time
	config func() (*Config, string) // Current config and the active log file path

	onDeleted func(path string)
	onFailed  func(path string, err error)
}

func newCleaner(fs afero.Fs, config func() (*Config, string)) *cleaner {
	return &cleaner{fs: fs, now: time.Now, config: config}
}

// trigger runs cleanup now, or schedules it for the end of the debounce
// interval. Returns true when a run happened synchronously.
func (c *cleaner) trigger() bool {
	cfg, logPath := c.config()
	if !cfg.SaveLogsToFile || cfg.MaxLogFiles <= 0 {
		return false
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return false
	}

	interval := time.Duration(cfg.CleanupIntervalMs) * time.Millisecond
	elapsed := c.now().Sub(c.lastCleanup)
	if !c.lastCleanup.IsZero() && elapsed < interval {
		if !c.scheduled {
			c.scheduled = true
			c.timer = time.AfterFunc(interval-elapsed, c.runScheduled)
		}
		c.mu.Unlock()
		return false
	}
	c.lastCleanup = c.now()
	c.mu.Unlock()

	c.run(filepath.Dir(logPath), int(cfg.MaxLogFiles))
	return true
}

func (c *cleaner) runScheduled() {
	c.mu.Lock()
	c.scheduled = false
	c.timer = nil
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.lastCleanup = c.now()
	c.mu.Unlock()

	cfg, logPath := c.config()
	if !cfg.SaveLogsToFile || cfg.MaxLogFiles <= 0 {
		return
	}
	c.run(filepath.Dir(logPath), int(cfg.MaxLogFiles))
}

// run keeps the newest maxFiles log files under dir and removes the rest in
// parallel. Individual failures are reported and do not stop other deletions.
func (c *cleaner) run(dir string, maxFiles int) int {
	files, err := scanLogFiles(c.fs, dir)
	if err != nil {
		if c.onFailed != nil {
			c.onFailed(dir, err)
		}
		return 0
	}
	if len(files) <= maxFiles {
		return 0
	}

	var (
		mu      sync.Mutex
		deleted int
	)
	var g errgroup.Group
	g.SetLimit(removeConcurrency)
	for _, file := range files[maxFiles:] {
		path := file.Path
		g.Go(func() error {
			if err := c.fs.Remove(path); err != nil {
				if c.onFailed != nil {
					c.onFailed(path, fmtErrorf("failed to remove old log file '%s': %w", path, err))
				}
				return nil
			}
			mu.Lock()
			deleted++
			mu.Unlock()
			if c.onDeleted != nil {
				c.onDeleted(path)
			}
			return nil
		})
	}
	_ = g.Wait()
	return deleted
}

// stop cancels a scheduled run and disables further triggers
func (c *cleaner) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.scheduled = false
}
