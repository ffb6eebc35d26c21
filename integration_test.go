package relinka

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".reliverse", "relinka.yaml"), `
save_logs_to_file: true
disable_colors: true
log_file_path: logs/app.log
name_with_date: append-after
timestamp_enabled: true
timestamp_format: "YYYY-MM-DD"
max_buffer_age_ms: 50
`)

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	logger := NewLogger(
		WithOutput(stdout, stderr),
		WithUnicode(false),
		WithBaseDir(dir),
		WithResolver(NewResolver(WithSearchDir(dir))),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, logger.Start(ctx))
	_, err := logger.EnsureConfig(ctx, true)
	require.NoError(t, err)

	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message", fmt.Errorf("disk full"))
	logger.Box("boxed")
	require.Error(t, logger.EmitContext(ctx, LevelFatal, "fatal message"))

	require.NoError(t, logger.ApplyConfigString("level=warn"))
	logger.Info("filtered message")

	require.NoError(t, logger.Shutdown(ctx))

	today := time.Now().Format("2006-01-02")
	path := filepath.Join(dir, "logs", "app-"+today+".log")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "["+today+"] [i]   info message")
	assert.Contains(t, content, "[WARN]   warning message")
	assert.Contains(t, content, "error message\nStack Trace: disk full")
	assert.Contains(t, content, "┌")
	assert.Contains(t, content, "[FATAL]   fatal message")
	assert.NotContains(t, content, "filtered message")

	assert.Contains(t, stdout.String(), "info message")
	assert.Contains(t, stderr.String(), "fatal message")
}

func TestConcurrentLogging(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.BufferSize = 256
		cfg.ThrottleMs = 0
	})
	require.NoError(t, logger.Start(context.Background()))

	const goroutines, perGoroutine = 8, 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Info(fmt.Sprintf("worker %d line %d", id, i))
			}
		}(g)
	}
	wg.Wait()

	require.NoError(t, logger.FlushAll(context.Background()))

	content := readFile(t, filepath.Join(out.dir, "logs.log"))
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	assert.Len(t, lines, goroutines*perGoroutine)
	assert.Len(t, out.stdout.Lines(), goroutines*perGoroutine)

	// File order matches console order
	assert.Equal(t, out.stdout.Lines(), lines)
}
