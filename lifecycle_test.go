package relinka

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStartShutdown verifies the lifecycle is idempotent
func TestStartShutdown(t *testing.T) {
	logger, _ := createTestLogger(t, nil)
	ctx := context.Background()

	require.NoError(t, logger.Start(ctx))
	require.NoError(t, logger.Start(ctx), "second start is a no-op")
	assert.True(t, logger.state.Started.Load())

	require.NoError(t, logger.Shutdown(ctx))
	require.NoError(t, logger.Shutdown(ctx), "second shutdown is a no-op")

	assert.Error(t, logger.Start(ctx), "cannot restart after shutdown")
}

// TestShutdownWithoutStart verifies shutdown works on a never started logger
func TestShutdownWithoutStart(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
	})

	logger.Info("pending line")
	require.NoError(t, logger.Shutdown(context.Background()))

	assert.Contains(t, readFile(t, filepath.Join(out.dir, "logs.log")), "pending line")
}

// TestShutdownFlushesBuffers verifies buffered lines reach disk on shutdown
func TestShutdownFlushesBuffers(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.LogFilePath = "app.log"
		cfg.MaxBufferAgeMs = 60000
	})
	require.NoError(t, logger.Start(context.Background()))

	logger.Info("first")
	logger.Warn("second")

	path := filepath.Join(out.dir, "app.log")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "lines stay buffered")

	require.NoError(t, logger.Shutdown(context.Background()))

	content := readFile(t, path)
	assert.Equal(t, "◈   first\n⚠   second\n", content)

	// Logging after shutdown still reaches the console
	logger.Info("after")
	assert.Contains(t, out.stdout.String(), "after")
}

// TestShutdownCancelsRepeatSummary verifies a pending summary is dropped
func TestShutdownCancelsRepeatSummary(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.ThrottleMs = 50
	})

	for i := 0; i < 10; i++ {
		logger.Info("SPAM")
	}
	require.NoError(t, logger.Shutdown(context.Background()))
	time.Sleep(150 * time.Millisecond)

	assert.Len(t, out.stdout.Lines(), 6)
	assert.NotContains(t, out.stdout.String(), "repeated")
}

// TestRepeatSummaryThroughLogger verifies the full pipeline collapses repeats
func TestRepeatSummaryThroughLogger(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.ThrottleMs = 100
	})

	for i := 0; i < 10; i++ {
		logger.Info("SPAM")
	}

	require.Eventually(t, func() bool { return len(out.stdout.Lines()) == 7 }, time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	lines := out.stdout.Lines()
	require.Len(t, lines, 7)
	assert.Equal(t, "◈   SPAM (repeated 4 times)", lines[6])

	stats := logger.Stats()
	assert.Equal(t, uint64(7), stats.RecordsEmitted)
	assert.Equal(t, uint64(4), stats.RecordsSuppressed)
}

// TestAgeSweep verifies the background sweep flushes old buffers
func TestAgeSweep(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.MaxBufferAgeMs = 40
	})
	require.NoError(t, logger.Start(context.Background()))

	logger.Info("aged out")

	path := filepath.Join(out.dir, "logs.log")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(data), "aged out")
	}, time.Second, 10*time.Millisecond)
}

// TestSizeFlush verifies a full buffer is written without waiting for age
func TestSizeFlush(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.BufferSize = 32
		cfg.ThrottleMs = 0
	})

	logger.Info("0123456789")
	logger.Info("abcdefghij")

	path := filepath.Join(out.dir, "logs.log")
	require.NoError(t, logger.FlushOne(context.Background(), path))
	entries, size := logger.writer.pending(path)
	assert.Empty(t, entries)
	assert.Zero(t, size)
	assert.Equal(t, "◈   0123456789\n◈   abcdefghij\n", readFile(t, path))
}

// TestEnsureConfigFreshLogFile verifies the log file is truncated only once
func TestEnsureConfigFreshLogFile(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.FreshLogFile = true
	})
	ctx := context.Background()
	path := filepath.Join(out.dir, "logs.log")
	require.NoError(t, os.WriteFile(path, []byte("previous session\n"), 0o644))

	cfg, err := logger.EnsureConfig(ctx, true)
	require.NoError(t, err)
	assert.True(t, cfg.SaveLogsToFile)
	assert.Empty(t, readFile(t, path))

	logger.Info("kept")
	require.NoError(t, logger.FlushAll(ctx))

	_, err = logger.EnsureConfig(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "kept", "second call must not truncate")
}

// TestEnsureConfigWithoutFresh verifies existing content survives
func TestEnsureConfigWithoutFresh(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
	})
	path := filepath.Join(out.dir, "logs.log")
	require.NoError(t, os.WriteFile(path, []byte("keep me\n"), 0o644))

	_, err := logger.EnsureConfig(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", readFile(t, path))
}

// TestEnsureConfigTimeout verifies waiting honors the context
func TestEnsureConfigTimeout(t *testing.T) {
	logger := NewLogger(WithResolver(NewResolver(WithSearchDir(t.TempDir()))))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := logger.EnsureConfig(ctx, false)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

// TestHandleSignals verifies one handler per process and release on shutdown
func TestHandleSignals(t *testing.T) {
	first, _ := createTestLogger(t, nil)
	second, _ := createTestLogger(t, nil)

	require.True(t, first.HandleSignals())
	assert.False(t, first.HandleSignals())
	assert.False(t, second.HandleSignals())

	require.NoError(t, first.Shutdown(context.Background()))
	assert.True(t, second.HandleSignals(), "shutdown releases the handler")
	require.NoError(t, second.Shutdown(context.Background()))
	assert.False(t, signalsInstalled.Load())
}

// TestCleanupAfterWrite verifies retention runs after buffered writes
func TestCleanupAfterWrite(t *testing.T) {
	logger, out := createTestLogger(t, func(cfg *Config) {
		cfg.SaveLogsToFile = true
		cfg.LogFilePath = "current.log"
		cfg.MaxLogFiles = 2
		cfg.BufferSize = 1
	})

	old := time.Now().Add(-time.Hour)
	for _, name := range []string{"a.log", "b.log", "c.log"} {
		path := filepath.Join(out.dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		require.NoError(t, os.Chtimes(path, old, old))
		old = old.Add(time.Minute)
	}

	logger.Info("trigger")
	require.NoError(t, logger.FlushAll(context.Background()))

	require.Eventually(t, func() bool {
		matches, _ := filepath.Glob(filepath.Join(out.dir, "*.log"))
		return len(matches) == 2
	}, time.Second, 10*time.Millisecond)

	_, err := os.Stat(filepath.Join(out.dir, "current.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out.dir, "c.log"))
	assert.NoError(t, err)
	assert.Eventually(t, func() bool { return logger.Stats().FilesDeleted == 2 }, time.Second, 10*time.Millisecond)
}
