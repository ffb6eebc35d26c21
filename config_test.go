package relinka

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/relinka/formatter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, SeverityVerbose, cfg.Level)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.SaveLogsToFile)
	assert.Equal(t, "logs.log", cfg.LogFilePath)
	assert.Equal(t, NameWithDateDisable, cfg.NameWithDate)
	assert.True(t, cfg.FreshLogFile)
	assert.Equal(t, formatter.DefaultTimestampFormat, cfg.TimestampFormat)
	assert.Equal(t, int64(4096), cfg.BufferSize)
	assert.Equal(t, int64(5000), cfg.MaxBufferAgeMs)
	assert.Equal(t, int64(10000), cfg.CleanupIntervalMs)
	assert.Equal(t, int64(0), cfg.MaxLogFiles)
	assert.Equal(t, int64(1000), cfg.ThrottleMs)
	assert.Equal(t, int64(5), cfg.ThrottleMin)
	assert.Len(t, cfg.Levels, 12)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Level = SeverityWarn
	cfg1.LogFilePath = "/custom/path.log"

	cfg2 := cfg1.Clone()

	assert.Equal(t, cfg1.Level, cfg2.Level)
	assert.Equal(t, cfg1.LogFilePath, cfg2.LogFilePath)

	cfg1.Level = SeverityError
	cfg1.Levels["info"] = formatter.Style{Symbol: "changed"}

	assert.Equal(t, SeverityWarn, cfg2.Level)
	assert.Equal(t, "◈", cfg2.Levels["info"].Symbol, "level styles are deep copied")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:      "bad date mode",
			modify:    func(c *Config) { c.NameWithDate = "prepend" },
			wantError: "invalid name_with_date",
		},
		{
			name:      "empty timestamp format",
			modify:    func(c *Config) { c.TimestampFormat = " " },
			wantError: "timestamp_format cannot be empty",
		},
		{
			name:      "zero buffer size",
			modify:    func(c *Config) { c.BufferSize = 0 },
			wantError: "buffer_size must be positive",
		},
		{
			name:      "zero buffer age",
			modify:    func(c *Config) { c.MaxBufferAgeMs = 0 },
			wantError: "max_buffer_age_ms must be positive",
		},
		{
			name:      "negative retention",
			modify:    func(c *Config) { c.MaxLogFiles = -1 },
			wantError: "cleanup settings cannot be negative",
		},
		{
			name:      "negative throttle",
			modify:    func(c *Config) { c.ThrottleMin = -1 },
			wantError: "throttle settings cannot be negative",
		},
		{
			name:      "unknown color",
			modify:    func(c *Config) { c.Levels["info"] = formatter.Style{Color: "chartreuse"} },
			wantError: "unknown color 'chartreuse'",
		},
		{
			name: "multiple errors",
			modify: func(c *Config) {
				c.BufferSize = -1
				c.ThrottleMs = -1
			},
			wantError: "multiple configuration errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relinka.toml")
	content := `[relinka]
verbose = true
save_logs_to_file = true
log_file_path = "logs/app.log"
max_log_files = 3
throttle_ms = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.SaveLogsToFile)
	assert.Equal(t, "logs/app.log", cfg.LogFilePath)
	assert.Equal(t, int64(3), cfg.MaxLogFiles)
	assert.Equal(t, int64(250), cfg.ThrottleMs)
	// Untouched keys keep their defaults
	assert.Equal(t, int64(4096), cfg.BufferSize)
	assert.Len(t, cfg.Levels, 12)
}

func TestNewConfigFromFileMissing(t *testing.T) {
	cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNewConfigFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relinka.toml")
	require.NoError(t, os.WriteFile(path, []byte("[relinka]\nname_with_date = \"sideways\"\n"), 0o644))

	_, err := NewConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name_with_date")
}

func TestNewConfigFromFileWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relinka.toml")
	require.NoError(t, os.WriteFile(path, []byte("[relinka]\nmax_log_files = 7\nthrottle_ms = 250\n"), 0o644))
	t.Setenv("RELINKA_VERBOSE", "true")
	t.Setenv("RELINKA_THROTTLE_MS", "400")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.MaxLogFiles, "file values survive string env values")
	assert.True(t, cfg.Verbose)
	assert.Equal(t, int64(400), cfg.ThrottleMs, "env wins over the file")
}

func TestLoadLayersEnv(t *testing.T) {
	t.Setenv("RELINKA_VERBOSE", "true")
	t.Setenv("RELINKA_MAX_LOG_FILES", "5")
	t.Setenv("RELINKA_LEVEL", "warn")
	t.Setenv("RELINKA_BUFFER_SIZE", "huge")
	t.Setenv("RELINKA_LOG_FILE_PATH", "env/app.log")
	t.Setenv("VERBOSE", "false")

	base := DefaultConfig()
	base.ThrottleMin = 9
	cfg, err := loadLayers(base, "")

	require.NotNil(t, cfg)
	require.Error(t, err, "bad values are reported")
	assert.Contains(t, err.Error(), "RELINKA_BUFFER_SIZE")

	assert.True(t, cfg.Verbose)
	assert.Equal(t, int64(5), cfg.MaxLogFiles)
	assert.Equal(t, SeverityWarn, cfg.Level)
	assert.Equal(t, "env/app.log", cfg.LogFilePath)
	assert.Equal(t, int64(4096), cfg.BufferSize, "bad values are ignored")
	assert.Equal(t, int64(9), cfg.ThrottleMin, "base values sit below env")
	assert.Len(t, cfg.Levels, 12)
}

func TestLoadLayersMissingFile(t *testing.T) {
	cfg, err := loadLayers(DefaultConfig(), filepath.Join(t.TempDir(), "absent.toml"))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "RELINKA_MAX_LOG_FILES", envVarName("relinka.max_log_files"))
	assert.Equal(t, "RELINKA_LEVEL", envVarName("relinka.level"))
}
