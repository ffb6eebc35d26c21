package relinka

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/relinka/formatter"
)

// supportedConfigExts in discovery order
var supportedConfigExts = []string{".toml", ".yaml", ".yml", ".json"}

// Resolver merges built-in defaults, a discovered config file and RELINKA_*
// environment variables into one Config. Resolution runs once; later calls
// return the cached result.
type Resolver struct {
	fs         afero.Fs
	configFile string
	searchDir  string

	once   sync.Once
	done   chan struct{}
	cfg    *Config
	source string
	err    error
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithConfigFile skips discovery and loads the given file
func WithConfigFile(path string) ResolverOption {
	return func(r *Resolver) { r.configFile = path }
}

// WithSearchDir sets the directory searched for relinka.* files
func WithSearchDir(dir string) ResolverOption {
	return func(r *Resolver) { r.searchDir = dir }
}

// WithResolverFs sets the filesystem used for discovery and YAML/JSON reads.
// TOML files are read by lixenwraith/config from the OS filesystem and are
// rejected on any other Fs.
func WithResolverFs(fs afero.Fs) ResolverOption {
	return func(r *Resolver) { r.fs = fs }
}

// NewResolver creates a resolver searching the working directory by default
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:   afero.NewOsFs(),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.searchDir == "" {
		if wd, err := os.Getwd(); err == nil {
			r.searchDir = wd
		}
	}
	return r
}

// Resolve performs resolution on first call and returns a copy of the result.
// The returned Config is always usable. The error lists layers that were
// skipped (unreadable file, bad env values) and is informational only.
func (r *Resolver) Resolve() (*Config, error) {
	r.once.Do(func() {
		r.cfg, r.source, r.err = r.resolve()
		close(r.done)
	})
	return r.cfg.Clone(), r.err
}

// Done is closed once resolution has completed
func (r *Resolver) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until resolution completes or ctx is done
func (r *Resolver) Wait(ctx context.Context) (*Config, error) {
	select {
	case <-r.done:
		return r.cfg.Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Source returns the config file used, empty when none was found
func (r *Resolver) Source() string {
	<-r.done
	return r.source
}

func (r *Resolver) resolve() (*Config, string, error) {
	var errs []error

	cfg := DefaultConfig()
	source := r.configFile
	if source == "" {
		source = r.discover()
	}

	tomlPath := ""
	if source != "" {
		fileCfg := cfg.Clone()
		path, err := r.loadFile(source, fileCfg)
		if err != nil {
			errs = append(errs, fmtErrorf("config file %s ignored: %w", source, err))
			source = ""
		} else {
			cfg, tomlPath = fileCfg, path
		}
	}

	layered, err := loadLayers(cfg, tomlPath)
	if layered == nil && tomlPath != "" {
		errs = append(errs, fmtErrorf("config file %s ignored: %w", source, err))
		source = ""
		layered, err = loadLayers(cfg, "")
	}
	if err != nil {
		errs = append(errs, err)
	}
	if layered != nil {
		cfg = layered
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, fmtErrorf("resolved config invalid, using defaults: %w", err))
		cfg = DefaultConfig()
		source = ""
	}

	return cfg, source, combineConfigErrors(errs)
}

// discover returns the first existing relinka.* file, preferring the
// .reliverse subdirectory over the search directory itself
func (r *Resolver) discover() string {
	for _, dir := range []string{filepath.Join(r.searchDir, configSubdir), r.searchDir} {
		for _, ext := range supportedConfigExts {
			candidate := filepath.Join(dir, configName+ext)
			if info, err := r.fs.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}
	}
	return ""
}

// loadFile decodes a YAML/JSON file over cfg. A TOML file is only checked
// and its path returned, loadLayers reads it together with the environment.
func (r *Resolver) loadFile(path string, cfg *Config) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, ok := r.fs.(*afero.OsFs); !ok {
			return "", fmtErrorf("toml config files are only read from the OS filesystem")
		}
		if _, err := r.fs.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	case ".yaml", ".yml", ".json":
		data, err := afero.ReadFile(r.fs, path)
		if err != nil {
			return "", err
		}
		return "", decodeYAML(data, cfg)
	default:
		return "", fmtErrorf("unsupported config format '%s'", filepath.Ext(path))
	}
}

// decodeYAML decodes YAML (or JSON) over cfg. Fields absent from the document
// keep their current values; level styles merge field by field.
func decodeYAML(data []byte, cfg *Config) error {
	base := cfg.Levels
	cfg.Levels = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Levels = base
		return fmtErrorf("failed to parse config: %w", err)
	}
	cfg.Levels = formatter.MergeStyles(base, cfg.Levels)
	return nil
}
