package compat

import (
	"context"
	"fmt"

	"github.com/lixenwraith/relinka"
)

// Builder creates logger adapters for gnet and fasthttp. It can use an
// existing *relinka.Logger or create one from a *relinka.Config.
type Builder struct {
	logger *relinka.Logger
	logCfg *relinka.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *relinka.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("relinka/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// It is used only if no logger was provided via WithLogger.
func (b *Builder) WithConfig(cfg *relinka.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating and starting one if
// necessary. A created logger is owned by the caller, who must Shutdown it.
func (b *Builder) getLogger() (*relinka.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := relinka.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = relinka.DefaultConfig()
	}

	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(context.Background()); err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *relinka.Logger instance, creating it
// if needed. Use it to Shutdown a logger created from WithConfig.
func (b *Builder) GetLogger() (*relinka.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := relinka.NewBuilder().
//		SaveLogsToFile(true).
//		Retention(10, 10000).
//		Build()
//	if err != nil { /* handle error */ }
//	_ = appLogger.Start(ctx)
//	defer appLogger.Shutdown(ctx)
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
