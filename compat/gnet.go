package compat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/relinka"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// fatalFlushTimeout bounds the buffer flush before the fatal handler runs
const fatalFlushTimeout = 100 * time.Millisecond

// GnetAdapter wraps relinka.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *relinka.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *relinka.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at verbose level, shown only when verbose output is enabled
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Verbose(fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info(fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs at fatal level, flushes pending buffers and hands control to
// the fatal handler instead of unwinding the gnet event loop
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.emitFatal(msg)

	ctx, cancel := context.WithTimeout(context.Background(), fatalFlushTimeout)
	_ = a.logger.FlushAll(ctx)
	cancel()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// emitFatal writes the fatal record and swallows the *FatalError escape
func (a *GnetAdapter) emitFatal(msg string) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok || !errors.As(err, new(*relinka.FatalError)) {
				panic(r)
			}
		}
	}()
	a.logger.Fatal(msg)
}
