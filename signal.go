package relinka

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// signalsInstalled marks that some logger in the process owns signal handling
var signalsInstalled atomic.Bool

// HandleSignals installs SIGINT/SIGTERM handling that flushes all buffers and
// exits with status 0. Only one logger per process can hold the handler;
// returns false when another one already does.
func (l *Logger) HandleSignals() bool {
	if l.state.ShutdownCalled.Load() || !signalsInstalled.CompareAndSwap(false, true) {
		return false
	}

	l.sigMu.Lock()
	defer l.sigMu.Unlock()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	l.sigCh = ch

	go func() {
		if _, ok := <-ch; !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), signalFlushTimeout)
		if err := l.FlushAll(ctx); err != nil {
			l.internalLog("flush on signal failed: %v\n", err)
		}
		cancel()
		l.exitFunc(0)
	}()

	return true
}

// stopSignals detaches the handler installed by HandleSignals, if any
func (l *Logger) stopSignals() {
	l.sigMu.Lock()
	defer l.sigMu.Unlock()

	if l.sigCh == nil {
		return
	}
	signal.Stop(l.sigCh)
	close(l.sigCh)
	l.sigCh = nil
	signalsInstalled.Store(false)
}
