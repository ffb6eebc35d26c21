package main

import (
	"context"
	"time"

	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/relinka"
	"github.com/lixenwraith/relinka/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	_, _ = c.Write(buf)
	return gnet.None
}

func main() {
	ctx := context.Background()

	logger := relinka.NewLogger()
	if err := logger.Start(ctx); err != nil {
		panic(err)
	}
	if _, err := logger.EnsureConfig(ctx, true); err != nil {
		logger.Warn("using fallback logging configuration", err)
	}
	logger.HandleSignals()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_ = logger.Shutdown(shutdownCtx)
	}()

	gnetAdapter := compat.NewGnetAdapter(logger)

	err := gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Error("gnet server stopped", err)
	}
}
