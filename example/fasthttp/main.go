package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/relinka"
	"github.com/lixenwraith/relinka/compat"
)

func main() {
	ctx := context.Background()

	logger, err := relinka.NewBuilder().
		SaveLogsToFile(true).
		LogFilePath("logs/fasthttp.log").
		NameWithDate(relinka.NameWithDateAppendBefore).
		BufferSize(2048).
		Retention(7, 60000).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(ctx); err != nil {
		panic(err)
	}
	logger.HandleSignals()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_ = logger.Shutdown(shutdownCtx)
	}()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(relinka.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler(logger),
		Logger:  fasthttpAdapter,

		Name:         "relinka-example",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Step("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Error("server stopped", err)
	}
}

func requestHandler(logger *relinka.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Verbose(fmt.Sprintf("%s %s", ctx.Method(), ctx.Path()))
		ctx.SetContentType("text/plain")
		fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	}
}

func customLevelDetector(msg string) relinka.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return relinka.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return relinka.LevelError
	}
	return compat.DetectLogLevel(msg)
}
