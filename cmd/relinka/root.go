package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/relinka"
)

const shutdownTimeout = 10 * time.Second

// cliOptions holds the global flags
type cliOptions struct {
	configFile string
	searchDir  string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "relinka",
		Short:         "Console and file logging with repeat throttling",
		Long:          `Write log records through relinka, stress the buffered file writer and inspect the resolved configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is discovered as .reliverse/relinka.* or relinka.*)")
	rootCmd.PersistentFlags().StringVar(&opts.searchDir, "dir", "", "directory searched for config files (default is the working directory)")

	rootCmd.AddCommand(
		newLogCmd(opts),
		newStressCmd(opts),
		newConfigCmd(opts),
		newCleanupCmd(opts),
	)
	return rootCmd
}

// newResolver builds the resolver described by the global flags
func (o *cliOptions) newResolver() *relinka.Resolver {
	var ropts []relinka.ResolverOption
	if o.configFile != "" {
		ropts = append(ropts, relinka.WithConfigFile(o.configFile))
	}
	if o.searchDir != "" {
		ropts = append(ropts, relinka.WithSearchDir(o.searchDir))
	}
	return relinka.NewResolver(ropts...)
}

// startLogger creates and starts a logger, waiting for its configuration
func (o *cliOptions) startLogger(ctx context.Context, fresh bool) (*relinka.Logger, error) {
	logger := relinka.NewLogger(relinka.WithResolver(o.newResolver()))
	if err := logger.Start(ctx); err != nil {
		return nil, err
	}
	if _, err := logger.EnsureConfig(ctx, fresh); err != nil {
		_ = shutdown(logger)
		return nil, err
	}
	return logger, nil
}

// shutdown flushes and stops the logger with a bounded wait
func shutdown(logger *relinka.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return logger.Shutdown(ctx)
}
