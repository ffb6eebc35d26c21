package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Apply log file retention now",
		Long:  `Delete the oldest .log files next to the configured log file until max_log_files remain.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger, err := opts.startLogger(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() {
				if shutdownErr := shutdown(logger); err == nil {
					err = shutdownErr
				}
			}()

			cfg := logger.GetConfig()
			if !cfg.SaveLogsToFile || cfg.MaxLogFiles <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "retention disabled (save_logs_to_file off or max_log_files is 0)")
				return nil
			}

			logger.Cleanup()
			stats := logger.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d file(s), keeping at most %d\n", stats.FilesDeleted, cfg.MaxLogFiles)
			return nil
		},
	}
}
