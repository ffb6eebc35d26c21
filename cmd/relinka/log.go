package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/relinka"
)

func newLogCmd(opts *cliOptions) *cobra.Command {
	var (
		level string
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "log [message...]",
		Short: "Write one log record",
		Example: `  relinka log --level warn "disk almost full"
  relinka log --level box "Deploy finished"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			logger, err := opts.startLogger(ctx, fresh)
			if err != nil {
				return err
			}
			defer func() {
				if shutdownErr := shutdown(logger); err == nil {
					err = shutdownErr
				}
			}()

			lvl := relinka.Level(strings.ToLower(strings.TrimSpace(level)))
			if lvl == "" {
				return fmt.Errorf("level cannot be empty")
			}
			return logger.EmitContext(ctx, lvl, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(relinka.LevelInfo), "record level")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "truncate the log file first when fresh_log_file is set")
	return cmd
}
