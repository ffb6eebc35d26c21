package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration and where it came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := opts.newResolver()
			cfg, err := resolver.Resolve()

			out := cmd.OutOrStdout()
			source := resolver.Source()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(out, "source: %s\n", source)
			if err != nil {
				fmt.Fprintf(out, "warning: %v\n", err)
			}

			cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
			cs.Fdump(out, cfg)
			return nil
		},
	}
}
