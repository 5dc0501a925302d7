package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/tiltapp/internal/share"
)

func newShareCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "share <platform>",
		Short:     "Share TiltApp on twitter or instagram, or print the link",
		Args:      cobra.ExactArgs(1),
		ValidArgs: share.Platforms(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := share.Build(args[0], c.cfg.PageURL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			// Nothing is copied from a terminal; the link is printed instead.
			if a.Message != "" && a.Platform != share.PlatformCopy {
				fmt.Fprintln(out, a.Message)
			}
			fmt.Fprintln(out, a.URL)
			return nil
		},
	}
}
