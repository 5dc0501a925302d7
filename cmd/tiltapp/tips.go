package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/tiltapp/internal/display"
	"github.com/bft-labs/tiltapp/internal/tips"
)

func newTipsCommand(_ *cli) *cobra.Command {
	catalog := tips.Default()

	return &cobra.Command{
		Use:       "tips [category]",
		Short:     "Show tilt management tips",
		Long:      "Show tilt management tips. Categories: " + strings.Join(catalog.Categories(), ", ") + ".",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalog.Categories(),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := tips.DefaultCategory
			if len(args) == 1 {
				category = strings.ToLower(args[0])
			}

			list := catalog.ByCategory(category)
			if len(list) == 0 {
				return fmt.Errorf("unknown tips category %q (choose from %s)",
					category, strings.Join(catalog.Categories(), ", "))
			}
			out := cmd.OutOrStdout()
			for i, t := range list {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, display.Tip(t))
			}
			return nil
		},
	}
}
