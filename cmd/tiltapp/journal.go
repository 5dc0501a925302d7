package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/tiltapp/internal/display"
	"github.com/bft-labs/tiltapp/internal/emotionlog"
)

func newLogCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Journal how you feel at the table",
	}
	cmd.AddCommand(newLogAddCommand(c), newLogListCommand(c))
	return cmd
}

func newLogAddCommand(c *cli) *cobra.Command {
	var emoji, notes string

	cmd := &cobra.Command{
		Use:   "add <emotion>",
		Short: "Record an emotion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			if _, err := emotionlog.New(h.Store, nil).Add(args[0], emoji, notes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), emotionlog.SuccessMessage)
			return nil
		},
	}
	cmd.Flags().StringVar(&emoji, "emoji", "", "emoji shown next to the emotion")
	cmd.Flags().StringVar(&notes, "notes", "", "what happened")
	return cmd
}

func newLogListCommand(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.openStore()
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := emotionlog.New(h.Store, nil).List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No emotion logs yet")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			now := time.Now()
			for _, e := range entries {
				fmt.Fprintln(out, display.LogEntry(e, now))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries")
	return cmd
}
