package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/tiltapp/internal/adapters"
	"github.com/bft-labs/tiltapp/internal/adapters/fs"
	"github.com/bft-labs/tiltapp/internal/adapters/notify"
	"github.com/bft-labs/tiltapp/internal/app"
	"github.com/bft-labs/tiltapp/internal/display"
	"github.com/bft-labs/tiltapp/pkg/log"
)

func newTimerCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Take a timed break away from the table",
	}
	cmd.AddCommand(
		newTimerStartCommand(c),
		newTimerStopCommand(c),
		newTimerStatusCommand(c),
		newTimerWatchCommand(c),
	)
	return cmd
}

func newTimerStartCommand(c *cli) *cobra.Command {
	var minutes int
	var detach bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a break and follow it until it ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("minutes") {
				minutes = c.cfg.DefaultMinutes
			}
			s, err := c.openSession(cmd.OutOrStdout(), detach)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.engine.Start(minutes); err != nil {
				return err
			}
			if detach {
				snap := s.engine.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Break started: %s, ends at %s\n",
					display.Clock(snap.Remaining), snap.EndTime.Local().Format("15:04:05"))
				return nil
			}
			return s.follow(cmd.Context(), true)
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "break length in minutes (default: --default-minutes)")
	cmd.Flags().BoolVar(&detach, "detach", false, "persist the break and exit; follow it later with 'timer watch'")
	return cmd
}

func newTimerStopCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running break",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer s.close()

			if !s.engine.CheckRestore() {
				fmt.Fprintln(cmd.OutOrStdout(), "No break running.")
				return nil
			}
			left := s.engine.Snapshot().Remaining
			s.engine.Stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Break stopped with %s left.\n", display.Clock(left))
			return nil
		},
	}
}

func newTimerStatusCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current break once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer s.close()

			s.engine.CheckRestore()
			fmt.Fprintln(cmd.OutOrStdout(), display.Line(s.engine.Snapshot(), display.DefaultBarWidth))
			return nil
		},
	}
}

func newTimerWatchCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the break, including ones started or stopped elsewhere",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer s.close()

			if !s.engine.CheckRestore() {
				s.engine.Tick()
			}
			return s.follow(cmd.Context(), false)
		},
	}
}

// session is one engine bound to the configured store and the terminal.
type session struct {
	engine *app.Engine
	store  *adapters.StoreHandle
	term   *display.Terminal
	events *cliEvents
	logger log.Logger
}

// openSession builds an engine over the configured store. Commands that only
// read or change the record once pass oneShot to skip the ticker goroutine.
func (c *cli) openSession(out io.Writer, oneShot bool) (*session, error) {
	h, err := c.openStore()
	if err != nil {
		return nil, err
	}

	term := display.NewTerminal(out)
	events := newCLIEvents()
	opts := []app.Option{
		app.WithLogger(c.logger),
		app.WithTickInterval(c.cfg.TickInterval),
		app.WithDefaultMinutes(c.cfg.DefaultMinutes),
		app.WithEventHandler(events),
		app.WithNotifier(notify.NewConsole(out, notify.Config{
			Sound:    c.cfg.Sound,
			SoundOut: os.Stderr,
			Logger:   c.logger,
		})),
	}
	if oneShot {
		opts = append(opts, app.WithManualTicks())
	} else {
		opts = append(opts, app.WithRenderSink(term))
	}

	return &session{
		engine: app.NewEngine(h.Store, opts...),
		store:  h,
		term:   term,
		events: events,
		logger: c.logger,
	}, nil
}

// follow renders the break until a signal arrives or, with untilIdle, until
// the break ends for any reason. Changes to the store made by other
// processes are reconciled as they happen. An interrupted break stays
// persisted for the next invocation.
func (s *session) follow(ctx context.Context, untilIdle bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := fs.NewWatcher(s.store.Path, fs.DefaultDebounceDelay, func() { s.engine.Reconcile() }, s.logger)
	watchErr := make(chan error, 1)
	go func() { watchErr <- w.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			if watchErr != nil {
				<-watchErr
			}
			s.term.Finish()
			s.logger.Info("interrupted; break stays saved")
			return nil
		case err := <-watchErr:
			if err != nil {
				s.logger.Warn("store watcher stopped; changes from other processes will be missed", log.Err(err))
			}
			watchErr = nil
		case reason := <-s.events.idle:
			s.term.Finish()
			if untilIdle {
				if reason != app.ReasonCompleted {
					s.logger.Info("break ended", log.String("reason", reason))
				}
				stop()
				if watchErr != nil {
					<-watchErr
				}
				return nil
			}
		}
	}
}

func (s *session) close() {
	s.engine.Close()
	s.term.Finish()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing store failed", log.Err(err))
	}
}

// cliEvents forwards transitions to idle so follow can react to them.
type cliEvents struct {
	idle chan string
}

func newCLIEvents() *cliEvents {
	return &cliEvents{idle: make(chan string, 4)}
}

func (e *cliEvents) OnStateChange(previous, current app.State, reason string) {
	if current != app.StateIdle || previous == current {
		return
	}
	select {
	case e.idle <- reason:
	default:
	}
}

func (e *cliEvents) OnComplete() {}
