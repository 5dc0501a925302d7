package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/tiltapp/internal/adapters"
	"github.com/bft-labs/tiltapp/internal/cliconfig"
	"github.com/bft-labs/tiltapp/pkg/log"
)

const helpDescription = `
Emotion management for poker players.

Take a timed break when tilt creeps in, journal how you feel between hands,
and keep the advice that helps you reset within reach.

A running break survives restarts: start it in one terminal and follow it
from another with "tiltapp timer watch".
`

var exampleUsage = strings.TrimSpace(`
  tiltapp timer start -m 10
  tiltapp timer watch
  tiltapp log add frustrated --emoji 😤 --notes "lost a flip"
  tiltapp tips recovery
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the resolved configuration and logger to every command.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string

	zlog      zerolog.Logger
	logger    log.Logger
	logCloser io.Closer
}

// openStore opens the configured backend. Callers close the handle.
func (c *cli) openStore() (*adapters.StoreHandle, error) {
	h, err := adapters.OpenStore(c.cfg.StoreBackend, c.cfg.StateDir)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("store opened",
		log.String("backend", c.cfg.StoreBackend),
		log.String("path", h.Path),
	)
	return h, nil
}

// load resolves configuration: flags > env > config file > defaults.
func (c *cli) load(cmd *cobra.Command) error {
	if err := cliconfig.LoadDotEnv(""); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.zlog, c.logCloser = cliconfig.Logger(c.cfg)
	c.logger = log.NewZerologAdapter(c.zlog)
	c.zlog.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close()
	}
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "tiltapp",
		Short:         "Emotion management for poker players",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.tiltapp/config.toml)")
	f.StringVar(&c.cfg.StateDir, "state-dir", c.cfg.StateDir, "directory holding the persisted store (default: $HOME/.tiltapp)")
	f.StringVar(&c.cfg.StoreBackend, "store", c.cfg.StoreBackend, "store backend: file or sqlite")
	f.IntVar(&c.cfg.DefaultMinutes, "default-minutes", c.cfg.DefaultMinutes, "break length used when none is given")
	f.DurationVar(&c.cfg.TickInterval, "tick", c.cfg.TickInterval, "display refresh interval")
	f.BoolVar(&c.cfg.Sound, "sound", c.cfg.Sound, "ring the terminal bell when a break ends")
	f.StringVar(&c.cfg.PageURL, "page-url", c.cfg.PageURL, "link handed out by the share command")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&c.cfg.LogFile, "log-file", c.cfg.LogFile, "also write logs to this file, rotated")
	if err := root.PersistentFlags().MarkHidden("tick"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	root.AddCommand(
		newTimerCommand(c),
		newLogCommand(c),
		newTipsCommand(c),
		newShareCommand(c),
	)
	return root
}

func main() {
	c := &cli{
		cfg:  cliconfig.DefaultConfig(),
		zlog: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}),
	}
	root := newRootCommand(c)

	err := root.Execute()
	if err != nil {
		c.zlog.Error().Err(err).Msg("tiltapp")
	}
	c.close()
	if err != nil {
		os.Exit(1)
	}
}
