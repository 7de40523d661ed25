package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/renderer"
)

// cli carries the state shared by the commands of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "vicore [file]",
		Short: "A modal vi command interpreter",
		Long: `vicore edits a single file with vi keys: counts, operators and motions,
registers, marks, visual modes, undo and dot repeat.

CTRL-S saves and CTRL-Q quits.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
		RunE:              c.runInteractive,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default: ~/.config/vicore/config.toml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file")
	pf.String("status-format", "", "status line format; %s is the mode name")
	pf.Int("shift-width", 0, "indent width of > and <")

	_ = c.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = c.v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = c.v.BindPFlag("editor.status_format", pf.Lookup("status-format"))
	_ = c.v.BindPFlag("editor.shift_width", pf.Lookup("shift-width"))

	root.AddCommand(newReplayCmd(c), newConfigCmd(c))
	return root
}

// initConfig resolves the config file and loads it with flag and
// environment overrides.
func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	c.cfgPath = c.cfgFile
	if c.cfgPath == "" {
		if p := defaultConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				c.cfgPath = p
			}
		}
	}
	cfg, err := loadConfig(c.v, c.cfgPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) runInteractive(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(c.cfg, c.cfgPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	term, err := renderer.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	ed := rt.editor(term.Beep, nil)
	defer ed.Shutdown()

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := openDocument(ed, path, ""); err != nil {
		return err
	}

	if c.cfgPath != "" {
		w, err := config.Watch(c.cfgPath, func(cfg *config.Config) { rt.reload(ed, cfg) },
			config.WithWatcherLogger(rt.log))
		if err != nil {
			rt.log.Warn("config watch unavailable", "error", err)
		} else {
			defer w.Close()
		}
	}

	if err := term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer term.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.Run(ctx, ed, rt.log)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
