// Command oxy-folio drives the interactive portfolio scene headless or behind a native window,
// and serves it over HTTP and WebSocket.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	loader *config.Loader
	cfg    *config.Config
	log    zerolog.Logger
}

// setup loads the configuration and builds the logger. Flags win over the file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.loader = config.NewLoader(a.configPath)
	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	if used := a.loader.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("config loaded")
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "oxy-folio",
		Short:             "Interactive 3D portfolio scene driver",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./oxy-folio.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", logger.FormatConsole, "log format (console or json)")

	root.AddCommand(newServeCmd(a), newViewCmd(a), newConfigCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
