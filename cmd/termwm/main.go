// Package main is the entry point for the termwm demo shell: a terminal
// split into scrollback panes managed by the window tree.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/termwm/internal/app"
	"github.com/dshills/termwm/internal/config"
	"github.com/dshills/termwm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	writeConfig  bool
	showVersion  bool
)

var rootCmd = &cobra.Command{
	Use:   "termwm",
	Short: "Splittable scrollback panes for the terminal",
	Long: `termwm carves the terminal into a tree of scrollback panes.

Panes split row-wise or column-wise to any nesting depth, resize while
preserving sibling minimums, and each holds its own scrollback buffer
with inline color markers.`,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		if showVersion {
			fmt.Printf("termwm %s (%s)\n", version, commit)
			return nil
		}
		if writeConfig {
			return writeConfigFile()
		}
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write diagnostics to this file")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&writeConfig, "write-config", false, "write the effective configuration to the config path and exit")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")
}

// writeConfigFile loads the effective options and writes them back out,
// giving users a complete file to edit.
func writeConfigFile() error {
	if flagConfig == "" {
		return errors.New("--write-config requires --config")
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Save(flagConfig); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", flagConfig)
	return nil
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	application, err := app.New(app.Options{
		ConfigPath: flagConfig,
		LogFile:    flagLogFile,
		LogLevel:   flagLogLevel,
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()

	terminal, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	application.SetBackend(terminal)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
