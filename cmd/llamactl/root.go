package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

// rootOptions are shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "llamactl",
		Short:         "Launcher for a local llama.cpp-compatible inference backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Optional config file (.toml, .yaml or .json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaultLogLevel(), "Log level: debug|info|warn|error (defaults LLAMACTL_LOG_LEVEL or info)")
	root.AddCommand(newStartCmd(opts), newStopCmd(opts))
	return root
}

func defaultLogLevel() string {
	if v := os.Getenv("LLAMACTL_LOG_LEVEL"); v != "" {
		return v
	}
	return "info"
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
