package main

import (
	"github.com/spf13/cobra"

	"llamactl/internal/backend"
)

func newStopCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the inference backend and its sidecars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(root.logLevel)
			return backend.LogLauncher{Log: log}.Stop(cmd.Context())
		},
	}
}
