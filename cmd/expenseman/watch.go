package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sync continuously until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			eng.Start(ctx)
			defer eng.Close()

			slog.Info("watching for changes", "status", eng.ConnectionStatus())
			<-ctx.Done()
			return nil
		},
	}
}
