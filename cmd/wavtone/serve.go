package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/config"
	"github.com/example/go-wavtone/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tones over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			srv := server.New(cfg, audio.DefaultRegistry()).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	config.RegisterServerFlags(cmd.Flags(), config.DefaultConfig())

	return cmd
}
