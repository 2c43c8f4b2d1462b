package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"go.klb.dev/clipstash/internal/capture"
	"go.klb.dev/clipstash/internal/ipc"
)

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Record clipboard changes into the history",
		Long: `Polls the clipboard and records every new text entry into the history.

The daemon also listens on a local IPC socket so "clipstash status" and
"clipstash clear" can reach it, and reloads the history when another process
rewrites the file. Stop it with SIGINT or SIGTERM.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.String("backend", "auto", "clipboard backend: auto|exec|native|atotto")
	f.Duration("poll-interval", capture.DefaultPollInterval, "delay between clipboard polls")
	f.Duration("error-backoff", capture.DefaultErrorBackoff, "delay after a failed clipboard read or history save")
	f.Bool("no-watch", false, "do not reload the history when the file changes on disk")
	addHistoryFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	ctx, stop := signalContext()
	defer stop()

	h, err := loadHistory(v)
	if err != nil {
		return err
	}
	backend, err := newBackend(v)
	if err != nil {
		return err
	}

	slog.Info("clipstash daemon starting",
		"version", Version,
		"backend", backend.Name(),
		"history", h.Path(),
		"entries", h.Len(),
		"max_items", h.MaxItems(),
	)

	loop := capture.New(h, backend, capture.Config{
		PollInterval: v.GetDuration("poll-interval"),
		ErrorBackoff: v.GetDuration("error-backoff"),
		WatchHistory: !v.GetBool("no-watch"),
	})

	lis, err := ipc.Listen()
	switch {
	case errors.Is(err, ipc.ErrAlreadyRunning):
		return fmt.Errorf("daemon already running on %s", ipc.SocketPath())
	case err != nil:
		slog.Warn("IPC socket unavailable", "err", err)
	default:
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx, capture.Resume(h)) })
	if lis != nil {
		g.Go(func() error {
			if err := ipc.Serve(gctx, lis, ipc.NewService(loop, Version)); err != nil {
				return fmt.Errorf("ipc: %w", err)
			}
			return nil
		})
	}

	start := time.Now()
	err = g.Wait()
	slog.Info("clipstash daemon stopped", "uptime", time.Since(start).Round(time.Second))
	return err
}
