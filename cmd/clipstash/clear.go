package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const clearedMessage = "Clipboard history cleared."

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Long: `Empties the history. When a daemon recording into the same history file is
running, the request goes through its IPC socket so its in-memory copy is
cleared too; otherwise the history file is rewritten directly.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runClear(cmd, v) },
	}

	addHistoryFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runClear(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path := historyPath(v)
	c, _, err := connectDaemon(ctx, path)
	if err != nil {
		return err
	}

	if c != nil {
		defer c.Close()
		if err := c.Clear(ctx); err != nil {
			return fmt.Errorf("clear via daemon: %w", err)
		}
		slog.Debug("history cleared via daemon", "history", path)
	} else {
		h, err := loadHistory(v)
		if err != nil {
			return err
		}
		if err := h.Clear(); err != nil {
			return err
		}
		slog.Debug("history cleared", "path", h.Path())
	}

	fmt.Fprintln(cmd.OutOrStdout(), clearedMessage)
	return nil
}
