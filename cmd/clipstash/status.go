package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipstash/internal/ipc"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and history status",
		Long: `Reports whether a clipstash daemon is running and summarises the history.

If a daemon is listening on the IPC socket the numbers come from it,
including capture counters. Otherwise the history file is read directly.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runStatus(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addHistoryFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

type statusOutput struct {
	Running bool   `json:"running"`
	Socket  string `json:"socket"`
	// OtherDaemon is the history path of a daemon that is running for a
	// different history file.
	OtherDaemon string `json:"other_daemon,omitempty"`
	ipc.StatusReply
}

func runStatus(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := statusOutput{Socket: ipc.SocketPath()}
	c, reply, err := connectDaemon(ctx, historyPath(v))
	if err != nil {
		return err
	}
	if c != nil {
		_ = c.Close()
		out.Running = true
		out.StatusReply = *reply
	} else {
		if reply != nil {
			out.OtherDaemon = reply.HistoryPath
		}
		h, err := loadHistory(v)
		if err != nil {
			return err
		}
		out.Version = Version
		out.HistoryPath = h.Path()
		out.Entries = h.Len()
		out.MaxItems = h.MaxItems()
		if e, ok := h.Get(0); ok {
			out.Newest = e.Time()
		}
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printStatus(cmd.OutOrStdout(), out)
}

func printStatus(w io.Writer, s statusOutput) error {
	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)

	if s.Running {
		fmt.Fprintf(tw, "Daemon:\trunning (%s)\n", s.Socket)
		fmt.Fprintf(tw, "Version:\t%s\n", s.Version)
		fmt.Fprintf(tw, "Backend:\t%s\n", s.Backend)
		fmt.Fprintf(tw, "Started:\t%s\n", ago(s.StartedAt))
	} else if s.OtherDaemon != "" {
		fmt.Fprintf(tw, "Daemon:\tnot running for this history (one records into %s)\n", s.OtherDaemon)
	} else {
		fmt.Fprintf(tw, "Daemon:\tnot running\n")
	}
	fmt.Fprintf(tw, "History:\t%s\n", s.HistoryPath)
	fmt.Fprintf(tw, "Entries:\t%d / %d\n", s.Entries, s.MaxItems)
	fmt.Fprintf(tw, "Newest:\t%s\n", ago(s.Newest))
	if s.Running {
		fmt.Fprintf(tw, "Last capture:\t%s\n", ago(s.LastCapture))
		fmt.Fprintf(tw, "Captured:\t%s\n", humanize.Comma(int64(s.Captured)))
		fmt.Fprintf(tw, "Read errors:\t%d\n", s.ReadErrors)
		fmt.Fprintf(tw, "Save errors:\t%d\n", s.SaveErrors)
		fmt.Fprintf(tw, "Reloads:\t%d\n", s.Reloads)
	}
	return tw.Flush()
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
