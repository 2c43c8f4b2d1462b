package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipstash/internal/selection"
)

func newPrintCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "print",
		Short: "List the history",
		Long: `Prints one "<index>: <preview>" line per entry, newest first. Entries that
look like passwords are masked unless --mask-passwords=false.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPrint(cmd, v) },
	}

	cmd.Flags().BoolP("long", "l", false, "add age and size columns")
	addMaskFlag(cmd)
	addHistoryFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPrint(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	h, err := loadHistory(v)
	if err != nil {
		return err
	}

	items := h.Items()
	previews := selection.Previews(items, v.GetBool("mask-passwords"))
	out := cmd.OutOrStdout()

	if !v.GetBool("long") {
		for i, p := range previews {
			fmt.Fprintf(out, "%d: %s\n", i, p)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	for i, e := range items {
		_, _ = fmt.Fprintf(tw, "%d:\t%s\t%s\t%s\n",
			i, humanize.Time(e.Time()), humanize.Bytes(uint64(len(e.Content))), previews[i])
	}
	return tw.Flush()
}
