package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipstash/internal/history"
	"go.klb.dev/clipstash/internal/picker"
	"go.klb.dev/clipstash/internal/selection"
)

func newSelectCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick a history entry and put it back on the clipboard",
		Long: `Shows the history in a picker and writes the chosen entry, unmasked, to
the clipboard.

The default picker pipes "<index>\t<preview>" lines into an external
dmenu-style program (--picker-command, wofi by default) and reads the chosen
line back. --picker tui uses a built-in terminal picker with fuzzy filtering
instead.

With --sticky the picker reopens after every pick, showing the history as it
is on disk and preselecting the row just used (when --picker-preselect-flag
names the program's option for it, e.g. rofi's -selected-row).

The exec backend is recommended here: with the native backend on X11 the
clipboard contents are lost as soon as clipstash exits.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runSelect(cmd, v) },
	}

	f := cmd.Flags()
	f.Bool("sticky", false, "keep the picker open after a pick")
	f.String("picker", "command", "picker: command|tui")
	f.String("picker-command", strings.Join(picker.DefaultCommand, " "), "dmenu-style program and arguments")
	f.String("picker-preselect-flag", "", "picker option taking the row to preselect (e.g. -selected-row)")
	f.String("backend", "auto", "clipboard backend: auto|exec|native|atotto")
	addMaskFlag(cmd)
	addHistoryFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runSelect(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v)

	ctx, stop := signalContext()
	defer stop()

	sel, err := newSelector(v)
	if err != nil {
		return err
	}
	backend, err := newBackend(v)
	if err != nil {
		return err
	}

	flow := &selection.Flow{
		Load:          func() (*history.History, error) { return loadHistory(v) },
		Selector:      sel,
		Clipboard:     backend,
		Sticky:        v.GetBool("sticky"),
		MaskPasswords: v.GetBool("mask-passwords"),
		Out:           cmd.OutOrStdout(),
	}
	return flow.Run(ctx)
}
