// clipstash: clipboard history with a picker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clipstash",
		Short: "Clipboard history manager",
		Long: `clipstash records every text you copy into a bounded history and lets you
put any past entry back on the clipboard.

Run "clipstash daemon" in your session to record the clipboard. Bind
"clipstash select" to a key to pick an entry with a dmenu-style menu
(wofi by default) or the built-in terminal picker (--picker tui).

Entries that look like passwords are masked in menus and listings.
This is display masking only: the history file is not encrypted.

Config file search order (first found wins):
  /etc/clipstash/clipstash.toml
  $HOME/.config/clipstash/clipstash.toml
  path supplied via --config

All flags can be set via CLIPSTASH_<FLAG> env vars (dashes become
underscores) or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDaemonCmd(),
		newSelectCmd(),
		newPrintCmd(),
		newClearCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipstash %s\n", Version)
		},
	}
}
