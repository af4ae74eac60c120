package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vidtouch/vidtouch/tui"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

// playCmd skips the library and opens one file on the playback screen.
var playCmd = &cobra.Command{
	Use:     "play <file>",
	Short:   "Play a single video file",
	Args:    cobra.ExactArgs(1),
	Example: "  vidtouch play ./movie.mkv",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := tui.Options{File: args[0]}
		handleErr(tui.Run(&options))
	},
}
