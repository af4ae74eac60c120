package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/history"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/library"
	"github.com/vidtouch/vidtouch/query"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.Flags().BoolP("json", "j", false, "Print the listing as JSON")
	libraryCmd.Flags().Bool("schema", false, "Print the JSON schema of the listing and exit")
	libraryCmd.Flags().StringP("query", "q", "", "Only list videos matching the search")

	libraryCmd.MarkFlagsMutuallyExclusive("json", "schema")
	libraryCmd.SetOut(os.Stdout)
}

// libraryCmd prints the videos the library screen would show.
var libraryCmd = &cobra.Command{
	Use:   "library [dir]",
	Short: "List the videos in a directory",
	Args:  cobra.MaximumNArgs(1),
	Example: "  vidtouch library ~/Videos --query bunny\n" +
		"  vidtouch library --json | jq '.videos[].path'",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(library.Schema()))
			return
		}

		var (
			dir    = libraryDir(args)
			q      = lo.Must(cmd.Flags().GetString("query"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		videos, err := library.Scan(dir, viper.GetBool(key.LibraryRecursive))
		handleErr(err)

		if q != "" {
			handleErr(query.Remember(q, 1))
			videos = library.Search(q, videos)
		}

		if asJson {
			handleErr(library.NewOutput(dir, q, videos).Encode(cmd.OutOrStdout()))
			return
		}

		saved, err := history.Get()
		handleErr(err)

		for _, video := range videos {
			line := fmt.Sprintf("%s %s", icon.Get(icon.Video), video.Name)

			if entry, ok := saved[video.Path]; ok && !entry.Finished() {
				line += " " + style.Faint(fmt.Sprintf("(%s of %s)", util.FormatClock(entry.Position), util.FormatClock(entry.Duration)))
			}

			cmd.Println(line)
		}

		cmd.Println(style.Fg(color.Purple)(util.Quantify(len(videos), "video", "videos")))
	},
}
