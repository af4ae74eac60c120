package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/library"
	"github.com/vidtouch/vidtouch/query"
	"github.com/vidtouch/vidtouch/tui"
)

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().StringP("query", "q", "", "Narrow the choices without prompting for a search")
}

// pickCmd chooses a video with plain prompts instead of the library screen.
var pickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Search the library with prompts and play the chosen video",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		videos, err := library.Scan(libraryDir(args), viper.GetBool(key.LibraryRecursive))
		handleErr(err)

		if len(videos) == 0 {
			handleErr(errors.New("no videos found"))
		}

		q := lo.Must(cmd.Flags().GetString("query"))
		if !cmd.Flags().Changed("query") {
			q = askQuery()
		}

		if q != "" {
			handleErr(query.Remember(q, 1))
			videos = library.Search(q, videos)
		}

		if len(videos) == 0 {
			handleErr(errors.New("nothing matches " + q))
		}

		video := videos[0]
		if len(videos) > 1 {
			video = askVideo(videos)
		}

		options := tui.Options{File: video.Path}
		handleErr(tui.Run(&options))
	},
}

func askQuery() string {
	var response string
	input := survey.Input{
		Message: "Search",
		Help:    "Leave empty to list every video",
		Suggest: func(toComplete string) []string {
			return query.SuggestMany(toComplete)
		},
	}

	handleErr(survey.AskOne(&input, &response))
	return strings.TrimSpace(response)
}

func askVideo(videos []*library.Video) *library.Video {
	options := lo.Map(videos, func(v *library.Video, _ int) string {
		return v.String()
	})

	var index int
	prompt := survey.Select{
		Message:  "Play",
		Options:  options,
		PageSize: 15,
	}

	handleErr(survey.AskOne(&prompt, &index))
	return videos[index]
}
