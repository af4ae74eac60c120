// Package cmd implements the command-line interface for vidtouch.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/tui"
	"github.com/vidtouch/vidtouch/util"
	"github.com/vidtouch/vidtouch/version"
	"github.com/vidtouch/vidtouch/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Save the playback position when leaving a video")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnExit, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().BoolP("recursive", "r", true, "Include videos from subdirectories")
	lo.Must0(viper.BindPFlag(key.LibraryRecursive, rootCmd.PersistentFlags().Lookup("recursive")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens the library browser.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [dir]",
	Short: "Touch-style video playback for the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Touch-style video playback for the terminal"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{Dir: libraryDir(args)}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// libraryDir picks the directory argument, then the configured path, then the working directory.
func libraryDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	if dir := viper.GetString(key.LibraryPath); dir != "" {
		return dir
	}

	return "."
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
