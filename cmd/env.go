package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/config"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envName turns a config key into the variable that overrides it.
func envName(key string) string {
	if key == where.EnvConfigPath {
		return key
	}
	return strings.ToUpper(constant.App + "_" + config.EnvKeyReplacer.Replace(key))
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		keys := append(slices.Clone(config.EnvExposed), where.EnvConfigPath)
		slices.Sort(keys)

		for _, env := range lo.Map(keys, func(k string, _ int) string { return envName(k) }) {
			value := os.Getenv(env)
			present := value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
