package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for iconlog",
	Example: `  # Show version info
  iconlog version

  # Plain output (for scripts)
  iconlog version --plain`,
	Args: argsRange(0, 0),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		info := version.Get()
		if plain {
			printPlainVersion(cmd, info)
			return
		}
		printPrettyVersion(cmd, info)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command, info version.Info) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "iconlog %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	fmt.Fprintf(out, "go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
}

func printPrettyVersion(cmd *cobra.Command, info version.Info) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s %s\n", cyan("iconlog"), info.Version)
	rows := []struct {
		label string
		value string
	}{
		{"Commit", info.ShortCommit()},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
		{"Source", version.SourceURL},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("%-9s", r.label+":")), r.value)
	}
}
