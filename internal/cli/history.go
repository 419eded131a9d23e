package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View release history",
	Long: `View the log of releases recorded by 'iconlog release': when each version
was released, the bump type, and how many icons were added, modified and removed.`,
	Example: `  iconlog history
  iconlog history --last 5
  iconlog history --format json
  iconlog history --clear`,
	Args: argsRange(0, 0),
	RunE: runHistory,
}

func init() {
	historyCmd.GroupID = GroupRelease
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("last", "n", 0, "Limit to the last N releases (0 = all)")
	historyCmd.Flags().StringP("format", "f", formatText, "Output format: text, json or yaml")
	historyCmd.Flags().BoolP("clear", "c", false, "Clear all history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	last, _ := cmd.Flags().GetInt("last")
	if last < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("--last must not be negative, got %d", last))
	}
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
		return err
	}
	clearFlag, _ := cmd.Flags().GetBool("clear")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if clearFlag {
		if err := history.ClearHistory(cfg.StateDir); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "clearing history")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	h, err := history.LoadHistory(cfg.StateDir)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "loading history")
	}
	entries := h.Last(last)

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No releases recorded.")
		return nil
	}
	displayEntries(cmd, entries)
	return nil
}

// displayEntries prints one line per release, newest first.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	cyan := color.New(color.FgCyan).SprintFunc()
	bumpColors := map[string]func(a ...interface{}) string{
		"major": color.New(color.FgRed).SprintFunc(),
		"minor": color.New(color.FgGreen).SprintFunc(),
		"patch": color.New(color.FgYellow).SprintFunc(),
	}

	for _, e := range entries {
		bump := fmt.Sprintf("%-5s", e.BumpType)
		if paint, ok := bumpColors[e.BumpType]; ok {
			bump = paint(bump)
		}

		from := e.PreviousVersion
		if from == "" {
			from = "-"
		}
		target := e.Changelog
		if e.Branch != "" {
			target += " @" + e.Branch
		}

		fmt.Fprintf(out, "%s  %-10s  %s  from %-10s  +%d ~%d -%d  %s\n",
			cyan(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
			e.Version,
			bump,
			from,
			e.Added, e.Modified, e.Removed,
			target,
		)
	}
}
