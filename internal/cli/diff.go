package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/advisor"
	"github.com/ariel-frischer/iconlog/internal/changelog"
)

var diffCmd = &cobra.Command{
	Use:   "diff [current] [previous]",
	Short: "Show icons added, modified and removed between two manifests",
	Long: `Compare the current manifest against a previous one and list the icons
that were added, modified (size or artwork changed) and removed.

The previous manifest is the second argument, or the current manifest's
path read from git at --previous-ref (or previous_ref in the config).
Without either, everything in the current manifest counts as added.`,
	Example: `  # Two files
  iconlog diff build/icons.json dist/icons.json

  # Against the last commit, as JSON
  iconlog diff icons.json --previous-ref HEAD --format json

  # Fail CI when icons were removed
  iconlog diff icons.json --previous-ref origin/main --fail-on-breaking`,
	Args: argsRange(0, 2),
	RunE: runDiff,
}

func init() {
	diffCmd.GroupID = GroupManifest
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().String("previous-ref", "", "Git revision to read the previous manifest from")
	diffCmd.Flags().StringP("format", "f", formatText, "Output format: text, json or yaml")
	diffCmd.Flags().Bool("fail-on-breaking", false, "Exit with code 2 when icons were removed")
}

// diffReport is the structured form of diff output.
type diffReport struct {
	Current    string             `json:"current" yaml:"current"`
	Previous   string             `json:"previous,omitempty" yaml:"previous,omitempty"`
	Added      []string           `json:"added" yaml:"added"`
	Modified   []string           `json:"modified" yaml:"modified"`
	Removed    []string           `json:"removed" yaml:"removed"`
	Breaking   bool               `json:"breaking" yaml:"breaking"`
	Suggestion advisor.Suggestion `json:"suggestion" yaml:"suggestion"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
		return err
	}
	previousRef, _ := cmd.Flags().GetString("previous-ref")
	failOnBreaking, _ := cmd.Flags().GetBool("fail-on-breaking")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pair, err := loadManifestPair(cfg, args, previousRef)
	if err != nil {
		return err
	}

	d := pair.Diff()
	changes := changesOf(d)
	report := diffReport{
		Current:    pair.CurrentPath,
		Previous:   pair.PreviousSource,
		Added:      changes.Added,
		Modified:   changes.Modified,
		Removed:    changes.Removed,
		Breaking:   d.HasBreakingChanges(),
		Suggestion: advisor.SuggestVersionBump(d),
	}

	out := cmd.OutOrStdout()
	if format == formatText {
		opts := formatOptions(cfg.Plain)
		opts.HideEmpty = true
		if d.IsEmpty() {
			fmt.Fprintln(out, "No icon changes.")
		} else if err := changelog.FormatChanges(changes, out, opts); err != nil {
			return fmt.Errorf("formatting diff: %w", err)
		}
		fmt.Fprintf(out, "\n%s\n", changelog.FormatSummary(changes, opts))
		fmt.Fprintf(out, "Suggested bump: %s (%s)\n", report.Suggestion.BumpType, report.Suggestion.Reason)
	} else if err := writeStructured(out, format, report); err != nil {
		return err
	}

	if failOnBreaking && report.Breaking {
		fmt.Fprintf(cmd.ErrOrStderr(), "Breaking change: %d icon(s) removed\n", len(report.Removed))
		return NewExitError(ExitBreakingChange)
	}
	return nil
}
