package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/advisor"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [current] [previous]",
	Short: "Suggest the next semantic version for a manifest change",
	Long: `Suggest the version bump implied by the difference between two manifests:
major when icons were removed, minor when icons were added, patch otherwise.

The next version is computed from --current-version, else the previous
manifest's version, else (with --from-tag) the newest vX.Y.Z git tag.
On a first release the current manifest's own version is used.`,
	Example: `  iconlog suggest build/icons.json dist/icons.json
  iconlog suggest icons.json --previous-ref v1.2.0
  iconlog suggest icons.json --previous-ref HEAD --current-version 1.2.0 --format json`,
	Args: argsRange(0, 2),
	RunE: runSuggest,
}

func init() {
	suggestCmd.GroupID = GroupManifest
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("previous-ref", "", "Git revision to read the previous manifest from")
	suggestCmd.Flags().StringP("format", "f", formatText, "Output format: text, json or yaml")
	addVersionFlags(suggestCmd, false)
}

// suggestReport is the structured form of suggest output.
type suggestReport struct {
	BumpType       advisor.BumpType `json:"bumpType" yaml:"bumpType"`
	Reason         string           `json:"reason" yaml:"reason"`
	CurrentVersion string           `json:"currentVersion,omitempty" yaml:"currentVersion,omitempty"`
	NextVersion    string           `json:"nextVersion" yaml:"nextVersion"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
		return err
	}
	previousRef, _ := cmd.Flags().GetString("previous-ref")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pair, err := loadManifestPair(cfg, args, previousRef)
	if err != nil {
		return err
	}

	next, base, suggestion, err := releaseVersion(readVersionFlags(cmd), pair, pair.Diff())
	if err != nil {
		return err
	}

	report := suggestReport{
		BumpType:       suggestion.BumpType,
		Reason:         suggestion.Reason,
		CurrentVersion: base,
		NextVersion:    next,
	}

	out := cmd.OutOrStdout()
	if format != formatText {
		return writeStructured(out, format, report)
	}

	fmt.Fprintf(out, "Suggested bump: %s\n", report.BumpType)
	fmt.Fprintf(out, "Reason:         %s\n", report.Reason)
	if base == "" {
		fmt.Fprintf(out, "Next version:   %s (first release)\n", next)
	} else {
		fmt.Fprintf(out, "Next version:   %s (from %s)\n", next, base)
	}
	return nil
}
