package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check a manifest against the manifest schema",
	Long: `Validate a manifest: JSON syntax, the manifest schema, and field rules
(required names, positive sizes). Repeated normalized names and a totalCount
that does not match the icon list are reported as warnings, or as errors
with --strict (or strict_unique in the config).`,
	Example: `  iconlog validate icons.json
  iconlog validate icons.json --strict
  iconlog validate --schema > manifest.schema.json`,
	Args: argsRange(0, 1),
	RunE: runValidate,
}

func init() {
	validateCmd.GroupID = GroupManifest
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("strict", false, "Treat duplicate names and count mismatches as errors")
	validateCmd.Flags().Bool("schema", false, "Print the manifest JSON schema and exit")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if printSchema, _ := cmd.Flags().GetBool("schema"); printSchema {
		_, err := cmd.OutOrStdout().Write(manifest.Schema())
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	strict = strict || cfg.StrictUnique

	path := cfg.ManifestPath
	if len(args) == 1 {
		path = args[0]
	}

	m, err := readManifestFile(path)
	if err != nil {
		return err
	}

	var warnings []string
	if dups := manifest.DuplicateNames(m); len(dups) > 0 {
		if strict {
			return clierrors.DuplicateNames(path, dups)
		}
		warnings = append(warnings, fmt.Sprintf("duplicate normalized names (last occurrence wins): %v", dups))
	}
	if !m.CountMatches() {
		msg := fmt.Sprintf("totalCount is %d but the manifest lists %d icons", m.TotalCount, len(m.Icons))
		if strict {
			return clierrors.NewManifestError(msg, "Regenerate the manifest so totalCount matches the icons array")
		}
		warnings = append(warnings, msg)
	}

	out := cmd.OutOrStdout()
	warn := color.New(color.FgYellow).SprintFunc()
	ok := color.New(color.FgGreen).SprintFunc()
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warn("Warning:"), w)
	}
	fmt.Fprintf(out, "%s %s is valid (version %s, %d icons)\n", ok("✓"), path, m.Version, len(m.Icons))
	return nil
}
