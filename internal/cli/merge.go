package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/manifest"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <older> <newer>",
	Short: "Merge two manifests, newer icons winning",
	Long: `Merge two manifests by normalized name. Icons from the newer manifest
replace same-named icons from the older one; icons only in the older
manifest are kept. The result takes the newer manifest's version.`,
	Example: `  iconlog merge base.json overrides.json -o icons.json`,
	Args:    argsRange(2, 2),
	RunE:    runMerge,
}

func init() {
	mergeCmd.GroupID = GroupManifest
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("output", "o", "", "Write the merged manifest here instead of stdout")
}

func runMerge(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	older, err := readManifestFile(args[0])
	if err != nil {
		return err
	}
	newer, err := readManifestFile(args[1])
	if err != nil {
		return err
	}

	data, err := manifest.Serialize(manifest.Merge(older, newer), true)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "encoding merged manifest")
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFileAtomic(output, data); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+output)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	return nil
}
