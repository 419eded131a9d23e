package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/changelog"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate, parse and view changelog entries",
	Long: `Work with the Markdown changelog: generate an entry for a manifest change,
parse entries back into structured data, and view the configured changelog.`,
}

var changelogGenerateCmd = &cobra.Command{
	Use:   "generate [current] [previous]",
	Short: "Print the changelog entry for a manifest change",
	Long: `Print the Markdown entry that 'iconlog release' would add, without
writing anything. The version defaults to the suggested next version.`,
	Example: `  iconlog changelog generate build/icons.json dist/icons.json --message "New arrows"
  iconlog changelog generate icons.json --previous-ref HEAD --version 2.0.0 --date 2024-01-15
  iconlog changelog generate icons.json --previous-ref HEAD --notes   # sections only`,
	Args: argsRange(0, 2),
	RunE: runChangelogGenerate,
}

var changelogParseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse changelog Markdown into JSON or YAML",
	Long: `Parse the first changelog entry in a Markdown file (or stdin when no file
is given) and print it as structured data. With --all, every entry is parsed.`,
	Example: `  iconlog changelog parse CHANGELOG.md
  iconlog changelog generate icons.json | iconlog changelog parse --format yaml
  iconlog changelog parse CHANGELOG.md --all`,
	Args: argsRange(0, 1),
	RunE: runChangelogParse,
}

var changelogShowCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show entries from the configured changelog",
	Long: `Show entries from the changelog at changelog_path (or --file).

By default, shows the 5 most recent entries. Use a version argument to
see one version, or --last to control the entry count.`,
	Example: `  iconlog changelog show
  iconlog changelog show 1.2.0
  iconlog changelog show --last 10 --plain`,
	Args: argsRange(0, 1),
	RunE: runChangelogShow,
}

var changelogIconCmd = &cobra.Command{
	Use:     "icon <name>",
	Short:   "Show every release that touched an icon",
	Example: `  iconlog changelog icon IconArrowRight`,
	Args:    argsRange(1, 1),
	RunE:    runChangelogIcon,
}

func init() {
	changelogCmd.GroupID = GroupRelease
	rootCmd.AddCommand(changelogCmd)
	changelogCmd.AddCommand(changelogGenerateCmd, changelogParseCmd, changelogShowCmd, changelogIconCmd)

	changelogGenerateCmd.Flags().String("previous-ref", "", "Git revision to read the previous manifest from")
	changelogGenerateCmd.Flags().StringP("message", "m", "", "Release message placed under the header")
	changelogGenerateCmd.Flags().String("date", "", "Release date (default: today)")
	changelogGenerateCmd.Flags().Bool("notes", false, "Print only the change sections (release notes)")
	addVersionFlags(changelogGenerateCmd, true)

	changelogParseCmd.Flags().StringP("format", "f", formatJSON, "Output format: json or yaml")
	changelogParseCmd.Flags().Bool("all", false, "Parse every entry in the document")

	changelogShowCmd.Flags().String("file", "", "Changelog file (default: changelog_path)")
	changelogShowCmd.Flags().Int("last", 5, "Number of entries to show")

	changelogIconCmd.Flags().String("file", "", "Changelog file (default: changelog_path)")
}

func runChangelogGenerate(cmd *cobra.Command, args []string) error {
	previousRef, _ := cmd.Flags().GetString("previous-ref")
	message, _ := cmd.Flags().GetString("message")
	date, _ := cmd.Flags().GetString("date")
	notes, _ := cmd.Flags().GetBool("notes")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pair, err := loadManifestPair(cfg, args, previousRef)
	if err != nil {
		return err
	}

	d := pair.Diff()
	next, _, _, err := releaseVersion(readVersionFlags(cmd), pair, d)
	if err != nil {
		return err
	}

	entry := changelog.CreateEntry(d, changelog.Options{
		Version: next,
		Message: message,
		Date:    changelog.RawDate(date),
	})
	if err := changelog.Validate(&entry); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	if notes {
		fmt.Fprint(cmd.OutOrStdout(), changelog.RenderNotes(entry))
		return nil
	}
	return changelog.RenderEntry(entry, cmd.OutOrStdout())
}

func runChangelogParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatJSON, formatYAML); err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if all {
		entries := changelog.ParseDocument(text)
		if entries == nil {
			entries = []changelog.Entry{}
		}
		return writeStructured(cmd.OutOrStdout(), format, entries)
	}

	entry := changelog.ParseEntry(text)
	if entry == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No changelog entry found (expected a '## [X.Y.Z] - YYYY-MM-DD' header).")
		return NewExitError(ExitValidationFailed)
	}
	return writeStructured(cmd.OutOrStdout(), format, entry)
}

// readInput reads the file named by args[0], or stdin when args is empty.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return "", clierrors.ChangelogNotFound(args[0])
		}
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+args[0])
	}
	return string(data), nil
}

// loadChangelogDocument parses the changelog at --file or changelog_path.
func loadChangelogDocument(cmd *cobra.Command, changelogPath string) (*changelog.Document, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		changelogPath = file
	}
	text, err := readInput(cmd, []string{changelogPath})
	if err != nil {
		return nil, err
	}
	return changelog.NewDocument(text), nil
}

func runChangelogShow(cmd *cobra.Command, args []string) error {
	last, _ := cmd.Flags().GetInt("last")
	if last < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("--last must not be negative, got %d", last))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := loadChangelogDocument(cmd, cfg.ChangelogPath)
	if err != nil {
		return err
	}

	opts := formatOptions(cfg.Plain)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		entry, err := doc.GetVersion(args[0])
		if err != nil {
			var notFound *changelog.VersionNotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", args[0])
				if len(notFound.AvailableVersions) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n  %s\n",
						strings.Join(notFound.AvailableVersions, "\n  "))
				}
				return NewExitError(ExitInvalidArguments)
			}
			return err
		}
		return changelog.FormatEntry(entry, out, opts)
	}

	entries := doc.GetLastN(last)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}
	if err := changelog.FormatEntries(entries, out, opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if total := len(doc.Entries); total > len(entries) {
		fmt.Fprintf(out, "\n(%d of %d entries shown. Use --last %d to see all)\n", len(entries), total, total)
	}
	return nil
}

func runChangelogIcon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := loadChangelogDocument(cmd, cfg.ChangelogPath)
	if err != nil {
		return err
	}

	events := doc.NameHistory(args[0])
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintf(out, "%s does not appear in the changelog.\n", args[0])
		return nil
	}

	for _, ev := range events {
		fmt.Fprintf(out, "%-10s %-12s %s\n", ev.Version, ev.Date, ev.Category)
	}
	return nil
}
