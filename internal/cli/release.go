package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/changelog"
	"github.com/ariel-frischer/iconlog/internal/config"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/git"
	"github.com/ariel-frischer/iconlog/internal/history"
)

var releaseCmd = &cobra.Command{
	Use:   "release [current] [previous]",
	Short: "Record a release in the changelog",
	Long: `Diff the manifests, decide the release version, and prepend the new
entry to the changelog at changelog_path. The changelog is created when
missing. Each release is also logged to the release history.

The version defaults to the suggested next version; use --version to
override it. A version already present in the changelog is rejected.`,
	Example: `  iconlog release icons.json --previous-ref v1.2.0 --message "Settings refresh"
  iconlog release build/icons.json dist/icons.json --version 2.0.0
  iconlog release icons.json --previous-ref HEAD --dry-run`,
	Args: argsRange(0, 2),
	RunE: runRelease,
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().String("previous-ref", "", "Git revision to read the previous manifest from")
	releaseCmd.Flags().StringP("message", "m", "", "Release message placed under the header")
	releaseCmd.Flags().String("date", "", "Release date, YYYY-MM-DD (default: today)")
	releaseCmd.Flags().Bool("dry-run", false, "Print the updated changelog entry without writing")
	releaseCmd.Flags().String("changelog", "", "Changelog file (default: changelog_path)")
	addVersionFlags(releaseCmd, true)
}

func runRelease(cmd *cobra.Command, args []string) error {
	previousRef, _ := cmd.Flags().GetString("previous-ref")
	message, _ := cmd.Flags().GetString("message")
	date, _ := cmd.Flags().GetString("date")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	changelogPath, _ := cmd.Flags().GetString("changelog")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if changelogPath == "" {
		changelogPath = cfg.ChangelogPath
	}

	pair, err := loadManifestPair(cfg, args, previousRef)
	if err != nil {
		return err
	}

	d := pair.Diff()
	next, base, suggestion, err := releaseVersion(readVersionFlags(cmd), pair, d)
	if err != nil {
		return err
	}

	entry := changelog.CreateEntry(d, changelog.Options{
		Version: next,
		Message: message,
		Date:    changelog.RawDate(date),
	})
	if err := changelog.Validate(&entry); err != nil {
		var ve *changelog.ValidationError
		if errors.As(err, &ve) && ve.Field == "date" {
			return clierrors.InvalidDate(date)
		}
		return clierrors.WrapWithMessage(err, clierrors.Argument, "invalid changelog entry")
	}

	existing, err := readChangelogForRelease(changelogPath)
	if err != nil {
		return err
	}
	if existing == "" {
		existing = changelog.DocumentHeader(cfg.Project)
	}
	if changelog.NewDocument(existing).HasVersion(next) {
		return clierrors.NewArgumentError(
			fmt.Sprintf("version %s is already in %s", next, changelogPath),
			"Pass a different --version",
		)
	}

	markdown := changelog.GenerateMarkdown(entry)
	out := cmd.OutOrStdout()

	if dryRun {
		fmt.Fprintf(out, "Would add to %s:\n\n%s", changelogPath, markdown)
		return nil
	}

	if err := writeFileAtomic(changelogPath, []byte(changelog.PrependToChangelog(existing, markdown))); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+changelogPath)
	}

	manifestPath, branch := gitContext(pair.CurrentPath)
	recordRelease(cmd, cfg, history.HistoryEntry{
		Version:         next,
		PreviousVersion: base,
		BumpType:        string(suggestion.BumpType),
		Reason:          suggestion.Reason,
		Added:           len(d.Added),
		Modified:        len(d.Modified),
		Removed:         len(d.Removed),
		Manifest:        manifestPath,
		Branch:          branch,
		Changelog:       changelogPath,
	})

	fmt.Fprintf(out, "Released %s (%s: %s)\n", next, suggestion.BumpType, suggestion.Reason)
	fmt.Fprintf(out, "Updated %s\n", changelogPath)
	return nil
}

// readChangelogForRelease returns the changelog text, or "" when the file does not exist yet.
func readChangelogForRelease(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("changelog not found, creating it", "path", path)
		return "", nil
	}
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+path)
	}
	return string(data), nil
}

// gitContext returns path relative to its repository root and the checked-out
// branch. Outside a repository path is returned unchanged with no branch.
func gitContext(path string) (string, string) {
	dir := filepath.Dir(path)
	if !git.IsGitRepository(dir) {
		return path, ""
	}

	rel := path
	if root, err := git.RepositoryRoot(dir); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = filepath.ToSlash(r)
			}
		}
	}

	branch, err := git.CurrentBranch(dir)
	if err != nil {
		slog.Debug("no branch for release record", "error", err)
	}
	return rel, branch
}

// recordRelease appends entry to the release history. Failures only warn.
func recordRelease(cmd *cobra.Command, cfg *config.Configuration, entry history.HistoryEntry) {
	w := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	w.Warn = cmd.ErrOrStderr()
	w.LogEntry(entry)
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
