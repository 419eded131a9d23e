package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/iconlog/internal/advisor"
	"github.com/ariel-frischer/iconlog/internal/config"
	"github.com/ariel-frischer/iconlog/internal/diff"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/git"
	"github.com/ariel-frischer/iconlog/internal/manifest"
)

// manifestPair is the current manifest and the one it is compared against.
type manifestPair struct {
	CurrentPath string
	Current     *manifest.Manifest
	// PreviousSource describes where Previous came from ("" when there is none).
	PreviousSource string
	// Previous is nil on a first release.
	Previous *manifest.Manifest
}

// Diff compares the pair. A nil Previous diffs against an empty manifest.
func (p *manifestPair) Diff() diff.Diff {
	return diff.Compute(p.Current, p.Previous)
}

// readManifestFile reads and strictly parses the manifest at path.
func readManifestFile(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, clierrors.ManifestNotFound(path)
		}
		return nil, clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+path)
	}

	m, err := manifest.ParseStrict(data)
	if err != nil {
		return nil, clierrors.InvalidManifest(path, err)
	}
	slog.Debug("loaded manifest", "path", path, "version", m.Version, "icons", len(m.Icons))
	return m, nil
}

// readManifestAtRef reads the manifest at path as committed at ref. A path
// that did not exist at ref yields nil: the icon set starts there.
func readManifestAtRef(ref, path string) (*manifest.Manifest, error) {
	data, err := git.ReadFileAtRevision("", ref, path)
	if err != nil {
		if errors.Is(err, git.ErrFileNotInRevision) {
			slog.Info("manifest not present at revision, treating as first release", "ref", ref, "path", path)
			return nil, nil
		}
		return nil, clierrors.GitRevisionFailed(ref, path, err)
	}

	m, err := manifest.ParseStrict(data)
	if err != nil {
		return nil, clierrors.InvalidManifest(ref+":"+path, err)
	}
	return m, nil
}

// loadManifestPair resolves the current manifest (args[0] or manifest_path)
// and the previous one (args[1], else previousRef, else previous_ref) and
// loads both concurrently.
func loadManifestPair(cfg *config.Configuration, args []string, previousRef string) (*manifestPair, error) {
	pair := &manifestPair{CurrentPath: cfg.ManifestPath}
	if len(args) > 0 {
		pair.CurrentPath = args[0]
	}
	if previousRef == "" {
		previousRef = cfg.PreviousRef
	}

	var g errgroup.Group
	g.Go(func() error {
		m, err := readManifestFile(pair.CurrentPath)
		pair.Current = m
		return err
	})

	switch {
	case len(args) > 1:
		pair.PreviousSource = args[1]
		g.Go(func() error {
			m, err := readManifestFile(args[1])
			pair.Previous = m
			return err
		})
	case previousRef != "":
		pair.PreviousSource = previousRef + ":" + pair.CurrentPath
		g.Go(func() error {
			m, err := readManifestAtRef(previousRef, pair.CurrentPath)
			pair.Previous = m
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if pair.Previous == nil {
		pair.PreviousSource = ""
	}

	if err := checkDuplicates(cfg.StrictUnique, pair.CurrentPath, pair.Current); err != nil {
		return nil, err
	}
	if err := checkDuplicates(cfg.StrictUnique, pair.PreviousSource, pair.Previous); err != nil {
		return nil, err
	}
	return pair, nil
}

// checkDuplicates rejects repeated normalized names when strict, and logs them otherwise.
func checkDuplicates(strict bool, source string, m *manifest.Manifest) error {
	if m == nil {
		return nil
	}
	dups := manifest.DuplicateNames(m)
	if len(dups) == 0 {
		return nil
	}
	if strict {
		return clierrors.DuplicateNames(source, dups)
	}
	slog.Warn("duplicate normalized names, the last occurrence of each is used", "manifest", source, "names", dups)
	return nil
}

// versionFlags are the flags that decide which version a release gets.
type versionFlags struct {
	// Version is the explicit release version (--version).
	Version string
	// Current is the explicit version being released from (--current-version).
	Current string
	// FromTag takes the current version from the newest git version tag.
	FromTag bool
}

func readVersionFlags(cmd *cobra.Command) versionFlags {
	var vf versionFlags
	vf.Version, _ = cmd.Flags().GetString("version")
	vf.Current, _ = cmd.Flags().GetString("current-version")
	vf.FromTag, _ = cmd.Flags().GetBool("from-tag")
	return vf
}

// addVersionFlags registers the flags read by readVersionFlags. withVersion
// adds --version for commands that produce a release.
func addVersionFlags(cmd *cobra.Command, withVersion bool) {
	if withVersion {
		cmd.Flags().String("version", "", "Release version (default: suggested next version)")
	}
	cmd.Flags().String("current-version", "", "Version being released from (default: previous manifest's version)")
	cmd.Flags().Bool("from-tag", false, "Take the current version from the newest vX.Y.Z git tag (overrides the previous manifest's version)")
}

// baseVersion returns the version the pair is released from: --current-version,
// else the newest tag when --from-tag is set, else the previous manifest's
// version. Returns "" when none applies.
func baseVersion(vf versionFlags, pair *manifestPair) (string, error) {
	if vf.Current != "" && vf.FromTag {
		return "", clierrors.NewArgumentError(
			"--current-version and --from-tag cannot be used together",
			"Pass one of them",
		)
	}

	candidate := vf.Current
	if vf.FromTag {
		tag, err := git.LatestVersionTag(filepath.Dir(pair.CurrentPath))
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "reading version tags")
		}
		if tag == "" {
			slog.Warn("no vX.Y.Z tag found, using the previous manifest's version")
		}
		candidate = tag
	}
	if candidate == "" && pair.Previous != nil {
		candidate = pair.Previous.Version
	}
	if candidate == "" {
		return "", nil
	}

	v, err := advisor.ParseVersion(candidate)
	if err != nil {
		return "", clierrors.InvalidVersion(candidate)
	}
	return v.String(), nil
}

// releaseVersion decides the version of the release described by pair and d.
// It returns the base version ("" on a first release) alongside.
func releaseVersion(vf versionFlags, pair *manifestPair, d diff.Diff) (next, base string, suggestion advisor.Suggestion, err error) {
	suggestion = advisor.SuggestVersionBump(d)

	base, err = baseVersion(vf, pair)
	if err != nil {
		return "", "", suggestion, err
	}

	if vf.Version != "" {
		v, err := advisor.ParseVersion(vf.Version)
		if err != nil {
			return "", base, suggestion, clierrors.InvalidVersion(vf.Version)
		}
		return v.String(), base, suggestion, nil
	}

	if base == "" {
		// First release: the manifest's own version is the release version.
		if pair.Current == nil {
			return "", "", suggestion, clierrors.NoPreviousVersion()
		}
		v, err := advisor.ParseVersion(pair.Current.Version)
		if err != nil {
			return "", "", suggestion, clierrors.InvalidVersion(pair.Current.Version)
		}
		return v.String(), "", suggestion, nil
	}

	next, err = advisor.IncrementVersion(base, suggestion.BumpType)
	if err != nil {
		return "", base, suggestion, fmt.Errorf("incrementing %s: %w", base, err)
	}
	return next, base, suggestion, nil
}
