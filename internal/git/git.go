// Package git reads manifests from git history using go-git. iconlog only needs
// read access: resolving a revision, reading one file at it, and finding the
// newest version tag.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/mod/semver"
)

// ErrFileNotInRevision is returned when the requested path does not exist at a revision.
var ErrFileNotInRevision = errors.New("file not present at revision")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository containing path, walking up to find .git.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// repoRoot returns the worktree root of repo.
func repoRoot(repo *git.Repository) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// RepositoryRoot returns the root directory of the repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}
	return repoRoot(repo)
}

// IsGitRepository reports whether path is inside a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// CurrentBranch returns the short name of the checked-out branch, or "" on a detached HEAD.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// ReadFileAtRevision returns the contents of filePath as committed at rev
// (anything go-git can resolve: HEAD, HEAD~1, a branch, a tag, a hash).
// filePath may be absolute or relative to repoPath.
func ReadFileAtRevision(repoPath, rev, filePath string) ([]byte, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	rel, err := pathInRepo(repo, repoPath, filePath)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", rev, err)
	}
	logDebug("[git] %s resolved to %s", rev, hash)

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}

	file, err := commit.File(rel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s at %s: %w", rel, rev, ErrFileNotInRevision)
		}
		return nil, fmt.Errorf("reading %s at %s: %w", rel, rev, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", rel, rev, err)
	}
	return []byte(contents), nil
}

// pathInRepo converts filePath to the slash-separated path git stores it under.
func pathInRepo(repo *git.Repository, repoPath, filePath string) (string, error) {
	root, err := repoRoot(repo)
	if err != nil {
		return "", err
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		base := repoPath
		if base == "" {
			if base, err = os.Getwd(); err != nil {
				return "", fmt.Errorf("getting current directory: %w", err)
			}
		}
		abs = filepath.Join(base, filePath)
	}

	rel, err := filepath.Rel(resolveLinks(root), resolveLinks(abs))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", filePath, root)
	}
	return filepath.ToSlash(rel), nil
}

// resolveLinks resolves symlinks in the longest existing prefix of path so
// that temp directories behind symlinks compare equal to the worktree root.
func resolveLinks(path string) string {
	path = filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir, base := filepath.Split(path)
	if dir == "" || filepath.Clean(dir) == path {
		return path
	}
	return filepath.Join(resolveLinks(dir), base)
}

// LatestVersionTag returns the highest semantic-version tag in the repository
// containing path, with its leading "v" removed. Tags that are not versions are
// ignored. Returns "" when there is none.
func LatestVersionTag(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	best := ""
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		v := name
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if semver.Canonical(v) != v || semver.Prerelease(v) != "" {
			return nil
		}
		if best == "" || semver.Compare(v, best) > 0 {
			best = v
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] latest version tag: %q", best)
	return strings.TrimPrefix(best, "v"), nil
}
