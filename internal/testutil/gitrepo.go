package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a repository initialised in a test directory.
type GitRepo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
}

// NewGitRepo initialises a repository in dir, or in a new temp dir when dir is empty.
func NewGitRepo(t *testing.T, dir string) *GitRepo {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Commit writes content to rel (slash-separated, relative to Dir) and commits it.
func (r *GitRepo) Commit(rel, content, message string) plumbing.Hash {
	r.t.Helper()
	WriteFile(r.t, filepath.Join(r.Dir, filepath.FromSlash(rel)), content)

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(rel)
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag name at hash.
func (r *GitRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}
