package service

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func setupTaggedRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "a.txt"), []byte("content"), 0644)
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	sig := &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  time.Unix(1700000000, 0),
	}
	hash, err := wt.Commit("initial commit", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	_, err = repo.CreateTag("v1.0.0", hash, nil)
	require.NoError(t, err)
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(dir))
}

func TestNewGitService(t *testing.T) {
	t.Run("Should fall back to the default timeout", func(t *testing.T) {
		svc, ok := NewGitService(6, 0).(*gitService)
		require.True(t, ok)
		assert.Equal(t, DefaultGitTimeout, svc.timeout)
	})
	t.Run("Should keep an explicit timeout", func(t *testing.T) {
		svc, ok := NewGitService(6, 3*time.Second).(*gitService)
		require.True(t, ok)
		assert.Equal(t, 3*time.Second, svc.timeout)
	})
	t.Run("Should clamp the abbreviation length to the minimum", func(t *testing.T) {
		svc, ok := NewGitService(2, 0).(*gitService)
		require.True(t, ok)
		assert.Equal(t, MinAbbrevLength, svc.abbrev)
	})
}

func TestGitService_Describe(t *testing.T) {
	ctx := context.Background()
	t.Run("Should return the tag name for a tagged HEAD", func(t *testing.T) {
		requireGit(t)
		chdir(t, setupTaggedRepo(t))
		out, err := NewGitService(6, 0).Describe(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", out)
	})
	t.Run("Should fail outside a git repository", func(t *testing.T) {
		requireGit(t)
		chdir(t, t.TempDir())
		_, err := NewGitService(6, 0).Describe(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute git describe")
	})
	t.Run("Should fail when the git binary is missing", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		_, err := NewGitService(6, 0).Describe(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute git describe")
	})
}

func TestGitService_SanitizeDescription(t *testing.T) {
	s := &gitService{}
	t.Run("Should accept describe shaped output", func(t *testing.T) {
		for _, desc := range []string{
			"v1.2.3",
			"v1.2.3-5-gabcdef",
			"v1.2.3-5+gabcdef",
			"release/v1.0_final",
		} {
			assert.NoError(t, s.sanitizeDescription(desc), desc)
		}
	})
	t.Run("Should reject suspicious output", func(t *testing.T) {
		for _, desc := range []string{
			"",
			"v1.0.0 pwned",
			"v1.0.0;rm -rf /",
			"$(whoami)",
			strings.Repeat("a", 256),
		} {
			assert.Error(t, s.sanitizeDescription(desc), desc)
		}
	})
}
