package helpers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SetupTestGitRepo initializes a temporary git repository for testing.
// Returns the repository, its worktree, and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	tempDir := t.TempDir()

	repo, err := git.PlainInit(tempDir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	return repo, w, tempDir
}

func testSignature() *object.Signature {
	return &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()}
}

// CommitFile writes name under repoPath, stages it and commits. Returns the commit hash.
func CommitFile(t *testing.T, repo *git.Repository, repoPath, name, content, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	full := filepath.Join(repoPath, filepath.FromSlash(name))
	if mkErr := os.MkdirAll(filepath.Dir(full), 0o750); mkErr != nil {
		t.Fatalf("mkdir: %v", mkErr)
	}
	if writeErr := os.WriteFile(full, []byte(content), 0o600); writeErr != nil {
		t.Fatalf("write file: %v", writeErr)
	}
	if _, addErr := wt.Add(name); addErr != nil {
		t.Fatalf("add: %v", addErr)
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: testSignature()})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash
}

// Tag creates a lightweight tag, or an annotated one when annotated is true.
func Tag(t *testing.T, repo *git.Repository, name string, target plumbing.Hash, annotated bool) {
	t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{Tagger: testSignature(), Message: "release " + name}
	}
	if _, err := repo.CreateTag(name, target, opts); err != nil {
		t.Fatalf("create tag %s: %v", name, err)
	}
}

// Checkout switches the worktree to branch, creating it from HEAD when create is true.
func Checkout(t *testing.T, repo *git.Repository, branch string, create bool) {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch), Create: create}); err != nil {
		t.Fatalf("checkout %s: %v", branch, err)
	}
}

// CurrentBranch returns the short name of the branch HEAD points to.
func CurrentBranch(t *testing.T, repo *git.Repository) string {
	t.Helper()
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	return head.Name().Short()
}
