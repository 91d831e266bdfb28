//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/tim-timman/git-tools/internal/config"
)

// These tests drive the real command tree against real git repositories.
// They share package-level flag state, so they must not run in parallel.

// runGitR executes a fresh command tree with the given args, capturing
// stdout and stderr.
func runGitR(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	stdoutW, stderrW = &out, &errOut
	defCfg := config.Default()
	cfg = &defCfg
	t.Cleanup(func() {
		stdoutW, stderrW = os.Stdout, os.Stderr
		cfg = nil
	})

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	cmd.SetArgs(args)
	cmd.SetOut(&errOut)
	cmd.SetErr(&errOut)

	return out.String(), errOut.String(), cmd.Execute()
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// gitIn runs a git command in dir, failing the test on error.
func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
}

// setupTestRepo creates a git repo with an initial commit at dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	gitIn(t, repoPath, "init")
	gitIn(t, repoPath, "config", "user.email", "test@test.com")
	gitIn(t, repoPath, "config", "user.name", "Test User")
	gitIn(t, repoPath, "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	gitIn(t, repoPath, "add", "README.md")
	gitIn(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// commitFile writes a file into the repo and commits it, so git grep sees it
// as tracked.
func commitFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	gitIn(t, repoPath, "add", name)
	gitIn(t, repoPath, "commit", "-m", "Add "+name)
}
