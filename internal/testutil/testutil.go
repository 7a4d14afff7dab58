// Package testutil provides test helpers for projvar tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// Git runs a git command in dir with a fixed identity and dates,
// failing the test on error. It returns the trimmed output.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_AUTHOR_DATE=2021-09-20T10:11:12Z",
		"GIT_COMMITTER_DATE=2021-09-20T10:11:12Z",
		"GIT_CONFIG_NOSYSTEM=1",
		"HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// GitRepo creates a repository in a temp dir with one commit on branch
// "main" and an "origin" remote pointing at remote (skipped when empty).
// It skips the test when git is not installed.
func GitRepo(t *testing.T, remote string) string {
	t.Helper()
	RequireGit(t)
	dir := t.TempDir()
	Git(t, dir, "init", "--quiet", "--initial-branch=main")
	WriteFile(t, dir, "README.md", "# test\n")
	Git(t, dir, "add", "README.md")
	Git(t, dir, "commit", "--quiet", "-m", "initial")
	if remote != "" {
		Git(t, dir, "remote", "add", "origin", remote)
	}
	return dir
}
