// Package vcs reads version control metadata of a project work tree.
//
// The only supported VCS is git, queried through the git command line tool.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const binGit = "git"

// RemoteName is the remote whose URL is reported.
const RemoteName = "origin"

// ErrNotRepository is returned by Open when the path is not inside a git
// work tree, or git is not installed.
var ErrNotRepository = errors.New("not a git work tree")

// Repo is the read-only view on a work tree the git source needs.
// Empty results without error mean "not available" (e.g. detached HEAD has
// no branch, an untagged commit has no tag).
type Repo interface {
	Branch() (string, error)
	Tag() (string, error)
	CommitID() (string, error)
	// Describe returns a version like "1.2.3", "1.2.3-4-gabc1234-dirty"
	// or "gabc1234" when there are no tags.
	Describe() (string, error)
	CommitDate() (time.Time, error)
	RemoteURL() (string, error)
}

// Git implements Repo by running git in a directory.
type Git struct {
	dir string
}

var _ Repo = (*Git)(nil)

// Open checks that dir is inside a git work tree.
func Open(dir string) (*Git, error) {
	if _, err := exec.LookPath(binGit); err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrNotRepository, binGit)
	}
	g := &Git{dir: dir}
	out, ok, err := g.query("rev-parse", "--is-inside-work-tree")
	if err != nil {
		return nil, err
	}
	if !ok || out != "true" {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	return g, nil
}

// Dir returns the directory git is run in.
func (g *Git) Dir() string {
	return g.dir
}

func (g *Git) Branch() (string, error) {
	out, _, err := g.query("symbolic-ref", "--short", "-q", "HEAD")
	return out, err
}

func (g *Git) Tag() (string, error) {
	out, _, err := g.query("describe", "--tags", "--exact-match", "HEAD")
	return out, err
}

func (g *Git) CommitID() (string, error) {
	out, _, err := g.query("rev-parse", "HEAD")
	return out, err
}

func (g *Git) Describe() (string, error) {
	out, ok, err := g.query("describe", "--tags", "--abbrev=7", "--dirty", "--broken")
	if err != nil {
		return "", err
	}
	if ok {
		return strings.TrimPrefix(out, "v"), nil
	}

	// no tags reachable
	hash, ok, err := g.query("rev-parse", "--short=7", "HEAD")
	if err != nil || !ok {
		return "", err
	}
	version := "g" + hash
	status, _, err := g.query("status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return "", err
	}
	if status != "" {
		version += "-dirty"
	}
	return version, nil
}

func (g *Git) CommitDate() (time.Time, error) {
	out, ok, err := g.query("log", "-1", "--format=%cI", "HEAD")
	if err != nil || !ok || out == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing commit date %q: %w", out, err)
	}
	return t, nil
}

func (g *Git) RemoteURL() (string, error) {
	out, _, err := g.query("remote", "get-url", RemoteName)
	return out, err
}

// query runs git and returns its trimmed stdout. A non-zero exit status is
// reported as ok=false without error; failing to run git at all is an error.
func (g *Git) query(args ...string) (string, bool, error) {
	cmd := exec.Command(binGit, args...)
	cmd.Dir = g.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("running git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), true, nil
}
