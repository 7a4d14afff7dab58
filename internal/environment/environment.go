// Package environment holds everything the sources read from: the settings,
// the input variables and, lazily, the version control work tree.
package environment

import (
	"errors"
	"time"

	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/vcs"
)

// Environment is the state shared by all sources during one run.
type Environment struct {
	// Settings is the resolved configuration.
	Settings *config.Settings

	// Vars are the input variables (OS environment, variables files and
	// -D pairs, merged in that order).
	Vars map[string]string

	// Now returns the current time; replaced in tests.
	Now func() time.Time

	repo       vcs.Repo
	repoOpened bool
}

// New creates an environment. A nil settings uses config.DefaultSettings.
func New(settings *config.Settings, vars map[string]string) *Environment {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if vars == nil {
		vars = map[string]string{}
	}
	return &Environment{
		Settings: settings,
		Vars:     vars,
		Now:      time.Now,
	}
}

// Var returns the value of an input variable. Empty values count as unset.
func (e *Environment) Var(key string) (string, bool) {
	v, ok := e.Vars[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Repo returns the work tree at the repo path, or nil if there is none.
// The lookup happens once.
func (e *Environment) Repo() vcs.Repo {
	if e.repoOpened {
		return e.repo
	}
	e.repoOpened = true
	if e.Settings.RepoPath == "" {
		return nil
	}
	g, err := vcs.Open(e.Settings.RepoPath)
	if err != nil {
		if !errors.Is(err, vcs.ErrNotRepository) {
			output.Warn("inspecting repository failed", "path", e.Settings.RepoPath, "err", err)
		} else {
			output.Debug("no git repository", "path", e.Settings.RepoPath)
		}
		return nil
	}
	e.repo = g
	return e.repo
}

// SetRepo replaces the work tree; a nil repo means "no repository".
func (e *Environment) SetRepo(r vcs.Repo) {
	e.repo = r
	e.repoOpened = true
}

// FormatDate formats t with the configured date layout.
func (e *Environment) FormatDate(t time.Time) string {
	layout := e.Settings.DateFormat
	if layout == "" {
		layout = config.DefaultDateFormat
	}
	return t.Format(layout)
}
