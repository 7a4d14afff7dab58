package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/license"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

// VersionFile is read for the project version.
const VersionFile = "VERSION"

// directory names that say nothing about the project
var nonProjectDirNames = map[string]struct{}{
	"src": {}, "target": {}, "build": {}, "master": {}, "main": {},
	"develop": {}, "git": {}, "repo": {}, "repos": {}, "scm": {}, "trunk": {},
}

// FS reads the project directory: its name, the VERSION file, license files
// and the build machine.
type FS struct{}

func (s *FS) Name() string         { return "fs" }
func (s *FS) Hierarchy() Hierarchy { return Low }

func (s *FS) IsUsable(env *environment.Environment) bool {
	if env.Settings.RepoPath == "" {
		return false
	}
	info, err := os.Stat(env.Settings.RepoPath)
	return err == nil && info.IsDir()
}

func (s *FS) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		return s.name(env)
	case property.NameMachineReadable:
		return Derive(s, env, key)
	case property.Version:
		return s.version(env)
	case property.License:
		ids, err := s.licenses(env, true)
		if err != nil || len(ids) != 1 {
			return nil, err
		}
		return property.NewRated(property.High, ids[0]), nil
	case property.Licenses:
		ids, err := s.licenses(env, false)
		if err != nil || len(ids) == 0 {
			return nil, err
		}
		return property.NewRated(property.High, license.Join(ids)), nil
	case property.BuildDate:
		return property.NewRated(property.High, env.FormatDate(env.Now())), nil
	case property.BuildOs:
		goos, _ := platform.Current()
		return property.NewRated(property.Low, goos), nil
	case property.BuildOsFamily:
		goos, _ := platform.Current()
		if family := platform.Family(goos); family != "" {
			return property.NewRated(property.Low, family), nil
		}
		return nil, nil
	case property.BuildArch:
		_, goarch := platform.Current()
		return property.NewRated(property.Low, goarch), nil
	default:
		return nil, nil
	}
}

func (s *FS) name(env *environment.Environment) (*property.Rated, error) {
	abs, err := filepath.Abs(env.Settings.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("resolving repository path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	base := filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." {
		return nil, nil
	}
	if _, skip := nonProjectDirNames[strings.ToLower(base)]; skip {
		return nil, nil
	}
	return property.NewRated(property.Low, base), nil
}

func (s *FS) version(env *environment.Environment) (*property.Rated, error) {
	path := filepath.Join(env.Settings.RepoPath, VersionFile)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return nil, nil
	}
	return property.NewRated(property.High, v), nil
}

// licenses tries the license files and the LICENSES directory in the given
// order; the first method that finds anything wins.
func (s *FS) licenses(env *environment.Environment, filesFirst bool) ([]string, error) {
	methods := []func(string) ([]string, error){license.FromDir, license.FromFiles}
	if filesFirst {
		methods[0], methods[1] = methods[1], methods[0]
	}
	for _, m := range methods {
		ids, err := m(env.Settings.RepoPath)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}
	return nil, nil
}
