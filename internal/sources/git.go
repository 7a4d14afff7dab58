package sources

import (
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
)

// Git reads the git work tree at the repository path.
type Git struct{}

func (s *Git) Name() string         { return "git" }
func (s *Git) Hierarchy() Hierarchy { return Low }

func (s *Git) IsUsable(env *environment.Environment) bool {
	return env.Repo() != nil
}

func (s *Git) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	repo := env.Repo()
	if repo == nil {
		return nil, nil
	}
	switch key {
	case property.BuildBranch:
		return rated(property.High)(repo.Branch())
	case property.BuildTag:
		return rated(property.High)(repo.Tag())
	case property.BuildIdent:
		return rated(property.High)(repo.CommitID())
	case property.Version:
		return rated(property.Middle)(repo.Describe())
	case property.VersionDate:
		t, err := repo.CommitDate()
		if err != nil || t.IsZero() {
			return nil, err
		}
		return property.NewRated(property.High, env.FormatDate(t)), nil
	case property.RepoWebURL:
		remote, err := repo.RemoteURL()
		if err != nil || remote == "" {
			return nil, err
		}
		web, err := hosting.CloneToWeb(remote)
		if err != nil {
			output.Debug("remote is not a hosted repository", "remote", remote, "err", err)
			return nil, nil
		}
		return property.NewRated(property.Middle, web), nil
	case property.Name:
		web, err := s.Retrieve(env, property.RepoWebURL)
		if err != nil {
			return nil, err
		}
		return mapRated(web, hosting.SlugName), nil
	default:
		return Derive(s, env, key)
	}
}

// rated adapts a (value, error) pair to an answer; "" is no answer.
func rated(c property.Confidence) func(string, error) (*property.Rated, error) {
	return func(v string, err error) (*property.Rated, error) {
		if err != nil || v == "" {
			return nil, err
		}
		return property.NewRated(c, v), nil
	}
}
