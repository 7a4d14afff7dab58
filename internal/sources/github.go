package sources

import (
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

// GitHub reads the variables GitHub Actions sets for a workflow run.
type GitHub struct{}

func (s *GitHub) Name() string         { return "github" }
func (s *GitHub) Hierarchy() Hierarchy { return High }

func (s *GitHub) IsUsable(env *environment.Environment) bool {
	v, _ := env.Var("GITHUB_ACTIONS")
	return v == "true"
}

func (s *GitHub) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		return mapRated(fromVar(env, "GITHUB_REPOSITORY", property.High), hosting.SlugName), nil
	case property.RepoWebURL:
		server, ok := env.Var("GITHUB_SERVER_URL")
		if !ok {
			server = "https://" + hosting.DomainGitHub
		}
		repo, ok := env.Var("GITHUB_REPOSITORY")
		if !ok {
			return nil, nil
		}
		return property.NewRated(property.High, strings.TrimRight(server, "/")+"/"+strings.Trim(repo, "/")), nil
	case property.Ci:
		return ciFlag(env), nil
	case property.BuildBranch:
		return s.ref(env, "branch", "refs/heads/"), nil
	case property.BuildTag:
		return s.ref(env, "tag", "refs/tags/"), nil
	case property.Version:
		return s.ref(env, "tag", "refs/tags/"), nil
	case property.BuildIdent:
		return fromVar(env, "GITHUB_SHA", property.High), nil
	case property.BuildNumber:
		return fromVar(env, "GITHUB_RUN_NUMBER", property.High), nil
	case property.BuildOs:
		return mapRated(fromVar(env, "RUNNER_OS", property.Middle), platform.NormalizeOS), nil
	case property.BuildArch:
		return mapRated(fromVar(env, "RUNNER_ARCH", property.Middle), platform.NormalizeArch), nil
	default:
		return Derive(s, env, key)
	}
}

// ref returns the branch or tag name that triggered the run.
func (s *GitHub) ref(env *environment.Environment, refType, prefix string) *property.Rated {
	if t, ok := env.Var("GITHUB_REF_TYPE"); ok {
		if t != refType {
			return nil
		}
		return fromVar(env, "GITHUB_REF_NAME", property.High)
	}
	ref, ok := env.Var("GITHUB_REF")
	if !ok {
		return nil
	}
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" {
		return nil
	}
	return property.NewRated(property.High, name)
}
