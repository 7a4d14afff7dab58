package sources

import (
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
)

// Jenkins reads the variables set by Jenkins and its git plugin.
type Jenkins struct{}

func (s *Jenkins) Name() string         { return "jenkins" }
func (s *Jenkins) Hierarchy() Hierarchy { return High }

func (s *Jenkins) IsUsable(env *environment.Environment) bool {
	_, ok := env.Var("JENKINS_URL")
	return ok
}

func (s *Jenkins) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		web, err := s.Retrieve(env, property.RepoWebURL)
		if err != nil {
			return nil, err
		}
		if r := mapRated(web, hosting.SlugName); r != nil {
			return r, nil
		}
		return mapRated(fromVar(env, "JOB_NAME", property.Low), hosting.SlugName), nil
	case property.RepoWebURL:
		return mapRated(fromVar(env, "GIT_URL", property.High), func(clone string) string {
			web, err := hosting.CloneToWeb(clone)
			if err != nil {
				output.Debug("unusable GIT_URL", "url", clone, "err", err)
				return ""
			}
			return web
		}), nil
	case property.Ci:
		return ciFlag(env), nil
	case property.BuildBranch:
		// the git plugin reports "origin/main"
		return mapRated(firstVar(env, property.High, "BRANCH_NAME", "GIT_BRANCH"), func(b string) string {
			return strings.TrimPrefix(b, "origin/")
		}), nil
	case property.BuildTag:
		return fromVar(env, "TAG_NAME", property.High), nil
	case property.Version:
		return fromVar(env, "TAG_NAME", property.High), nil
	case property.BuildIdent:
		return fromVar(env, "GIT_COMMIT", property.High), nil
	case property.BuildNumber:
		return fromVar(env, "BUILD_NUMBER", property.High), nil
	default:
		return Derive(s, env, key)
	}
}
