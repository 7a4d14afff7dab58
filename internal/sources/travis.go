package sources

import (
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

// Travis reads the default environment variables of Travis CI.
type Travis struct{}

func (s *Travis) Name() string         { return "travis" }
func (s *Travis) Hierarchy() Hierarchy { return High }

func (s *Travis) IsUsable(env *environment.Environment) bool {
	v, _ := env.Var("TRAVIS")
	return v == "true"
}

func (s *Travis) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		return mapRated(fromVar(env, "TRAVIS_REPO_SLUG", property.High), hosting.SlugName), nil
	case property.NameMachineReadable, property.BuildOsFamily:
		return Derive(s, env, key)
	case property.Ci:
		return ciFlag(env), nil
	case property.BuildBranch:
		return fromVar(env, "TRAVIS_BRANCH", property.High), nil
	case property.BuildTag:
		return fromVar(env, "TRAVIS_TAG", property.High), nil
	case property.BuildIdent:
		return fromVar(env, "TRAVIS_COMMIT", property.High), nil
	case property.BuildNumber:
		return fromVar(env, "TRAVIS_BUILD_NUMBER", property.High), nil
	case property.BuildOs:
		return mapRated(fromVar(env, "TRAVIS_OS_NAME", property.Middle), platform.NormalizeOS), nil
	case property.BuildArch:
		return mapRated(fromVar(env, "TRAVIS_CPU_ARCH", property.Middle), platform.NormalizeArch), nil
	case property.Version:
		if tag := fromVar(env, "TRAVIS_TAG", property.High); tag != nil {
			return tag, nil
		}
		return mapRated(fromVar(env, "TRAVIS_COMMIT", property.Low), shortCommit), nil
	default:
		// Travis builds repositories of several hosting services and does
		// not say which one.
		return nil, nil
	}
}
