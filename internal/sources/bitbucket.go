package sources

import (
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
)

// BitBucket reads the default variables of Bitbucket Pipelines.
type BitBucket struct{}

func (s *BitBucket) Name() string         { return "bitbucket" }
func (s *BitBucket) Hierarchy() Hierarchy { return High }

func (s *BitBucket) IsUsable(env *environment.Environment) bool {
	_, ok := env.Var("BITBUCKET_BUILD_NUMBER")
	return ok
}

func (s *BitBucket) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		if r := mapRated(fromVar(env, "BITBUCKET_REPO_FULL_NAME", property.High), hosting.SlugName); r != nil {
			return r, nil
		}
		return fromVar(env, "BITBUCKET_PROJECT_KEY", property.Low), nil
	case property.RepoWebURL:
		// the full name is everything after https://bitbucket.org/
		return mapRated(fromVar(env, "BITBUCKET_REPO_FULL_NAME", property.High), func(slug string) string {
			return "https://" + hosting.DomainBitBucket + "/" + strings.Trim(slug, "/")
		}), nil
	case property.Ci:
		return ciFlag(env), nil
	case property.BuildBranch:
		return fromVar(env, "BITBUCKET_BRANCH", property.High), nil
	case property.BuildTag:
		return fromVar(env, "BITBUCKET_TAG", property.High), nil
	case property.BuildIdent:
		return fromVar(env, "BITBUCKET_COMMIT", property.High), nil
	case property.BuildNumber:
		return fromVar(env, "BITBUCKET_BUILD_NUMBER", property.High), nil
	case property.Version:
		if tag := fromVar(env, "BITBUCKET_TAG", property.High); tag != nil {
			return tag, nil
		}
		return mapRated(fromVar(env, "BITBUCKET_COMMIT", property.Low), shortCommit), nil
	case property.RepoCloneURL:
		if r := mapRated(fromVar(env, "BITBUCKET_GIT_HTTP_ORIGIN", property.High), originClone); r != nil {
			return r, nil
		}
		return Derive(s, env, key)
	case property.RepoCloneURLSSH:
		if r := fromVar(env, "BITBUCKET_GIT_SSH_ORIGIN", property.High); r != nil {
			return r, nil
		}
		return Derive(s, env, key)
	default:
		return Derive(s, env, key)
	}
}

// originClone turns an http(s) origin into a clone URL.
func originClone(origin string) string {
	web, err := hosting.CloneToWeb(origin)
	if err != nil {
		output.Debug("unusable origin", "origin", origin, "err", err)
		return ""
	}
	clone, err := hosting.WebToClone(web, hosting.HTTPS)
	if err != nil {
		return ""
	}
	return clone
}
