package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

// GitLab reads the predefined variables of GitLab CI/CD.
type GitLab struct{}

func (s *GitLab) Name() string         { return "gitlab" }
func (s *GitLab) Hierarchy() Hierarchy { return High }

func (s *GitLab) IsUsable(env *environment.Environment) bool {
	_, ok := env.Var("GITLAB_CI")
	return ok
}

func (s *GitLab) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	switch key {
	case property.Name:
		return fromVar(env, "CI_PROJECT_NAME", property.High), nil
	case property.RepoWebURL:
		return fromVar(env, "CI_PROJECT_URL", property.High), nil
	case property.Ci:
		return ciFlag(env), nil
	case property.BuildBranch:
		return fromVar(env, "CI_COMMIT_BRANCH", property.High), nil
	case property.BuildTag:
		return fromVar(env, "CI_COMMIT_TAG", property.High), nil
	case property.BuildIdent:
		return fromVar(env, "CI_COMMIT_SHA", property.High), nil
	case property.BuildNumber:
		return fromVar(env, "CI_PIPELINE_IID", property.High), nil
	case property.Version:
		if tag := fromVar(env, "CI_COMMIT_TAG", property.High); tag != nil {
			return tag, nil
		}
		return mapRated(fromVar(env, "CI_COMMIT_SHORT_SHA", property.Low), shortCommit), nil
	case property.VersionDate:
		ts, ok := env.Var("CI_COMMIT_TIMESTAMP")
		if !ok {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing CI_COMMIT_TIMESTAMP %q: %w", ts, err)
		}
		return property.NewRated(property.High, env.FormatDate(t)), nil
	case property.BuildOs, property.BuildArch:
		// "linux/amd64"
		v, ok := env.Var("CI_RUNNER_EXECUTABLE_ARCH")
		if !ok {
			return nil, nil
		}
		goos, goarch, _ := strings.Cut(v, "/")
		if key == property.BuildOs {
			return mapRated(property.NewRated(property.Low, goos), platform.NormalizeOS), nil
		}
		return mapRated(property.NewRated(property.Low, goarch), platform.NormalizeArch), nil
	case property.BuildHostingURL:
		if r := fromVar(env, "CI_PAGES_URL", property.High); r != nil {
			return r, nil
		}
		return Derive(s, env, key)
	case property.RepoCloneURL:
		return s.cloneURL(env, key, hosting.HTTPS)
	case property.RepoCloneURLSSH:
		return s.cloneURL(env, key, hosting.SSH)
	default:
		return Derive(s, env, key)
	}
}

// cloneURL converts CI_REPOSITORY_URL, which carries a job token, to a
// clean clone URL.
func (s *GitLab) cloneURL(env *environment.Environment, key property.Key, proto hosting.Protocol) (*property.Rated, error) {
	raw, ok := env.Var("CI_REPOSITORY_URL")
	if !ok {
		return Derive(s, env, key)
	}
	web, err := hosting.CloneToWeb(raw)
	if err != nil {
		return nil, fmt.Errorf("converting CI_REPOSITORY_URL: %w", err)
	}
	clone, err := hosting.WebToClone(web, proto)
	if err != nil {
		return nil, fmt.Errorf("converting CI_REPOSITORY_URL: %w", err)
	}
	return property.NewRated(property.High, clone), nil
}
