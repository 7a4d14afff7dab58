package sources

import (
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/property"
)

// Env answers every property from its variable, e.g. PROJECT_VERSION.
type Env struct{}

func (s *Env) Name() string                             { return "env" }
func (s *Env) Hierarchy() Hierarchy                     { return Normal }
func (s *Env) IsUsable(_ *environment.Environment) bool { return true }

func (s *Env) Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error) {
	if r := fromVar(env, property.Of(key).ExternalKey(env.Settings.KeyPrefix), property.High); r != nil {
		return r, nil
	}
	if key == property.Ci {
		return ciFlag(env), nil
	}
	return nil, nil
}
