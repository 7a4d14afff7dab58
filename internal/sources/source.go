// Package sources provides the places property values are read from:
// the file system, the git work tree, input variables and CI services.
package sources

import (
	"fmt"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/property"
)

// Hierarchy orders sources. Answers of a higher hierarchy override answers
// of a lower one; within one hierarchy the later registered source wins.
type Hierarchy int

const (
	Low Hierarchy = iota
	Normal
	High
)

func (h Hierarchy) String() string {
	switch h {
	case Low:
		return "low"
	case Normal:
		return "normal"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Hierarchy(%d)", int(h))
	}
}

// Source answers property queries.
type Source interface {
	// Name is a short identifier shown in reports.
	Name() string

	// IsUsable reports whether the source applies to this environment,
	// e.g. whether the run happens on its CI service.
	IsUsable(env *environment.Environment) bool

	Hierarchy() Hierarchy

	// Retrieve returns the source's answer for key. A nil value without
	// error means the source has no opinion; an error is a fault of the
	// source (I/O, malformed data) and aborts the run.
	Retrieve(env *environment.Environment, key property.Key) (*property.Rated, error)
}

// DefaultList returns all sources in registration order.
func DefaultList() []Source {
	return []Source{
		&FS{},
		&Git{},
		&Env{},
		&GitHub{},
		&GitLab{},
		&BitBucket{},
		&Travis{},
		&Jenkins{},
	}
}

// Names returns the names of srcs.
func Names(srcs []Source) []string {
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name()
	}
	return names
}

// fromVar answers with the value of an input variable.
func fromVar(env *environment.Environment, name string, c property.Confidence) *property.Rated {
	v, ok := env.Var(name)
	if !ok {
		return nil
	}
	return property.NewRated(c, v)
}

// firstVar answers with the first set variable of names.
func firstVar(env *environment.Environment, c property.Confidence, names ...string) *property.Rated {
	for _, name := range names {
		if r := fromVar(env, name, c); r != nil {
			return r
		}
	}
	return nil
}

// ciFlag answers the Ci property the way CI services set it: "CI" when set,
// otherwise a low confidence "false".
func ciFlag(env *environment.Environment) *property.Rated {
	if r := fromVar(env, "CI", property.High); r != nil {
		return r
	}
	return property.NewRated(property.Low, "false")
}

// mapRated applies fn to the value of r; empty results mean no answer.
func mapRated(r *property.Rated, fn func(string) string) *property.Rated {
	if r == nil {
		return nil
	}
	v := fn(r.Value)
	if v == "" {
		return nil
	}
	return property.NewRated(r.Confidence, v)
}

// shortCommit renders a commit id as a git-describe style version.
func shortCommit(id string) string {
	if len(id) > 7 {
		id = id[:7]
	}
	return "g" + id
}
