// Package pipeline resolves every property from a list of sources and
// validates the results.
//
// Sources are queried in ascending hierarchy order. Every answer is stored,
// and the last one for a key becomes its primary value, so an answer from a
// higher hierarchy (or a later source of the same hierarchy) wins.
// Confidence is recorded with each answer but does not affect the choice.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/sources"
	"github.com/projvar/cli/internal/storage"
	"github.com/projvar/cli/internal/validator"
)

// SourceError is a fault of a source while answering a query.
// It aborts the run.
type SourceError struct {
	Source string
	Key    property.Key
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q failed to retrieve %s: %v", e.Source, e.Key, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Outcome is the validation result for one key.
type Outcome struct {
	Key     property.Key
	Value   string
	Warning *validator.Warning
	Err     error
}

// Result holds everything a run produced.
type Result struct {
	// Storage holds all answers; its source indices refer to Sources.
	Storage *storage.Storage

	// Sources are the usable sources in query order.
	Sources []sources.Source

	// Outcomes has one entry per queried key, in key order.
	Outcomes []Outcome
}

// SourceNames returns the names of the queried sources, in query order.
func (r *Result) SourceNames() []string {
	return sources.Names(r.Sources)
}

// Failed reports whether a key in required has a validation error.
func (r *Result) Failed(required property.Set) bool {
	for _, o := range r.Outcomes {
		if o.Err != nil && required.Contains(o.Key) {
			return true
		}
	}
	return false
}

// Errors returns the outcomes that carry a validation error.
func (r *Result) Errors() []Outcome {
	var errs []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o)
		}
	}
	return errs
}

// Usable returns the usable sources of srcs, stable-sorted by hierarchy.
func Usable(env *environment.Environment, srcs []sources.Source) []sources.Source {
	var usable []sources.Source
	for _, s := range srcs {
		if s.IsUsable(env) {
			usable = append(usable, s)
		} else {
			output.Debug("source not usable", "source", s.Name())
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Hierarchy() < usable[j].Hierarchy()
	})
	return usable
}

// Keys returns the keys a run queries: the required keys when only those
// are wanted, all keys otherwise.
func Keys(env *environment.Environment) []property.Key {
	if env.Settings.OnlyRequired {
		return env.Settings.RequiredKeys.Sorted()
	}
	return property.Keys()
}

// Run queries srcs for all keys and validates the primary values.
func Run(env *environment.Environment, srcs []sources.Source) (*Result, error) {
	usable := Usable(env, srcs)
	keys := Keys(env)
	store := storage.New()

	for idx, src := range usable {
		output.Debug("fetching from source", "source", src.Name(), "hierarchy", src.Hierarchy())
		for _, key := range keys {
			rated, err := src.Retrieve(env, key)
			if err != nil {
				return nil, &SourceError{Source: src.Name(), Key: key, Err: err}
			}
			if rated == nil {
				continue
			}
			output.Debug("retrieved", "source", src.Name(), "key", key, "value", rated.Value, "confidence", rated.Confidence)
			store.Add(key, idx, *rated)
		}
	}

	result := &Result{Storage: store, Sources: usable}
	for _, key := range keys {
		var value string
		if rated, ok := store.Get(key); ok {
			value = rated.Value
		}
		w, err := validator.Validate(env, key, value)
		result.Outcomes = append(result.Outcomes, Outcome{Key: key, Value: value, Warning: w, Err: err})
	}
	return result, nil
}
