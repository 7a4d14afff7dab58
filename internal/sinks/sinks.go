// Package sinks writes resolved property values to files and to the
// environment of subsequent CI steps.
package sinks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/storage"
)

// DefaultFile is the default target of the env-file sink.
const DefaultFile = ".projvars.env.txt"

// StdoutPath as a target path writes to standard output.
const StdoutPath = "-"

// Value is a resolved value ready to be written.
type Value struct {
	Key   property.Key
	Name  string // variable key, e.g. PROJECT_NAME
	Value string
}

// Sink stores values.
type Sink interface {
	Name() string
	Store(env *environment.Environment, values []Value) error
}

// Values turns the primary values of s into sink values. With overwrite
// mode none, keys already present in the input variables are skipped.
func Values(env *environment.Environment, s *storage.Storage) []Value {
	prefix := env.Settings.KeyPrefix
	var values []Value
	for _, e := range s.Wrapup() {
		name := property.Of(e.Key).ExternalKey(prefix)
		if env.Settings.Overwrite == config.OverwriteNone {
			if _, ok := env.Vars[name]; ok {
				output.Debug("not overwriting existing variable", "key", name)
				continue
			}
		}
		values = append(values, Value{Key: e.Key, Name: name, Value: e.Rated.Value})
	}
	return values
}

// Write stores values in every sink. With dry set nothing is written.
func Write(env *environment.Environment, sinks []Sink, values []Value, dry bool) error {
	for _, s := range sinks {
		if dry {
			output.Info("dry run, skipping output", "sink", s.Name(), "values", len(values))
			continue
		}
		output.Debug("writing output", "sink", s.Name(), "values", len(values))
		if err := s.Store(env, values); err != nil {
			return fmt.Errorf("writing %s: %w", s.Name(), err)
		}
	}
	return nil
}

func toMap(values []Value) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[v.Name] = v.Value
	}
	return m
}

// writeTarget writes data to path, or to stdout when path is StdoutPath.
func writeTarget(stdout io.Writer, path string, data []byte) error {
	if path == StdoutPath {
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
