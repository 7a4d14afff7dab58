package sinks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/projvar/cli/internal/environment"
)

// EnvFile writes KEY="value" lines, one per variable, sorted by key.
type EnvFile struct {
	Path   string
	Stdout io.Writer
}

func (s *EnvFile) Name() string { return "env-file:" + s.Path }

func (s *EnvFile) Store(_ *environment.Environment, values []Value) error {
	content, err := godotenv.Marshal(toMap(values))
	if err != nil {
		return err
	}
	if content != "" {
		content += "\n"
	}
	return writeTarget(s.Stdout, s.Path, []byte(content))
}

// JSONFile writes a single JSON object.
type JSONFile struct {
	Path   string
	Stdout io.Writer
}

func (s *JSONFile) Name() string { return "json:" + s.Path }

func (s *JSONFile) Store(_ *environment.Environment, values []Value) error {
	data, err := json.MarshalIndent(toMap(values), "", "  ")
	if err != nil {
		return err
	}
	return writeTarget(s.Stdout, s.Path, append(data, '\n'))
}

// YAMLFile writes a YAML mapping.
type YAMLFile struct {
	Path   string
	Stdout io.Writer
}

func (s *YAMLFile) Name() string { return "yaml:" + s.Path }

func (s *YAMLFile) Store(_ *environment.Environment, values []Value) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toMap(values)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeTarget(s.Stdout, s.Path, buf.Bytes())
}

// TOMLFile writes a flat TOML document.
type TOMLFile struct {
	Path   string
	Stdout io.Writer
}

func (s *TOMLFile) Name() string { return "toml:" + s.Path }

func (s *TOMLFile) Store(_ *environment.Environment, values []Value) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toMap(values)); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return writeTarget(s.Stdout, s.Path, buf.Bytes())
}
