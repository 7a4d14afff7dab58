package sinks

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/storage"
	"github.com/projvar/cli/internal/testutil"
)

func newEnv(vars map[string]string) *environment.Environment {
	return environment.New(config.DefaultSettings(), vars)
}

func sampleValues() []Value {
	return []Value{
		{Key: property.Name, Name: "PROJECT_NAME", Value: "projvar"},
		{Key: property.Version, Name: "PROJECT_VERSION", Value: "1.2.3"},
		{Key: property.BuildNumber, Name: "PROJECT_BUILD_NUMBER", Value: "42"},
	}
}

func TestValues_Overwrite(t *testing.T) {
	s := storage.New()
	s.Add(property.Name, 0, property.Rated{Value: "projvar"})
	s.Add(property.Version, 0, property.Rated{Value: "1.2.3"})
	vars := map[string]string{"PROJECT_NAME": "given"}

	env := newEnv(vars)
	all := Values(env, s)
	require.Len(t, all, 2)
	assert.Equal(t, Value{Key: property.Name, Name: "PROJECT_NAME", Value: "projvar"}, all[0])
	assert.Equal(t, Value{Key: property.Version, Name: "PROJECT_VERSION", Value: "1.2.3"}, all[1])

	env.Settings.Overwrite = config.OverwriteNone
	kept := Values(env, s)
	require.Len(t, kept, 1)
	assert.Equal(t, "1.2.3", kept[0].Value)
}

func TestValues_Prefix(t *testing.T) {
	s := storage.New()
	s.Add(property.RepoWebURL, 0, property.Rated{Value: "https://github.com/a/b"})
	env := newEnv(nil)
	env.Settings.KeyPrefix = "MY_"

	got := Values(env, s)
	require.Len(t, got, 1)
	assert.Equal(t, "MY_REPO_WEB_URL", got[0].Name)
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", DefaultFile)

	require.NoError(t, (&EnvFile{Path: path}).Store(newEnv(nil), sampleValues()))

	content := testutil.ReadFile(t, path)
	assert.Equal(t, "PROJECT_BUILD_NUMBER=42\nPROJECT_NAME=\"projvar\"\nPROJECT_VERSION=\"1.2.3\"\n", content)

	parsed, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "projvar", parsed["PROJECT_NAME"])
}

func TestJSONFile_Stdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&JSONFile{Path: StdoutPath, Stdout: &out}).Store(newEnv(nil), sampleValues()))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "1.2.3", got["PROJECT_VERSION"])
	assert.Len(t, got, 3)
}

func TestYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, (&YAMLFile{Path: path}).Store(newEnv(nil), sampleValues()))

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "PROJECT_NAME: projvar\n")
	assert.Contains(t, content, `PROJECT_BUILD_NUMBER: "42"`)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(content), &got))
	assert.Equal(t, "42", got["PROJECT_BUILD_NUMBER"])
}

func TestTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.toml")
	require.NoError(t, (&TOMLFile{Path: path}).Store(newEnv(nil), sampleValues()))

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, `PROJECT_NAME = "projvar"`)

	var got map[string]string
	_, err := toml.Decode(content, &got)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got["PROJECT_VERSION"])
}

func TestEnv_Stdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Env{Stdout: &out}).Store(newEnv(nil), sampleValues()[:2]))
	assert.Equal(t, "PROJECT_NAME=projvar\nPROJECT_VERSION=1.2.3\n", out.String())
}

func TestEnv_GitHubEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "github_env", "EXISTING=1\n")
	env := newEnv(map[string]string{GitHubEnvVar: path})

	values := []Value{
		{Key: property.Name, Name: "PROJECT_NAME", Value: "projvar"},
		{Key: property.Licenses, Name: "PROJECT_LICENSES", Value: "MIT\nCC0-1.0"},
	}
	var out bytes.Buffer
	require.NoError(t, (&Env{Stdout: &out}).Store(env, values))

	assert.Empty(t, out.String())
	content := testutil.ReadFile(t, path)
	d := heredocOf(t, content, "PROJECT_LICENSES")
	assert.Equal(t,
		"EXISTING=1\nPROJECT_NAME=projvar\nPROJECT_LICENSES<<"+d+"\nMIT\nCC0-1.0\n"+d+"\n",
		content)
}

// heredocOf returns the delimiter the multi-line value of name uses.
func heredocOf(t *testing.T, content, name string) string {
	t.Helper()
	for _, line := range strings.Split(content, "\n") {
		if d, ok := strings.CutPrefix(line, name+"<<"); ok {
			require.True(t, strings.HasPrefix(d, heredocPrefix), d)
			return d
		}
	}
	t.Fatalf("no heredoc for %s in %q", name, content)
	return ""
}

func TestEnv_GitHubEnvFile_DelimiterInValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_env")
	env := newEnv(map[string]string{GitHubEnvVar: path})

	value := "line\nPROJVAR_EOF\nINJECTED=1"
	values := []Value{
		{Key: property.Licenses, Name: "PROJECT_LICENSES", Value: value},
		{Key: property.Name, Name: "PROJECT_NAME", Value: "a\nb"},
	}
	require.NoError(t, (&Env{}).Store(env, values))

	content := testutil.ReadFile(t, path)
	d := heredocOf(t, content, "PROJECT_LICENSES")
	assert.NotContains(t, value, d)
	assert.True(t, strings.HasPrefix(content, "PROJECT_LICENSES<<"+d+"\n"+value+"\n"+d+"\n"), content)
	assert.NotEqual(t, d, heredocOf(t, content, "PROJECT_NAME"), "every value gets its own delimiter")
}

type failingSink struct{ stored bool }

func (s *failingSink) Name() string { return "failing" }

func (s *failingSink) Store(_ *environment.Environment, _ []Value) error {
	s.stored = true
	return errors.New("disk full")
}

func TestWrite(t *testing.T) {
	env := newEnv(nil)

	dry := &failingSink{}
	require.NoError(t, Write(env, []Sink{dry}, sampleValues(), true))
	assert.False(t, dry.stored)

	wet := &failingSink{}
	err := Write(env, []Sink{wet}, sampleValues(), false)
	require.Error(t, err)
	assert.True(t, wet.stored)
	assert.Contains(t, err.Error(), "writing failing: disk full")
}
