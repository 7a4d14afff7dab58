package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/testutil"
)

// execute runs the root command with an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PROJVAR_CONFIG", "")

	cfg := &GlobalConfig{}
	t.Cleanup(func() { _ = cfg.Close() })

	root := NewRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// project creates a project directory with a VERSION file.
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "VERSION", "1.2.3\n")
	return dir
}

var projectVars = []string{
	"-D", "PROJECT_LICENSE=MIT",
	"-D", "PROJECT_REPO_WEB_URL=https://github.com/hoijui/projvar",
	"-D", "PROJECT_REPO_CLONE_URL=https://github.com/hoijui/projvar.git",
}

func TestRoot_WritesJSON(t *testing.T) {
	dir := project(t)
	out := filepath.Join(dir, "out", "vars.json")

	args := append([]string{"-C", dir, "-x", "--fail", "--json-out", out}, projectVars...)
	_, err := execute(t, args...)
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, out)), &values))
	assert.Equal(t, "1.2.3", values["PROJECT_VERSION"])
	assert.Equal(t, "MIT", values["PROJECT_LICENSE"])
	assert.Equal(t, filepath.Base(dir), values["PROJECT_NAME"])
	assert.NotEmpty(t, values["PROJECT_BUILD_DATE"])
}

func TestRoot_KeyPrefixAndShowPrimary(t *testing.T) {
	dir := project(t)
	args := []string{"-C", dir, "-x", "--dry", "--only-required", "-R", "Version", "--none", "-p", "MY_", "--show-primary-retrieved"}
	stdout, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "* Version - MY_VERSION - 1.2.3\n", stdout)
}

func TestRoot_ShowAllRetrievedToFile(t *testing.T) {
	dir := project(t)
	report := filepath.Join(dir, "all.md")
	args := append([]string{"-C", dir, "-x", "--dry", "--show-all-retrieved=" + report}, projectVars...)
	_, err := execute(t, args...)
	require.NoError(t, err)

	content := testutil.ReadFile(t, report)
	assert.Contains(t, content, "| Property")
	assert.Contains(t, content, "PROJECT_VERSION")
	assert.Contains(t, content, "1.2.3")
}

func TestRoot_FailOnMissingRequired(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "-C", dir, "-x", "--fail", "--dry")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestRoot_MissingRequiredWithoutFail(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "vars.env")
	_, err := execute(t, "-C", dir, "-x", "--file-out="+out)
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, out), "PROJECT_NAME=")
}

func TestRoot_EnvOutToStdout(t *testing.T) {
	dir := project(t)
	stdout, err := execute(t, "-C", dir, "-x", "--only-required", "--none", "-R", "PROJECT_VERSION", "--env-out")
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_VERSION=1.2.3\n", stdout)
}

func TestRoot_OverwriteNone(t *testing.T) {
	dir := project(t)
	stdout, err := execute(t, "-C", dir, "-x", "--only-required", "--none", "-R", "Version", "-R", "Name",
		"-D", "PROJECT_NAME=given", "--overwrite", "none", "--env-out")
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_VERSION=1.2.3\n", stdout)
}

func TestRoot_InvalidSettings(t *testing.T) {
	_, err := execute(t, "-C", t.TempDir(), "-x", "--hosting-type", "sourceforge")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "-x", "--require", "NoSuchProperty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchProperty")
}

func TestRoot_MissingVariablesFile(t *testing.T) {
	_, err := execute(t, "-C", t.TempDir(), "-x", "-I", filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestRoot_VariablesFileFromStdin(t *testing.T) {
	dir := project(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROJVAR_CONFIG", "")

	cfg := &GlobalConfig{}
	defer cfg.Close()
	root := NewRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("// generated\nPROJECT_BUILD_NUMBER=77\n"))
	root.SetArgs([]string{"-C", dir, "-x", "-I", "-", "--only-required", "--none", "-R", "BuildNumber", "--env-out"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "PROJECT_BUILD_NUMBER=77\n", out.String())
}

func TestList(t *testing.T) {
	stdout, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, property.Count()+2)
	assert.Regexp(t, `^\| Property +\| Env-Key +\| Required +\| Description +\|$`, lines[0])
	assert.Contains(t, stdout, "PROJECT_REPO_WEB_URL")

	stdout, err = execute(t, "list", "-p", "X_")
	require.NoError(t, err)
	assert.Contains(t, stdout, "X_NAME")
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "projvar version")
	assert.Contains(t, stdout, "CUE SDK")
}
