package vcs

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projvar/cli/internal/testutil"
)

func TestOpen_NotRepository(t *testing.T) {
	testutil.RequireGit(t)
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestGit_Untagged(t *testing.T) {
	dir := testutil.GitRepo(t, "git@github.com:hoijui/projvar.git")
	g, err := Open(dir)
	require.NoError(t, err)

	branch, err := g.Branch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	tag, err := g.Tag()
	require.NoError(t, err)
	assert.Empty(t, tag)

	id, err := g.CommitID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{40}$`), id)

	version, err := g.Describe()
	require.NoError(t, err)
	assert.Equal(t, "g"+id[:7], version)

	date, err := g.CommitDate()
	require.NoError(t, err)
	assert.True(t, date.Equal(time.Date(2021, 9, 20, 10, 11, 12, 0, time.UTC)))

	remote, err := g.RemoteURL()
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:hoijui/projvar.git", remote)
}

func TestGit_TaggedAndDirty(t *testing.T) {
	dir := testutil.GitRepo(t, "")
	testutil.Git(t, dir, "tag", "v1.2.3")
	g, err := Open(dir)
	require.NoError(t, err)

	tag, err := g.Tag()
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", tag)

	version, err := g.Describe()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)

	testutil.WriteFile(t, dir, "README.md", "changed\n")
	version, err = g.Describe()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-dirty", version)

	remote, err := g.RemoteURL()
	require.NoError(t, err)
	assert.Empty(t, remote)
}

func TestGit_DetachedHead(t *testing.T) {
	dir := testutil.GitRepo(t, "")
	testutil.Git(t, dir, "checkout", "--quiet", "--detach")
	g, err := Open(dir)
	require.NoError(t, err)

	branch, err := g.Branch()
	require.NoError(t, err)
	assert.Empty(t, branch)
}
