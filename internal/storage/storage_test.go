package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projvar/cli/internal/property"
)

func TestAdd_LastWins(t *testing.T) {
	s := New()
	_, ok := s.Get(property.Name)
	assert.False(t, ok)

	s.Add(property.Name, 0, property.Rated{Confidence: property.High, Value: "from-fs"})
	s.Add(property.Name, 3, property.Rated{Confidence: property.Low, Value: "from-ci"})

	got, ok := s.Get(property.Name)
	require.True(t, ok)
	assert.Equal(t, "from-ci", got.Value)
	assert.Equal(t, property.Low, got.Confidence)

	all, ok := s.GetAll(property.Name)
	require.True(t, ok)
	assert.Len(t, all, 2)
	assert.Equal(t, "from-fs", all[0].Value)
	assert.Equal(t, 1, s.Len())
}

func TestWrapup_Sorted(t *testing.T) {
	s := New()
	s.Add(property.RepoWebURL, 0, property.Rated{Value: "https://github.com/a/b"})
	s.Add(property.Name, 0, property.Rated{Value: "b"})
	s.Add(property.Version, 1, property.Rated{Value: "1.0.0"})

	entries := s.Wrapup()
	require.Len(t, entries, 3)
	assert.Equal(t, property.Name, entries[0].Key)
	assert.Equal(t, property.Version, entries[1].Key)
	assert.Equal(t, property.RepoWebURL, entries[2].Key)
}

func TestToList(t *testing.T) {
	s := New()
	s.Add(property.Version, 0, property.Rated{Value: "1.0.0"})
	s.Add(property.Name, 0, property.Rated{Value: "projvar"})

	assert.Equal(t,
		"* Name - PROJECT_NAME - projvar\n* Version - PROJECT_VERSION - 1.0.0\n",
		s.ToList("PROJECT_"))
}

func TestToTable(t *testing.T) {
	s := New()
	s.Add(property.Name, 0, property.Rated{Value: "dir-name"})
	s.Add(property.Name, 1, property.Rated{Value: "a|b"})

	out := s.ToTable("PROJECT_", []string{"fs", "git"})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, property.Count()+2)
	assert.Regexp(t, `^\| Property +\| Env-Key +\| fs +\| git +\|$`, lines[0])

	var nameRow string
	for _, l := range lines {
		if strings.Contains(l, "PROJECT_NAME ") {
			nameRow = l
		}
	}
	assert.Contains(t, nameRow, "dir-name")
	assert.Contains(t, nameRow, `a\|b`)
}
