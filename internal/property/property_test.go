package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversEveryKey(t *testing.T) {
	seenSuffixes := make(map[string]Key)
	for _, k := range Keys() {
		v := Of(k)
		require.NotNil(t, v)
		assert.NotEmpty(t, k.String(), "key %d has no name", int(k))
		assert.NotEmpty(t, v.KeySuffix, "key %s has no variable key", k)
		assert.NotEmpty(t, v.Description, "key %s has no description", k)

		if other, dup := seenSuffixes[v.KeySuffix]; dup {
			t.Errorf("keys %s and %s share the variable key %q", other, k, v.KeySuffix)
		}
		seenSuffixes[v.KeySuffix] = k
	}
	assert.Len(t, Keys(), Count())
}

func TestKeyString_Invalid(t *testing.T) {
	assert.Equal(t, "Key(99)", Key(99).String())
	assert.False(t, Key(-1).Valid())
}

func TestExternalKey(t *testing.T) {
	assert.Equal(t, "PROJECT_VERSION", Of(Version).ExternalKey(DefaultKeyPrefix))
	assert.Equal(t, "REPO_WEB_URL", Of(RepoWebURL).ExternalKey(""))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		input  string
		want   Key
	}{
		{"property name", DefaultKeyPrefix, "Version", Version},
		{"property name lower-case", DefaultKeyPrefix, "repoweburl", RepoWebURL},
		{"full variable key", DefaultKeyPrefix, "PROJECT_BUILD_DATE", BuildDate},
		{"variable suffix", DefaultKeyPrefix, "LICENSES", Licenses},
		{"custom prefix", "X_", "X_NAME", Name},
		{"no prefix", "", "REPO_CLONE_URL_SSH", RepoCloneURLSSH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.prefix, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKey_Unknown(t *testing.T) {
	_, err := ParseKey(DefaultKeyPrefix, "PROJECT_NOPE")
	assert.Error(t, err)

	_, err = ParseKey(DefaultKeyPrefix, "  ")
	assert.Error(t, err)
}

func TestDefaultRequired(t *testing.T) {
	req := DefaultRequired()
	assert.True(t, req.Contains(Name))
	assert.True(t, req.Contains(Version))
	assert.True(t, req.Contains(License))
	assert.False(t, req.Contains(Licenses))
	assert.False(t, req.Contains(Ci))

	// Each call returns an independent set.
	req.Remove(Version)
	assert.True(t, DefaultRequired().Contains(Version))
}

func TestSet(t *testing.T) {
	s := NewSet(RepoWebURL, Name)
	s.Add(Version)
	assert.Equal(t, []Key{Name, Version, RepoWebURL}, s.Sorted())

	c := s.Clone()
	c.Remove(Name)
	assert.True(t, s.Contains(Name))
	assert.False(t, c.Contains(Name))

	assert.Len(t, AllKeys(), Count())
}

func TestConfidenceOrdering(t *testing.T) {
	assert.Less(t, int(Low), int(Middle))
	assert.Less(t, int(Middle), int(High))
	assert.Equal(t, "high", High.String())
	r := NewRated(Low, "x")
	assert.Equal(t, Rated{Confidence: Low, Value: "x"}, *r)
}
