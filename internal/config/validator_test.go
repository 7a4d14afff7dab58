package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.True(t, v.schema.Exists())
}

func TestValidator_ValidateBytes(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "empty file", content: ""},
		{name: "valid", content: "keyPrefix: MY_\nhostingType: github\nrequire: [Version]\nlog:\n  timestamps: true\n"},
		{name: "unknown field", content: "registry: foo\n", wantField: "registry"},
		{name: "bad hosting type", content: "hostingType: svn\n", wantField: "hostingType"},
		{name: "bad prefix", content: "keyPrefix: \"1-X\"\n", wantField: "keyPrefix"},
		{name: "wrong type", content: "fail: yes please\n", wantField: "fail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.content))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	yes := true
	err = v.Validate(&Config{
		Require:     []string{"Nope"},
		RequireAll:  &yes,
		RequireNone: &yes,
		DateFormat:  "no directives",
		Overwrite:   "sometimes",
	})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4)
	assert.Contains(t, err.Error(), "config validation failed")

	assert.NoError(t, v.Validate(DefaultConfig()))
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("require: [PROJECT_NOPE]\n"), 0o644))
	err = v.ValidateFile(path)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "require", verrs[0].Field)

	_, err = os.Stat(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Error(t, v.ValidateFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
