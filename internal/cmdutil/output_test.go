package cmdutil

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/pipeline"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/testutil"
	"github.com/projvar/cli/internal/validator"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{Outcomes: []pipeline.Outcome{
		{Key: property.Name, Value: "projvar"},
		{Key: property.Version, Err: &validator.Error{Kind: validator.Missing}},
		{Key: property.BuildBranch, Warning: &validator.Warning{Kind: validator.Missing}},
		{Key: property.Ci, Value: "1", Warning: &validator.Warning{Kind: validator.Suboptimal, Value: "1", Msg: "not true"}},
	}}
}

func TestLogOutcomes(t *testing.T) {
	closer, err := output.SetupLogging(output.LogConfig{})
	require.NoError(t, err)
	defer closer()
	var buf bytes.Buffer
	output.SetLogWriter(&buf)

	LogOutcomes(sampleResult(), "PROJECT_")

	out := buf.String()
	assert.Contains(t, out, "No value found for a required property")
	assert.Contains(t, out, "PROJECT_VERSION")
	assert.Contains(t, out, "The value '1' is usable, but not optimal - not true")
	assert.NotContains(t, out, "PROJECT_BUILD_BRANCH", "optional missing values are debug only")
	assert.NotContains(t, out, "PROJECT_NAME")
}

func TestOutcomeTable(t *testing.T) {
	out := OutcomeTable(sampleResult(), "PROJECT_")
	assert.Contains(t, out, "PROJECT_VERSION")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "suboptimal")
	assert.NotContains(t, out, "PROJECT_NAME")

	clean := &pipeline.Result{Outcomes: []pipeline.Outcome{{Key: property.Name, Value: "x"}}}
	assert.Empty(t, OutcomeTable(clean, "PROJECT_"))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "-", "hello\n"))
	assert.Equal(t, "hello\n", buf.String())

	path := filepath.Join(t.TempDir(), "reports", "all.md")
	require.NoError(t, WriteReport(&buf, path, "table\n"))
	assert.Equal(t, "table\n", testutil.ReadFile(t, path))
}
