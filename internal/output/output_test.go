package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog sets up logging and redirects the stderr logger into a buffer.
func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	closer, err := SetupLogging(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	return &buf
}

func TestSetupLogging_DefaultLevel(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Debug("hidden")
	Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotRegexp(t, `^\d{2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestSetupLogging_Verbose(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	Debug("verbose-msg")
	assert.Contains(t, buf.String(), "verbose-msg")
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestSetupLogging_Quiet(t *testing.T) {
	buf := captureLog(t, LogConfig{Quiet: true})
	Warn("warned")
	Error("failed")
	assert.NotContains(t, buf.String(), "warned")
	assert.Contains(t, buf.String(), "failed")
}

func TestSetupLogging_ExplicitLevel(t *testing.T) {
	captureLog(t, LogConfig{Level: "warn"})
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())

	_, err := SetupLogging(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestSetupLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projvar.log.txt")
	closer, err := SetupLogging(LogConfig{Quiet: true, File: path})
	require.NoError(t, err)
	Logger.SetOutput(&bytes.Buffer{})

	Info("into the file", "key", "value")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into the file")
	assert.Contains(t, string(data), "key=value")
}

func TestMarkdownTable(t *testing.T) {
	out := NewMarkdownTable("Property", "Env-Key").
		Row("Name", "PROJECT_NAME").
		Row("Version", "PROJECT_VERSION").
		String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^\| Property +\| Env-Key +\|$`, lines[0])
	assert.Regexp(t, `^\|[-|]+\|$`, lines[1])
	assert.Contains(t, lines[3], "PROJECT_VERSION")
}

func TestDiffYAML(t *testing.T) {
	from := []byte("PROJECT_NAME: projvar\nPROJECT_VERSION: 0.1.0\n")
	to := []byte("PROJECT_NAME: projvar\nPROJECT_VERSION: 0.2.0\n")

	diff, err := DiffYAML("old", from, "new", to, false)
	require.NoError(t, err)
	assert.Contains(t, diff, "PROJECT_VERSION")
	assert.Contains(t, diff, "0.2.0")

	diff, err = DiffYAML("old", from, "new", from, false)
	require.NoError(t, err)
	assert.Empty(t, diff)

	_, err = DiffYAML("old", []byte("a: [b"), "new", to, false)
	assert.Error(t, err)
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
}
