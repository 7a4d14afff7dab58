package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/pipeline"
	"github.com/projvar/cli/internal/property"
	"github.com/projvar/cli/internal/sinks"
	"github.com/projvar/cli/internal/validator"
)

// LogOutcomes logs every validation finding: warnings at WARN, errors at
// ERROR. Missing values of optional keys are only logged at DEBUG.
func LogOutcomes(result *pipeline.Result, prefix string) {
	for _, o := range result.Outcomes {
		key := property.Of(o.Key).ExternalKey(prefix)
		switch {
		case o.Err != nil:
			output.Error(o.Err.Error(), "key", key)
		case o.Warning == nil:
			continue
		case o.Warning.Kind == validator.Missing:
			output.Debug(o.Warning.Error(), "key", key)
		default:
			output.Warn(o.Warning.Error(), "key", key)
		}
	}
}

// OutcomeTable renders the validation findings as a table, one row per key
// with a finding.
func OutcomeTable(result *pipeline.Result, prefix string) string {
	tbl := output.NewTable("KEY", "LEVEL", "KIND", "VALUE")
	rows := 0
	for _, o := range result.Outcomes {
		key := property.Of(o.Key).ExternalKey(prefix)
		var verr *validator.Error
		switch {
		case errors.As(o.Err, &verr):
			tbl.Row(output.FormatNoun(key), output.StyleError.Render("error"), verr.Kind.String(), o.Value)
		case o.Err != nil:
			tbl.Row(output.FormatNoun(key), output.StyleError.Render("error"), "", o.Value)
		case o.Warning != nil:
			tbl.Row(output.FormatNoun(key), output.StyleWarning.Render("warning"), o.Warning.Kind.String(), o.Value)
		default:
			continue
		}
		rows++
	}
	if rows == 0 {
		return ""
	}
	return tbl.String()
}

// WriteReport writes content to path, or to stdout when path is "-".
func WriteReport(stdout io.Writer, path, content string) error {
	if path == sinks.StdoutPath {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
