package sinks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/projvar/cli/internal/environment"
)

// GitHubEnvVar names the file GitHub Actions reads variables for later
// steps from.
const GitHubEnvVar = "GITHUB_ENV"

const heredocPrefix = "PROJVAR_EOF_"

// heredocDelimiter returns a fresh delimiter that does not occur in value.
func heredocDelimiter(value string) string {
	for {
		d := heredocPrefix + uuid.NewString()
		if !strings.Contains(value, d) {
			return d
		}
	}
}

// Env exports values to the environment of later build steps. On GitHub
// Actions they are appended to the $GITHUB_ENV file, elsewhere they are
// printed as KEY=VALUE lines.
type Env struct {
	Stdout io.Writer
}

func (s *Env) Name() string { return "env" }

func (s *Env) Store(env *environment.Environment, values []Value) error {
	var b strings.Builder
	for _, v := range values {
		if strings.Contains(v.Value, "\n") {
			d := heredocDelimiter(v.Value)
			fmt.Fprintf(&b, "%s<<%s\n%s\n%s\n", v.Name, d, v.Value, d)
		} else {
			fmt.Fprintf(&b, "%s=%s\n", v.Name, v.Value)
		}
	}

	path, ok := env.Var(GitHubEnvVar)
	if !ok {
		stdout := s.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := io.WriteString(stdout, b.String())
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}
