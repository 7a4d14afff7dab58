package environment

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/projvar/cli/internal/output"
)

// StdinPath is the variables file name that reads from stdin.
const StdinPath = "-"

// Input describes where input variables come from. Later sources override
// earlier ones: OS environment, then the files in order, then the pairs.
type Input struct {
	// UseOSEnv includes the variables of the process environment.
	UseOSEnv bool

	// Files are variables files in dotenv syntax ("-" is stdin).
	Files []string

	// Pairs are "KEY=VALUE" strings from the command line.
	Pairs []string

	// Stdin is read for "-"; defaults to os.Stdin.
	Stdin io.Reader
}

// Collect merges all input variables.
func Collect(in Input) (map[string]string, error) {
	vars := make(map[string]string)

	if in.UseOSEnv {
		for _, kv := range os.Environ() {
			k, v, ok := strings.Cut(kv, "=")
			if ok && k != "" {
				vars[k] = v
			}
		}
	}

	stdinUsed := false
	for _, path := range in.Files {
		var fileVars map[string]string
		var err error
		if path == StdinPath {
			if stdinUsed {
				return nil, fmt.Errorf("stdin can only be used once as variables file")
			}
			stdinUsed = true
			r := in.Stdin
			if r == nil {
				r = os.Stdin
			}
			fileVars, err = ParseVarsFile(r)
		} else {
			fileVars, err = readVarsFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading variables file %s: %w", path, err)
		}
		output.Debug("read variables file", "path", path, "count", len(fileVars))
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	for _, pair := range in.Pairs {
		k, v, err := ParsePair(pair)
		if err != nil {
			return nil, err
		}
		vars[k] = v
	}

	return vars, nil
}

func readVarsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseVarsFile(f)
}

// ParseVarsFile parses dotenv syntax. Lines starting with "#" or "//" are
// comments.
func ParseVarsFile(r io.Reader) (map[string]string, error) {
	var filtered bytes.Buffer
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return godotenv.Parse(&filtered)
}

// ParsePair splits "KEY=VALUE". The value may be empty and may contain "=".
func ParsePair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid variable %q: expected KEY=VALUE", s)
	}
	return k, v, nil
}
