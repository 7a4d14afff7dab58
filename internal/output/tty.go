package output

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// StdoutIsTerminal reports whether stdout is a terminal; styled output is
// only used then.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout)
}
