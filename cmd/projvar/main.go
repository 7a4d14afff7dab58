// Package main is the entry point for projvar.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/projvar/cli/internal/cmd"
	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/output"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &cmd.GlobalConfig{}
	defer cfg.Close()

	err := cmd.NewRootCmd(cfg).Execute()
	if err == nil {
		return oerrors.ExitSuccess
	}

	code := oerrors.ExitCodeFromError(err)
	output.Debug("exiting", "code", code, "reason", oerrors.ExitCodeName(code))

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) && exitErr.Printed {
		return code
	}
	fmt.Fprintln(os.Stderr, err)
	return code
}
