package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/pipeline"
	"github.com/projvar/cli/internal/sinks"
	"github.com/projvar/cli/internal/sources"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *GlobalConfig) *cobra.Command {
	opts := &runOptions{}
	var exitCode bool
	c := &cobra.Command{
		Use:   "diff FILE",
		Short: "Compare a previous YAML output with the current values",
		Long: `Resolve the project properties and compare them with a YAML file
written earlier with --yaml-out.

Examples:
  projvar --yaml-out .projvars.yaml
  # ... later
  projvar diff .projvars.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, cfg, opts, args[0], exitCode)
		},
	}
	opts.input.AddTo(c)
	c.Flags().StringVarP(&opts.keyPrefix, "key-prefix", "p", "", "Prefix of the variable keys")
	c.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with code 1 when there are differences")
	return c
}

func runDiff(c *cobra.Command, cfg *GlobalConfig, opts *runOptions, path string, exitCode bool) error {
	previous, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return oerrors.NewNotFoundError("previous output not found", path, "Write one with --yaml-out first.")
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	settings, err := resolveSettings(c, cfg, opts)
	if err != nil {
		return err
	}
	env, err := buildEnvironment(c, settings, opts)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(env, sources.DefaultList())
	if err != nil {
		return err
	}

	var current bytes.Buffer
	sink := &sinks.YAMLFile{Path: sinks.StdoutPath, Stdout: &current}
	if err := sink.Store(env, sinks.Values(env, result.Storage)); err != nil {
		return err
	}

	report, err := output.DiffYAML(path, previous, "current", current.Bytes(), output.StdoutIsTerminal())
	if err != nil {
		return err
	}
	if report == "" {
		output.Info("no differences", "file", path)
		return nil
	}
	fmt.Fprintln(c.OutOrStdout(), report)
	if exitCode {
		return &oerrors.ExitError{Err: fmt.Errorf("%s differs from the current values", path), Code: oerrors.ExitGeneralError, Printed: true}
	}
	return nil
}
