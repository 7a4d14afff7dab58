package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/cmdutil"
	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/environment"
	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/pipeline"
	"github.com/projvar/cli/internal/sinks"
	"github.com/projvar/cli/internal/sources"
)

func flagOf[T any](c *cobra.Command, name string, value T) config.Flag[T] {
	return config.Flag[T]{Value: value, Changed: c.Flags().Changed(name)}
}

// resolveSettings builds the settings from flags, environment and config.
func resolveSettings(c *cobra.Command, cfg *GlobalConfig, opts *runOptions) (*config.Settings, error) {
	settings, values, err := config.ResolveAll(config.ResolveOptions{
		Config:       cfg.Config,
		RepoPath:     opts.input.ProjectRoot,
		KeyPrefix:    flagOf(c, "key-prefix", opts.keyPrefix),
		DateFormat:   flagOf(c, "date-format", opts.dateFormat),
		HostingType:  flagOf(c, "hosting-type", opts.hostingType),
		Overwrite:    flagOf(c, "overwrite", opts.output.Overwrite),
		Require:      flagOf(c, "require", opts.require.Require),
		RequireNot:   flagOf(c, "require-not", opts.require.RequireNot),
		RequireAll:   flagOf(c, "all", opts.require.All),
		RequireNone:  flagOf(c, "none", opts.require.None),
		Fail:         flagOf(c, "fail", opts.require.Fail),
		OnlyRequired: flagOf(c, "only-required", opts.require.OnlyRequired),
	})
	config.LogResolvedValues(values)
	if err != nil {
		return nil, &oerrors.ExitError{Err: fmt.Errorf("invalid settings: %w", err), Code: oerrors.ExitGeneralError}
	}
	return settings, nil
}

// buildEnvironment collects the input variables.
func buildEnvironment(c *cobra.Command, settings *config.Settings, opts *runOptions) (*environment.Environment, error) {
	vars, err := environment.Collect(opts.input.Input(c.InOrStdin()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(err.Error(), "", "Check the paths given with --variables-file.")
		}
		return nil, err
	}
	output.Debug("collected input variables", "count", len(vars))
	return environment.New(settings, vars), nil
}

func runProjvar(c *cobra.Command, cfg *GlobalConfig, opts *runOptions) error {
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
		var serr *pipeline.SourceError
		if errors.As(err, &serr) {
			return oerrors.NewSourceError(serr.Source, serr.Key.String(), serr.Err)
		}
		return err
	}
	cmdutil.LogOutcomes(result, settings.KeyPrefix)

	stdout := c.OutOrStdout()
	if path := opts.output.ShowAll; path != "" {
		if err := cmdutil.WriteReport(stdout, path, result.Storage.ToTable(settings.KeyPrefix, result.SourceNames())); err != nil {
			return err
		}
	}
	if path := opts.output.ShowPrimary; path != "" {
		if err := cmdutil.WriteReport(stdout, path, result.Storage.ToList(settings.KeyPrefix)); err != nil {
			return err
		}
	}

	if result.Failed(settings.RequiredKeys) {
		if settings.FailOnError {
			if table := cmdutil.OutcomeTable(result, settings.KeyPrefix); table != "" {
				output.Error("required properties are missing or invalid\n" + table)
			}
			return &oerrors.ExitError{
				Err:     oerrors.Wrap(oerrors.ErrValidation, "required properties are missing or invalid"),
				Code:    oerrors.ExitValidationError,
				Printed: true,
			}
		}
		output.Warn("required properties are missing or invalid; use --fail to make this an error")
	}

	values := sinks.Values(env, result.Storage)
	if err := sinks.Write(env, opts.output.Sinks(stdout), values, opts.output.Dry); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return oerrors.NewPermissionError(err.Error(), nil, "Check the output paths.")
		}
		return err
	}

	output.Info("resolved project properties",
		"properties", result.Storage.Len(),
		"values", len(values),
		"sources", result.SourceNames(),
	)
	return nil
}
