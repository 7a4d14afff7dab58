package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/config"
	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the projvar configuration file.

Checks performed:
  1. The config file exists at the resolved path
  2. It is valid YAML matching the configuration schema
  3. Property keys, hosting type, overwrite mode and date format are valid

The config path is resolved using precedence:
  --config flag > PROJVAR_CONFIG env > ~/.projvar/config.yaml

Examples:
  # Validate default configuration
  projvar config vet

  # Validate custom config path
  projvar config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	output.Debug("validating config", "path", path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'projvar config init' to create a default configuration.",
			Cause:    oerrors.ErrNotFound,
		}
	}

	v, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := v.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			return &oerrors.DetailError{
				Type:     "validation failed",
				Message:  verrs.Error(),
				Location: path,
				Hint:     "See 'projvar config init' for a valid example.",
				Cause:    oerrors.ErrValidation,
			}
		}
		return fmt.Errorf("validating %s: %w", path, err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
