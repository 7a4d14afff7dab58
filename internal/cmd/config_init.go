package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/projvar/cli/internal/config"
	oerrors "github.com/projvar/cli/internal/errors"
	"github.com/projvar/cli/internal/output"
)

const configHeader = "# projvar configuration\n# Flags and PROJVAR_* environment variables override these values.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *GlobalConfig) *cobra.Command {
	var force bool
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a projvar configuration file with default values.

The file is created at ~/.projvar/config.yaml, or at the path given with
--config or PROJVAR_CONFIG.

Examples:
  # Initialize configuration
  projvar config init

  # Overwrite existing configuration
  projvar config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *GlobalConfig, force bool) error {
	path, err := configPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path))
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration written to "+path))
	fmt.Fprintln(c.OutOrStdout(), "Validate with: projvar config vet")
	return nil
}
