package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Create and validate the projvar configuration file.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// configPath returns the config file to operate on: --config, then
// PROJVAR_CONFIG, then ~/.projvar/config.yaml.
func configPath(cfg *GlobalConfig) (string, error) {
	path := cfg.ConfigPath
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return "", err
		}
	}
	return config.ExpandPath(path)
}
