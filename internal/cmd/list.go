package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *GlobalConfig) *cobra.Command {
	var keyPrefix string
	c := &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		Long: `List all properties projvar knows, with their variable keys, whether
they are required by default and a description.

The table is Markdown, so it can be pasted into documentation.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			prefix := keyPrefix
			if !c.Flags().Changed("key-prefix") && cfg.Config != nil && cfg.Config.KeyPrefix != nil {
				prefix = *cfg.Config.KeyPrefix
			}
			_, err := c.OutOrStdout().Write([]byte(propertyTable(prefix)))
			return err
		},
	}
	c.Flags().StringVarP(&keyPrefix, "key-prefix", "p", property.DefaultKeyPrefix, "Prefix of the variable keys")
	return c
}

func propertyTable(prefix string) string {
	tbl := output.NewMarkdownTable("Property", "Env-Key", "Required", "Description")
	for _, k := range property.Keys() {
		v := property.Of(k)
		required := ""
		if v.DefaultRequired {
			required = "yes"
		}
		tbl.Row(k.String(), v.ExternalKey(prefix), required, v.Description)
	}
	return tbl.String() + "\n"
}
