// Package cmd provides the projvar command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/cmdutil"
	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE and
// passed into every sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded config file; empty when there is none.
	Config *config.Config

	// ConfigPath is the raw --config flag value.
	ConfigPath string

	// ConfigErr is set when the config file could not be loaded.
	ConfigErr error

	Verbose bool

	closeLog func() error
}

// Close closes the log file, if one was opened.
func (g *GlobalConfig) Close() error {
	if g.closeLog == nil {
		return nil
	}
	err := g.closeLog()
	g.closeLog = nil
	return err
}

type globalFlags struct {
	config     string
	verbose    bool
	quiet      bool
	logLevel   string
	logFile    string
	timestamps bool
}

// NewRootCmd creates the root command. Running it resolves, validates and
// writes the project properties.
func NewRootCmd(cfg *GlobalConfig) *cobra.Command {
	var flags globalFlags
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "projvar",
		Short: "Resolve and validate project metadata",
		Long: `projvar collects metadata about a software project (name, version,
license, repository URLs, build info) from the file system, the git work
tree, input variables and CI environments, validates it, and writes it to
env, JSON, YAML or TOML files or to the environment of later CI steps.

Values from CI environments override input variables, which override
values found in the git repository and on the file system.

Examples:
  # Show what would be found, without writing anything
  projvar --dry --show-primary-retrieved

  # Write .projvars.env.txt and fail if a required property is missing
  projvar --file-out --fail

  # Export to later GitHub Actions steps, requiring the build date too
  projvar --env-out --require BuildDate`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &flags, cfg)
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return runProjvar(c, cfg, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Path to config file (env: "+config.EnvConfig+")")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug output, with timestamps and callers")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Only log errors")
	pf.StringVarP(&flags.logLevel, "log-level", "F", "", "Log level: debug, info, warn, error (default: from config, info)")
	pf.StringVar(&flags.logFile, "log-file", "", "Also write the log to this file")
	pf.BoolVar(&flags.timestamps, "timestamps", false, "Show timestamps in log output (env: "+config.EnvVar("log.timestamps")+")")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	opts.input.AddTo(rootCmd)
	opts.output.AddTo(rootCmd)
	opts.require.AddTo(rootCmd)
	rootCmd.Flags().StringVarP(&opts.keyPrefix, "key-prefix", "p", "",
		"Prefix of the variable keys (env: "+config.EnvVar("keyPrefix")+", default: PROJECT_)")
	rootCmd.Flags().StringVarP(&opts.dateFormat, "date-format", "T", "",
		"Go time layout of generated dates (env: "+config.EnvVar("dateFormat")+", default: \""+config.DefaultDateFormat+"\")")
	rootCmd.Flags().StringVarP(&opts.hostingType, "hosting-type", "t", "",
		"Treat repository URLs as hosted on: github, gitlab, bitbucket (env: "+config.EnvVar("hostingType")+")")

	rootCmd.AddCommand(NewListCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the config file and sets up logging.
func initializeGlobals(c *cobra.Command, flags *globalFlags, cfg *GlobalConfig) error {
	cfg.ConfigPath = flags.config
	cfg.Verbose = flags.verbose

	loaded, loadErr := config.NewLoader().Load(flags.config)
	if loaded == nil {
		loaded = &config.Config{}
	}
	cfg.Config = loaded
	cfg.ConfigErr = loadErr

	timestamps, tsValue := config.ResolveTimestamps(
		config.Flag[bool]{Value: flags.timestamps, Changed: c.Flags().Changed("timestamps")},
		loaded,
	)
	logCfg := output.LogConfig{
		Verbose:    flags.verbose,
		Quiet:      flags.quiet,
		Timestamps: output.BoolPtr(timestamps),
		Level:      flags.logLevel,
		File:       flags.logFile,
	}
	if logCfg.Level == "" && !flags.verbose {
		logCfg.Level = loaded.Log.Level
	}

	closer, err := output.SetupLogging(logCfg)
	if err != nil {
		return err
	}
	cfg.closeLog = closer

	info := version.Get()
	output.Debug("projvar started", "version", info.Version, "commit", info.GitCommit)
	config.LogResolvedValues([]config.ResolvedValue{tsValue})
	if loadErr != nil {
		output.Warn("ignoring config file", "err", loadErr)
	}
	return nil
}

// runOptions are the flags of the root command.
type runOptions struct {
	input       cmdutil.InputFlags
	output      cmdutil.OutputFlags
	require     cmdutil.RequireFlags
	keyPrefix   string
	dateFormat  string
	hostingType string
}
