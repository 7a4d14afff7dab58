// Package cmdutil provides the flag groups and reporting helpers shared by
// the projvar commands.
package cmdutil

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/sinks"
)

// InputFlags holds the flags selecting the project and the input variables.
type InputFlags struct {
	ProjectRoot   string
	Defines       []string
	VariableFiles []string
	NoEnvIn       bool
}

// AddTo registers the input flags on the given cobra command.
func (f *InputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ProjectRoot, "project-root", "C", ".",
		"Root directory of the project to inspect")
	cmd.Flags().StringArrayVarP(&f.Defines, "variable", "D", nil,
		"A KEY=VALUE pair used as input variable; overrides the environment (can be repeated)")
	cmd.Flags().StringArrayVarP(&f.VariableFiles, "variables-file", "I", nil,
		"A file with KEY=VALUE lines used as input variables, - for stdin (can be repeated)")
	cmd.Flags().BoolVarP(&f.NoEnvIn, "no-env-in", "x", false,
		"Do not use the environment variables as input")
}

// Input returns the input description for environment.Collect.
func (f *InputFlags) Input(stdin io.Reader) environment.Input {
	return environment.Input{
		UseOSEnv: !f.NoEnvIn,
		Files:    f.VariableFiles,
		Pairs:    f.Defines,
		Stdin:    stdin,
	}
}

// OutputFlags holds the flags selecting where resolved values go.
type OutputFlags struct {
	EnvOut      bool
	FileOut     string
	JSONOut     string
	YAMLOut     string
	TOMLOut     string
	Dry         bool
	Overwrite   string
	ShowAll     string
	ShowPrimary string
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.EnvOut, "env-out", "e", false,
		"Export values to later CI steps ($GITHUB_ENV), or print KEY=VALUE lines")
	cmd.Flags().StringVarP(&f.FileOut, "file-out", "O", "",
		"Write values to an env file, - for stdout (default file: "+sinks.DefaultFile+")")
	cmd.Flags().Lookup("file-out").NoOptDefVal = sinks.DefaultFile
	cmd.Flags().StringVar(&f.JSONOut, "json-out", "",
		"Write values to a JSON file, - for stdout")
	cmd.Flags().StringVar(&f.YAMLOut, "yaml-out", "",
		"Write values to a YAML file, - for stdout")
	cmd.Flags().StringVar(&f.TOMLOut, "toml-out", "",
		"Write values to a TOML file, - for stdout")
	cmd.Flags().BoolVarP(&f.Dry, "dry", "d", false,
		"Resolve and validate, but write no outputs")
	cmd.Flags().StringVarP(&f.Overwrite, "overwrite", "o", "",
		"Whether to write values already present in the input variables: all, none (env: PROJVAR_OVERWRITE)")
	cmd.Flags().StringVar(&f.ShowAll, "show-all-retrieved", "",
		"Print a table of all values every source retrieved, to stdout or FILE")
	cmd.Flags().Lookup("show-all-retrieved").NoOptDefVal = sinks.StdoutPath
	cmd.Flags().StringVar(&f.ShowPrimary, "show-primary-retrieved", "",
		"Print a list of the chosen values, to stdout or FILE")
	cmd.Flags().Lookup("show-primary-retrieved").NoOptDefVal = sinks.StdoutPath
}

// Sinks returns the sinks the flags ask for. stdout receives outputs
// targeted at "-".
func (f *OutputFlags) Sinks(stdout io.Writer) []sinks.Sink {
	var out []sinks.Sink
	if f.EnvOut {
		out = append(out, &sinks.Env{Stdout: stdout})
	}
	if f.FileOut != "" {
		out = append(out, &sinks.EnvFile{Path: f.FileOut, Stdout: stdout})
	}
	if f.JSONOut != "" {
		out = append(out, &sinks.JSONFile{Path: f.JSONOut, Stdout: stdout})
	}
	if f.YAMLOut != "" {
		out = append(out, &sinks.YAMLFile{Path: f.YAMLOut, Stdout: stdout})
	}
	if f.TOMLOut != "" {
		out = append(out, &sinks.TOMLFile{Path: f.TOMLOut, Stdout: stdout})
	}
	return out
}

// RequireFlags holds the flags selecting the required properties.
type RequireFlags struct {
	All          bool
	None         bool
	Require      []string
	RequireNot   []string
	OnlyRequired bool
	Fail         bool
}

// AddTo registers the required-key flags on the given cobra command.
func (f *RequireFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.All, "all", "a", false,
		"Mark all properties as required")
	cmd.Flags().BoolVarP(&f.None, "none", "n", false,
		"Mark no property as required")
	cmd.Flags().StringArrayVarP(&f.Require, "require", "R", nil,
		"Mark a property as required, by name (Name) or variable key (PROJECT_NAME) (can be repeated)")
	cmd.Flags().StringArrayVarP(&f.RequireNot, "require-not", "N", nil,
		"Mark a property as not required (can be repeated)")
	cmd.Flags().BoolVar(&f.OnlyRequired, "only-required", false,
		"Only resolve and output the required properties")
	cmd.Flags().BoolVarP(&f.Fail, "fail", "f", false,
		"Exit with an error if a required property is missing or invalid")
	cmd.MarkFlagsMutuallyExclusive("all", "none")
}
