// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/property"
)

// DefaultDateFormat is the Go time layout used for generated dates.
const DefaultDateFormat = "2006-01-02 15:04:05"

// Overwrite controls whether values already present in the input variables
// are written to the outputs again.
type Overwrite string

const (
	// OverwriteAll writes every resolved value.
	OverwriteAll Overwrite = "all"
	// OverwriteNone skips keys already set in the input variables.
	OverwriteNone Overwrite = "none"
)

// ParseOverwrite parses an overwrite mode; "" means OverwriteAll.
func ParseOverwrite(s string) (Overwrite, error) {
	switch Overwrite(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverwriteAll:
		return OverwriteAll, nil
	case OverwriteNone:
		return OverwriteNone, nil
	default:
		return "", fmt.Errorf("invalid overwrite mode %q (valid: all, none)", s)
	}
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`

	// Level is the default log level (debug, info, warn, error).
	Level string `mapstructure:"level" yaml:"level,omitempty"`
}

// Config represents the projvar configuration file.
// Loaded from ~/.projvar/config.yaml, validated against embedded CUE schema.
type Config struct {
	// KeyPrefix is prepended to all variable keys.
	// Env: PROJVAR_KEY_PREFIX, Default: "PROJECT_"
	KeyPrefix *string `mapstructure:"keyPrefix" yaml:"keyPrefix,omitempty"`

	// DateFormat is the Go time layout for generated dates.
	// Env: PROJVAR_DATE_FORMAT, Default: "2006-01-02 15:04:05"
	DateFormat string `mapstructure:"dateFormat" yaml:"dateFormat,omitempty"`

	// HostingType skips host detection for repository URLs.
	// Env: PROJVAR_HOSTING_TYPE
	HostingType string `mapstructure:"hostingType" yaml:"hostingType,omitempty"`

	// Require and RequireNot adjust the required keys.
	Require    []string `mapstructure:"require" yaml:"require,omitempty"`
	RequireNot []string `mapstructure:"requireNot" yaml:"requireNot,omitempty"`

	RequireAll   *bool `mapstructure:"requireAll" yaml:"requireAll,omitempty"`
	RequireNone  *bool `mapstructure:"requireNone" yaml:"requireNone,omitempty"`
	Fail         *bool `mapstructure:"fail" yaml:"fail,omitempty"`
	OnlyRequired *bool `mapstructure:"onlyRequired" yaml:"onlyRequired,omitempty"`

	// Overwrite is "all" or "none".
	// Env: PROJVAR_OVERWRITE, Default: "all"
	Overwrite string `mapstructure:"overwrite" yaml:"overwrite,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `projvar config init` to generate initial config file.
func DefaultConfig() *Config {
	prefix := property.DefaultKeyPrefix
	no := false
	return &Config{
		KeyPrefix:  &prefix,
		DateFormat: DefaultDateFormat,
		Fail:       &no,
		Overwrite:  string(OverwriteAll),
		Log: LogConfig{
			Timestamps: &no,
			Level:      "info",
		},
	}
}

// Settings is the configuration consumed by resolution, validation and the
// output sinks.
type Settings struct {
	// RepoPath is the project root to inspect.
	RepoPath string

	// RequiredKeys are the keys whose absence or invalidity is an error.
	RequiredKeys property.Set

	// KeyPrefix is prepended to variable keys, e.g. "PROJECT_".
	KeyPrefix string

	// DateFormat is a Go time layout.
	DateFormat string

	// HostingType overrides host detection when not hosting.Unknown.
	HostingType hosting.Type

	OnlyRequired bool
	FailOnError  bool
	Overwrite    Overwrite
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		RepoPath:     ".",
		RequiredKeys: property.DefaultRequired(),
		KeyPrefix:    property.DefaultKeyPrefix,
		DateFormat:   DefaultDateFormat,
		Overwrite:    OverwriteAll,
	}
}

// RequiredKeys computes the required key set: all keys, no keys or the
// default set as base, then keys from require are added and keys from
// requireNot removed. Keys may be given by name or variable key.
func RequiredKeys(prefix string, all, none bool, require, requireNot []string) (property.Set, error) {
	if all && none {
		return nil, fmt.Errorf("requiring all and no keys at the same time is contradictory")
	}
	var keys property.Set
	switch {
	case all:
		keys = property.AllKeys()
	case none:
		keys = property.NewSet()
	default:
		keys = property.DefaultRequired()
	}
	for _, s := range require {
		k, err := property.ParseKey(prefix, s)
		if err != nil {
			return nil, fmt.Errorf("require: %w", err)
		}
		keys.Add(k)
	}
	for _, s := range requireNot {
		k, err := property.ParseKey(prefix, s)
		if err != nil {
			return nil, fmt.Errorf("require-not: %w", err)
		}
		keys.Remove(k)
	}
	return keys, nil
}
