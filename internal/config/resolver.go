package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the outcome of resolving one setting.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// Flag is a command-line flag value and whether the user set it.
type Flag[T any] struct {
	Value   T
	Changed bool
}

// EnvVar returns the environment variable name of a setting,
// e.g. "PROJVAR_DATE_FORMAT" for "dateFormat" and "PROJVAR_LOG_TIMESTAMPS"
// for "log.timestamps".
func EnvVar(key string) string {
	var sb strings.Builder
	sb.WriteString(envPrefix)
	sb.WriteByte('_')
	for i, r := range key {
		switch {
		case r == '.':
			sb.WriteByte('_')
			continue
		case i > 0 && r >= 'A' && r <= 'Z':
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
	}
	return strings.ToUpper(sb.String())
}

// resolve applies the precedence flag > env > config > default.
// cfg is nil when the config file does not set the value.
func resolve[T any](key string, flag Flag[T], parse func(string) (T, error), cfg *T, def T) (T, ResolvedValue, error) {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}

	type candidate struct {
		source ConfigSource
		value  T
	}
	var candidates []candidate
	if flag.Changed {
		candidates = append(candidates, candidate{SourceFlag, flag.Value})
	}
	if raw, ok := os.LookupEnv(EnvVar(key)); ok {
		v, err := parse(raw)
		if err != nil {
			var zero T
			return zero, rv, fmt.Errorf("environment variable %s: %w", EnvVar(key), err)
		}
		candidates = append(candidates, candidate{SourceEnv, v})
	}
	if cfg != nil {
		candidates = append(candidates, candidate{SourceConfig, *cfg})
	}
	candidates = append(candidates, candidate{SourceDefault, def})

	rv.Value = candidates[0].value
	rv.Source = candidates[0].source
	for _, c := range candidates[1:] {
		if c.source != SourceDefault {
			rv.Shadowed[c.source] = c.value
		}
	}
	return candidates[0].value, rv, nil
}

func parseString(s string) (string, error) { return s, nil }

func parseList(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonEmptyList(l []string) *[]string {
	if len(l) == 0 {
		return nil
	}
	return &l
}

// ResolveOptions carries the command-line values for ResolveAll.
type ResolveOptions struct {
	// Config is the loaded config file; nil means none.
	Config *Config

	RepoPath     string
	KeyPrefix    Flag[string]
	DateFormat   Flag[string]
	HostingType  Flag[string]
	Overwrite    Flag[string]
	Require      Flag[[]string]
	RequireNot   Flag[[]string]
	RequireAll   Flag[bool]
	RequireNone  Flag[bool]
	Fail         Flag[bool]
	OnlyRequired Flag[bool]
}

// ResolveAll builds the Settings from flags, environment, config file and
// defaults, in that order of precedence.
func ResolveAll(opts ResolveOptions) (*Settings, []ResolvedValue, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultSettings()
	var values []ResolvedValue
	var firstErr error
	track := func(rv ResolvedValue, err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values = append(values, rv)
	}

	keyPrefix, rv, err := resolve("keyPrefix", opts.KeyPrefix, parseString, cfg.KeyPrefix, defaults.KeyPrefix)
	track(rv, err)
	dateFormat, rv, err := resolve("dateFormat", opts.DateFormat, parseString, nonEmpty(cfg.DateFormat), defaults.DateFormat)
	track(rv, err)
	hostingName, rv, err := resolve("hostingType", opts.HostingType, parseString, nonEmpty(cfg.HostingType), "")
	track(rv, err)
	overwriteName, rv, err := resolve("overwrite", opts.Overwrite, parseString, nonEmpty(cfg.Overwrite), string(defaults.Overwrite))
	track(rv, err)
	require, rv, err := resolve("require", opts.Require, parseList, nonEmptyList(cfg.Require), []string(nil))
	track(rv, err)
	requireNot, rv, err := resolve("requireNot", opts.RequireNot, parseList, nonEmptyList(cfg.RequireNot), []string(nil))
	track(rv, err)
	requireAll, rv, err := resolve("requireAll", opts.RequireAll, strconv.ParseBool, cfg.RequireAll, false)
	track(rv, err)
	requireNone, rv, err := resolve("requireNone", opts.RequireNone, strconv.ParseBool, cfg.RequireNone, false)
	track(rv, err)
	fail, rv, err := resolve("fail", opts.Fail, strconv.ParseBool, cfg.Fail, false)
	track(rv, err)
	onlyRequired, rv, err := resolve("onlyRequired", opts.OnlyRequired, strconv.ParseBool, cfg.OnlyRequired, false)
	track(rv, err)
	if firstErr != nil {
		return nil, values, firstErr
	}

	hostingType, err := hosting.ParseType(hostingName)
	if err != nil {
		return nil, values, err
	}
	overwrite, err := ParseOverwrite(overwriteName)
	if err != nil {
		return nil, values, err
	}
	required, err := RequiredKeys(keyPrefix, requireAll, requireNone, require, requireNot)
	if err != nil {
		return nil, values, err
	}

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = defaults.RepoPath
	}

	return &Settings{
		RepoPath:     repoPath,
		RequiredKeys: required,
		KeyPrefix:    keyPrefix,
		DateFormat:   dateFormat,
		HostingType:  hostingType,
		OnlyRequired: onlyRequired,
		FailOnError:  fail,
		Overwrite:    overwrite,
	}, values, nil
}

// ResolveTimestamps resolves whether log lines carry timestamps.
func ResolveTimestamps(flag Flag[bool], cfg *Config) (bool, ResolvedValue) {
	var fromConfig *bool
	if cfg != nil {
		fromConfig = cfg.Log.Timestamps
	}
	v, rv, err := resolve("log.timestamps", flag, strconv.ParseBool, fromConfig, false)
	if err != nil {
		output.Warn("ignoring invalid setting", "err", err)
		return false, rv
	}
	return v, rv
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
