// Package validator checks resolved property values against the format
// rules of their property.
package validator

import (
	"fmt"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/property"
)

// Kind classifies a validation finding.
type Kind int

const (
	// Missing means no source produced a value.
	Missing Kind = iota
	// Suboptimal values are usable but not ideal.
	Suboptimal
	// Unknown values could not be checked.
	Unknown
	// AlmostUsable values are close to a valid one, e.g. a URL with
	// credentials or a path with a typo.
	AlmostUsable
	// BadValue values make no sense for the property.
	BadValue
)

var kindNames = [...]string{
	Missing:      "missing",
	Suboptimal:   "suboptimal",
	Unknown:      "unknown",
	AlmostUsable: "almost-usable",
	BadValue:     "bad-value",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Warning is a finding that does not make the value unusable.
// Its Kind is Missing, Suboptimal or Unknown.
type Warning struct {
	Kind  Kind
	Msg   string
	Value string
}

func (w *Warning) Error() string {
	switch w.Kind {
	case Missing:
		return "No value found for a property"
	case Suboptimal:
		return fmt.Sprintf("The value '%s' is usable, but not optimal - %s", w.Value, w.Msg)
	default:
		return fmt.Sprintf("No method to check validity of value '%s'", w.Value)
	}
}

// Error is a finding that makes the value unusable.
// Its Kind is Missing, AlmostUsable or BadValue.
type Error struct {
	Kind  Kind
	Msg   string
	Value string
}

func (e *Error) Error() string {
	switch e.Kind {
	case Missing:
		return "No value found for a required property"
	case AlmostUsable:
		return fmt.Sprintf("The value '%s' is unfit for this key, but only just - %s", e.Value, e.Msg)
	default:
		return fmt.Sprintf("The value '%s' is unfit for this key - %s", e.Value, e.Msg)
	}
}

func suboptimal(value, msg string) *Warning {
	return &Warning{Kind: Suboptimal, Msg: msg, Value: value}
}

func unknown(value string) *Warning {
	return &Warning{Kind: Unknown, Value: value}
}

func almostUsable(value, msg string) error {
	return &Error{Kind: AlmostUsable, Msg: msg, Value: value}
}

func badValue(value, msg string) error {
	return &Error{Kind: BadValue, Msg: msg, Value: value}
}

// missing reports an absent value: an error for required keys, a warning
// otherwise.
func missing(env *environment.Environment, key property.Key) (*Warning, error) {
	if env.Settings.RequiredKeys.Contains(key) {
		return nil, &Error{Kind: Missing}
	}
	return &Warning{Kind: Missing}, nil
}

// Validator checks a value. It returns a warning, an error (an *Error), or
// neither when the value is fine.
type Validator func(env *environment.Environment, value string) (*Warning, error)

type rule func(env *environment.Environment, key property.Key, value string) (*Warning, error)

// rules is indexed by key; the registry test makes sure every key has one.
var rules = [...]rule{
	property.Name:                       validateNonEmpty,
	property.NameMachineReadable:        validateMachineReadableName,
	property.Version:                    validateVersion,
	property.VersionDate:                dateRule("version"),
	property.License:                    validateLicense,
	property.Licenses:                   validateLicenses,
	property.BuildBranch:                validateNonEmpty,
	property.BuildTag:                   validateNonEmpty,
	property.BuildIdent:                 validateBuildIdent,
	property.BuildDate:                  dateRule("build"),
	property.BuildOs:                    validateBuildOs,
	property.BuildOsFamily:              validateBuildOsFamily,
	property.BuildArch:                  validateBuildArch,
	property.BuildNumber:                validateBuildNumber,
	property.BuildHostingURL:            validateBuildHostingURL,
	property.Ci:                         validateCi,
	property.RepoWebURL:                 repoURLRule(hosting.WebURL),
	property.RepoCloneURL:               validateCloneURL,
	property.RepoCloneURLSSH:            validateCloneURLSSH,
	property.RepoIssuesURL:              repoURLRule(hosting.IssuesPage),
	property.RepoRawVersionedPrefixURL:  repoURLRule(hosting.RawPrefix),
	property.RepoVersionedFilePrefixURL: repoURLRule(hosting.VersionedFilePrefix),
	property.RepoVersionedDirPrefixURL:  repoURLRule(hosting.VersionedDirPrefix),
	property.RepoCommitPrefixURL:        repoURLRule(hosting.CommitPrefix),
}

// Get returns the validator of key. Empty values are always reported as
// missing.
func Get(key property.Key) Validator {
	r := rules[key]
	return func(env *environment.Environment, value string) (*Warning, error) {
		if value == "" {
			return missing(env, key)
		}
		return r(env, key, value)
	}
}

// Validate runs the validator of key on value.
func Validate(env *environment.Environment, key property.Key, value string) (*Warning, error) {
	return Get(key)(env, value)
}
