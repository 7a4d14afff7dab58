package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/projvar/cli/internal/config"
	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/license"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

// git describe output: a tag or a bare hash, optionally with the commit
// distance and the dirty/broken markers
var reGitVersion = regexp.MustCompile(`^((g[0-9a-f]{7})|((0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)))(-(0|[1-9]\d*)-(g[0-9a-f]{7}))?((-dirty(-broken)?)|-broken(-dirty)?)?$`)

var reGitSHA = regexp.MustCompile(`^g[0-9a-f]{7,40}$`)

// release versions, without a size limit on the numbers
var reRelease = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// placeholders some CI systems leave in unset variables
var rePlaceholderVersion = regexp.MustCompile(`^($|#|//)`)

var (
	reMachineReadable = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)
	reCommitID        = regexp.MustCompile(`^[0-9a-fA-F]{7,64}$`)
)

func validateNonEmpty(_ *environment.Environment, _ property.Key, _ string) (*Warning, error) {
	return nil, nil
}

func validateMachineReadableName(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if !reMachineReadable.MatchString(value) {
		return nil, almostUsable(value, fmt.Sprintf("Should only consist of lower-case letters, digits, '.', '_' and '-'; it should match \"%s\"", reMachineReadable))
	}
	return nil, nil
}

func validateVersion(env *environment.Environment, key property.Key, value string) (*Warning, error) {
	if reRelease.MatchString(value) {
		return nil, nil
	}
	// pre-release or build metadata
	if _, err := semver.StrictNewVersion(value); err == nil {
		return suboptimal(value, "This version is technically good, but not a release-version (i.e., does not look so nice)"), nil
	}
	switch {
	case reGitVersion.MatchString(value):
		return suboptimal(value, "This version is technically good, but not a release-version (i.e., does not look so nice)"), nil
	case reGitSHA.MatchString(value):
		return suboptimal(value, "This version is technically ok, but not a release-version, and not human-readable"), nil
	case rePlaceholderVersion.MatchString(value):
		return missing(env, key)
	default:
		return nil, badValue(value, "Not a valid version")
	}
}

func dateRule(desc string) rule {
	return func(env *environment.Environment, _ property.Key, value string) (*Warning, error) {
		layout := env.Settings.DateFormat
		if layout == "" {
			layout = config.DefaultDateFormat
		}
		if _, err := time.Parse(layout, value); err != nil {
			return nil, badValue(value, fmt.Sprintf("Not a %s date according to the date-format \"%s\"", desc, layout))
		}
		return nil, nil
	}
}

func validateLicense(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if !license.IsSPDX(value) {
		return suboptimal(value, "Not a recognized SPDX license identifier"), nil
	}
	return nil, nil
}

func validateLicenses(env *environment.Environment, key property.Key, value string) (*Warning, error) {
	ids := license.Split(value)
	if len(ids) == 0 {
		return missing(env, key)
	}
	for _, id := range ids {
		if !license.IsSPDX(id) {
			return suboptimal(value, fmt.Sprintf("Not a recognized SPDX license identifier: %s", id)), nil
		}
	}
	return nil, nil
}

func validateBuildIdent(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if !reCommitID.MatchString(value) {
		return suboptimal(value, "A commit ID is expected to be a hexadecimal hash"), nil
	}
	return nil, nil
}

func validateBuildOs(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if !platform.IsKnownOS(value) {
		return unknown(value), nil
	}
	return nil, nil
}

func validateBuildOsFamily(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	for _, f := range platform.Families() {
		if value == f {
			return nil, nil
		}
	}
	return nil, badValue(value, "Only these values are valid: "+strings.Join(platform.Families(), ", "))
}

func validateBuildArch(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if !platform.IsKnownArch(value) {
		return nil, badValue(value, "Only these values are valid: "+strings.Join(platform.KnownArch(), ", "))
	}
	return nil, nil
}

func validateBuildNumber(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if _, err := strconv.ParseInt(value, 10, 32); err != nil {
		return suboptimal(value, "It is generally recommended and assumed that the build number is an integer (a positive, whole number)"), nil
	}
	return nil, nil
}

func validateCi(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	if value != "true" {
		return suboptimal(value, `CI should either be unset or set to "true"`), nil
	}
	return nil, nil
}
