package sources

import (
	"errors"
	"regexp"
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/platform"
	"github.com/projvar/cli/internal/property"
)

type deriver func(env *environment.Environment, base string) (string, error)

type derivation struct {
	base   property.Key
	derive deriver
}

func urlDeriver(fn func(web string, override hosting.Type) (string, error)) deriver {
	return func(env *environment.Environment, web string) (string, error) {
		return fn(web, env.Settings.HostingType)
	}
}

func cloneDeriver(proto hosting.Protocol) deriver {
	return func(_ *environment.Environment, web string) (string, error) {
		return hosting.WebToClone(web, proto)
	}
}

var derivations = map[property.Key]derivation{
	property.NameMachineReadable: {property.Name, func(_ *environment.Environment, name string) (string, error) {
		return MachineReadable(name), nil
	}},
	property.BuildOsFamily: {property.BuildOs, func(_ *environment.Environment, goos string) (string, error) {
		return platform.Family(goos), nil
	}},
	property.RepoCloneURL:               {property.RepoWebURL, cloneDeriver(hosting.HTTPS)},
	property.RepoCloneURLSSH:            {property.RepoWebURL, cloneDeriver(hosting.SSH)},
	property.RepoIssuesURL:              {property.RepoWebURL, urlDeriver(hosting.IssuesURL)},
	property.RepoRawVersionedPrefixURL:  {property.RepoWebURL, urlDeriver(hosting.RawPrefixURL)},
	property.RepoVersionedFilePrefixURL: {property.RepoWebURL, urlDeriver(hosting.VersionedFilePrefixURL)},
	property.RepoVersionedDirPrefixURL:  {property.RepoWebURL, urlDeriver(hosting.VersionedDirPrefixURL)},
	property.RepoCommitPrefixURL:        {property.RepoWebURL, urlDeriver(hosting.CommitPrefixURL)},
	property.BuildHostingURL:            {property.RepoWebURL, urlDeriver(hosting.BuildHostingURL)},
}

// DerivedFrom returns the property key is computed from, if it is derived.
func DerivedFrom(key property.Key) (property.Key, bool) {
	d, ok := derivations[key]
	return d.base, ok
}

// IsDerived reports whether key can be computed from another property.
func IsDerived(key property.Key) bool {
	_, ok := derivations[key]
	return ok
}

// Derive computes key from the answer src gives for the key it is derived
// from. The result carries the confidence of that answer. A value that can
// not be derived, e.g. a raw-file URL for an unknown host, is no answer.
func Derive(src Source, env *environment.Environment, key property.Key) (*property.Rated, error) {
	d, ok := derivations[key]
	if !ok {
		return nil, nil
	}
	base, err := src.Retrieve(env, d.base)
	if err != nil || base == nil {
		return nil, err
	}
	value, err := d.derive(env, base.Value)
	if err != nil {
		if !errors.Is(err, hosting.ErrUnsupported) {
			output.Debug("derivation failed", "source", src.Name(), "property", key.String(), "err", err)
		}
		return nil, nil
	}
	if value == "" {
		return nil, nil
	}
	return property.NewRated(base.Confidence, value), nil
}

var reNonMachine = regexp.MustCompile(`[^a-z0-9._]+`)

// MachineReadable turns a human project name into a lower-case identifier
// made of letters, digits, ".", "_" and "-".
func MachineReadable(name string) string {
	s := reNonMachine.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-._")
}
