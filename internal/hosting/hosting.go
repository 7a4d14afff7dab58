// Package hosting knows the public git hosting providers: how to recognise
// them from a URL, how their repository URLs are shaped, and how to build the
// derived URLs (issues, raw files, commits, ...) from a repository web URL.
package hosting

import (
	"fmt"
	"net/url"
	"strings"
)

// Type is a git hosting provider.
type Type int

const (
	// Unknown means no provider could be recognised.
	Unknown Type = iota
	GitHub
	GitLab
	BitBucket
)

// Well known hosting domains.
const (
	DomainGitHub    = "github.com"
	DomainGitHubRaw = "raw.githubusercontent.com"
	DomainGitLab    = "gitlab.com"
	DomainBitBucket = "bitbucket.org"

	SuffixGitHubPages = ".github.io"
	SuffixGitLabPages = ".gitlab.io"
)

var typeNames = [...]string{
	Unknown:   "unknown",
	GitHub:    "github",
	GitLab:    "gitlab",
	BitBucket: "bitbucket",
}

// String returns the lower-case name used in flags and config files.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Types returns every type, including Unknown.
func Types() []Type {
	return []Type{Unknown, GitHub, GitLab, BitBucket}
}

// TypeNames returns the accepted names, for help texts.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for _, t := range Types() {
		names = append(names, t.String())
	}
	return names
}

// ParseType parses a hosting type name. The empty string is Unknown.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unknown, nil
	}
	for _, t := range Types() {
		if t.String() == s {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("invalid hosting type %q (valid: %s)", s, strings.Join(TypeNames(), ", "))
}

// DetectHost maps a host name (without port) to its provider.
func DetectHost(host string) Type {
	switch strings.ToLower(host) {
	case DomainGitHub, DomainGitHubRaw:
		return GitHub
	case DomainGitLab:
		return GitLab
	case DomainBitBucket:
		return BitBucket
	default:
		return Unknown
	}
}

// Detect returns override if it is set, otherwise the provider recognised
// from the URL's host.
func Detect(u *url.URL, override Type) Type {
	if override != Unknown {
		return override
	}
	if u == nil {
		return Unknown
	}
	return DetectHost(u.Hostname())
}
