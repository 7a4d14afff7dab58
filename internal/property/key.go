// Package property defines the closed set of project properties that can be
// resolved, together with their static metadata.
//
// Every property is identified by a Key. The registry maps each Key to a
// Variable describing how it is exposed to the outside world (for example
// "PROJECT_VERSION") and whether it is required by default. The registry is
// a fixed table indexed by Key; it is never mutated after package
// initialization.
package property

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies a single resolvable project property.
type Key int

// All resolvable properties. New keys must be added before keyCount and
// registered in the variables table; the registry tests fail otherwise.
const (
	Name Key = iota
	NameMachineReadable
	Version
	VersionDate
	License
	Licenses
	BuildBranch
	BuildTag
	BuildIdent
	BuildDate
	BuildOs
	BuildOsFamily
	BuildArch
	BuildNumber
	BuildHostingURL
	Ci
	RepoWebURL
	RepoCloneURL
	RepoCloneURLSSH
	RepoIssuesURL
	RepoRawVersionedPrefixURL
	RepoVersionedFilePrefixURL
	RepoVersionedDirPrefixURL
	RepoCommitPrefixURL

	keyCount
)

var keyNames = [keyCount]string{
	Name:                       "Name",
	NameMachineReadable:        "NameMachineReadable",
	Version:                    "Version",
	VersionDate:                "VersionDate",
	License:                    "License",
	Licenses:                   "Licenses",
	BuildBranch:                "BuildBranch",
	BuildTag:                   "BuildTag",
	BuildIdent:                 "BuildIdent",
	BuildDate:                  "BuildDate",
	BuildOs:                    "BuildOs",
	BuildOsFamily:              "BuildOsFamily",
	BuildArch:                  "BuildArch",
	BuildNumber:                "BuildNumber",
	BuildHostingURL:            "BuildHostingURL",
	Ci:                         "Ci",
	RepoWebURL:                 "RepoWebURL",
	RepoCloneURL:               "RepoCloneURL",
	RepoCloneURLSSH:            "RepoCloneURLSSH",
	RepoIssuesURL:              "RepoIssuesURL",
	RepoRawVersionedPrefixURL:  "RepoRawVersionedPrefixURL",
	RepoVersionedFilePrefixURL: "RepoVersionedFilePrefixURL",
	RepoVersionedDirPrefixURL:  "RepoVersionedDirPrefixURL",
	RepoCommitPrefixURL:        "RepoCommitPrefixURL",
}

// Count returns the number of known keys.
func Count() int {
	return int(keyCount)
}

// Keys returns all keys in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}

// String returns the canonical property name, e.g. "RepoWebURL".
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey resolves a user supplied identifier into a Key.
// It accepts the property name ("Version", case-insensitive), the full
// external variable name ("PROJECT_VERSION") or the variable name without
// the given prefix ("VERSION").
func ParseKey(prefix, s string) (Key, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty property key")
	}
	for _, k := range Keys() {
		if strings.EqualFold(k.String(), trimmed) {
			return k, nil
		}
	}
	unprefixed := trimmed
	if prefix != "" {
		unprefixed = strings.TrimPrefix(trimmed, prefix)
	}
	for _, k := range Keys() {
		v := Of(k)
		if v.KeySuffix == unprefixed || v.ExternalKey(prefix) == trimmed {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown property %q (see 'projvar list' for all keys)", s)
}

// Set is a set of keys.
type Set map[Key]struct{}

// NewSet creates a set holding the given keys.
func NewSet(keys ...Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// AllKeys returns a set containing every key.
func AllKeys() Set {
	return NewSet(Keys()...)
}

// Contains reports whether k is in the set.
func (s Set) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// Add inserts k.
func (s Set) Add(k Key) {
	s[k] = struct{}{}
}

// Remove deletes k.
func (s Set) Remove(k Key) {
	delete(s, k)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Sorted returns the keys in declaration order.
func (s Set) Sorted() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
