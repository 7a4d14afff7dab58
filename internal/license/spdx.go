// Package license recognises SPDX license identifiers and detects the
// licenses of a project from its license files.
package license

import (
	"strings"
	"sync"

	"github.com/github/go-spdx/v2/spdxexp/spdxlicenses"
)

var (
	loadOnce sync.Once
	exact    map[string]struct{}
	folded   map[string]string
)

// Deprecated identifiers like GPL-3.0 are still widespread and count as known.
func load() {
	active, deprecated := spdxlicenses.GetLicenses(), spdxlicenses.GetDeprecated()
	exact = make(map[string]struct{}, len(active)+len(deprecated))
	folded = make(map[string]string, len(active)+len(deprecated))
	for _, list := range [][]string{deprecated, active} {
		for _, id := range list {
			exact[id] = struct{}{}
			folded[strings.ToLower(id)] = id
		}
	}
}

// IsSPDX reports whether id is a known SPDX identifier, exactly as written.
func IsSPDX(id string) bool {
	loadOnce.Do(load)
	_, ok := exact[id]
	return ok
}

// Canonical returns the correctly cased SPDX identifier for id,
// matched case-insensitively.
func Canonical(id string) (string, bool) {
	loadOnce.Do(load)
	c, ok := folded[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

// Split splits a list of licenses as written into the Licenses property.
func Split(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Join is the inverse of Split.
func Join(ids []string) string {
	return strings.Join(ids, ", ")
}
