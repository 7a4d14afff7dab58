// Package platform knows the operating system and architecture names used
// for the build properties. Names follow Go's GOOS and GOARCH values.
package platform

import (
	"runtime"
	"slices"
	"strings"
)

// OS family values.
const (
	FamilyUnix    = "unix"
	FamilyWindows = "windows"
)

// Families lists the valid OS family values.
func Families() []string {
	return []string{FamilyUnix, FamilyWindows}
}

var knownOS = []string{
	"aix", "android", "darwin", "dragonfly", "freebsd", "hurd", "illumos",
	"ios", "js", "linux", "nacl", "netbsd", "openbsd", "plan9", "solaris",
	"wasip1", "windows", "zos",
}

var knownArch = []string{
	"386", "amd64", "arm", "arm64", "loong64", "mips", "mips64", "mips64le",
	"mipsle", "ppc64", "ppc64le", "riscv64", "s390x", "sparc64", "wasm",
}

// not unix, not windows
var nonUnixOS = []string{"js", "plan9", "wasip1"}

// KnownArch lists the recognised architecture names.
func KnownArch() []string {
	return slices.Clone(knownArch)
}

// IsKnownOS reports whether goos is a recognised operating system name.
func IsKnownOS(goos string) bool {
	return slices.Contains(knownOS, goos)
}

// IsKnownArch reports whether goarch is a recognised architecture name.
func IsKnownArch(goarch string) bool {
	return slices.Contains(knownArch, goarch)
}

// Family returns the OS family of goos, or "" if it has none.
func Family(goos string) string {
	switch {
	case goos == "windows":
		return FamilyWindows
	case slices.Contains(nonUnixOS, goos), !IsKnownOS(goos):
		return ""
	default:
		return FamilyUnix
	}
}

// Current returns the operating system and architecture of this process.
func Current() (goos, goarch string) {
	return runtime.GOOS, runtime.GOARCH
}

var osAliases = map[string]string{
	"macos":     "darwin",
	"osx":       "darwin",
	"mac":       "darwin",
	"win":       "windows",
	"win32":     "windows",
	"win64":     "windows",
	"gnu/linux": "linux",
}

var archAliases = map[string]string{
	"x86":     "386",
	"i386":    "386",
	"i686":    "386",
	"x64":     "amd64",
	"x86_64":  "amd64",
	"x86-64":  "amd64",
	"aarch64": "arm64",
	"armv7":   "arm",
	"armv7l":  "arm",
	"arm32":   "arm",
}

// NormalizeOS maps CI runner spellings such as "Linux" or "macOS" to GOOS
// names. Unknown names are returned lower-cased.
func NormalizeOS(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := osAliases[s]; ok {
		return alias
	}
	return s
}

// NormalizeArch maps CI runner spellings such as "X64" or "ARM64" to GOARCH
// names. Unknown names are returned lower-cased.
func NormalizeArch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := archAliases[s]; ok {
		return alias
	}
	return s
}
