package license

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/licensecheck"
)

// DirName is the REUSE licenses directory, holding one <SPDX-ID>.txt per license.
const DirName = "LICENSES"

var fileNamePrefixes = []string{"LICENSE", "LICENCE", "COPYING", "UNLICENSE"}

// File name suffixes as found in the wild, e.g. LICENSE-MIT, LICENSE.Apache-2.0.
var fileNameAliases = map[string]string{
	"mit":        "MIT",
	"apache":     "Apache-2.0",
	"apache2":    "Apache-2.0",
	"apache-2.0": "Apache-2.0",
	"bsd":        "BSD-3-Clause",
	"gpl":        "GPL-3.0-or-later",
	"gpl3":       "GPL-3.0-or-later",
	"gpl2":       "GPL-2.0-or-later",
	"lgpl":       "LGPL-3.0-or-later",
	"agpl":       "AGPL-3.0-or-later",
	"mpl":        "MPL-2.0",
	"cc0":        "CC0-1.0",
	"unlicense":  "Unlicense",
}

// Below this share of the text covered by known licenses a file is not
// classified.
const minCoverage = 50.0

// IsLicenseFileName reports whether a file name looks like a license file.
func IsLicenseFileName(name string) bool {
	upper := strings.ToUpper(name)
	for _, p := range fileNamePrefixes {
		if strings.HasPrefix(upper, p) {
			return true
		}
	}
	return false
}

// FromDir lists the license identifiers of a REUSE style LICENSES directory.
// It returns nil without error when the directory does not exist.
func FromDir(repoPath string) ([]string, error) {
	dir := filepath.Join(repoPath, DirName)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(e.Name(), ".txt"); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// FromFiles classifies the LICENSE*, LICENCE* and COPYING* files in the
// repository root. Files that can not be classified are skipped.
func FromFiles(repoPath string) ([]string, error) {
	entries, err := os.ReadDir(repoPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", repoPath, err)
	}
	var ids []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !IsLicenseFileName(e.Name()) {
			continue
		}
		id, err := ClassifyFile(filepath.Join(repoPath, e.Name()))
		if err != nil {
			return nil, err
		}
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// ClassifyFile returns the SPDX identifier of a license file, or "" if it
// is not recognised. The file name is consulted first, then the text.
func ClassifyFile(path string) (string, error) {
	if id := classifyName(filepath.Base(path)); id != "" {
		return id, nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading license file %s: %w", path, err)
	}
	return ClassifyText(text), nil
}

// ClassifyText returns the license covering most of text, or "" when the
// text is not mostly a known license.
func ClassifyText(text []byte) string {
	cov := licensecheck.Scan(text)
	if cov.Percent < minCoverage {
		return ""
	}
	var best licensecheck.Match
	for _, m := range cov.Match {
		if m.IsURL {
			continue
		}
		if best.ID == "" || m.End-m.Start > best.End-best.Start {
			best = m
		}
	}
	if id, ok := Canonical(best.ID); ok {
		return id
	}
	return best.ID
}

func classifyName(name string) string {
	base := name
	for _, ext := range []string{".txt", ".md", ".markdown", ".rst"} {
		base = strings.TrimSuffix(base, ext)
		base = strings.TrimSuffix(base, strings.ToUpper(ext))
	}
	upper := strings.ToUpper(base)
	for _, p := range fileNamePrefixes {
		if !strings.HasPrefix(upper, p) {
			continue
		}
		suffix := strings.TrimLeft(base[len(p):], "-_.")
		if suffix == "" {
			return ""
		}
		if id, ok := Canonical(suffix); ok {
			return id
		}
		return fileNameAliases[strings.ToLower(suffix)]
	}
	return ""
}
