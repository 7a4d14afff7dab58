package hosting

import (
	"regexp"
	"strings"
)

// URLKind names the shape a repository related URL has.
type URLKind int

const (
	WebURL URLKind = iota
	CloneURL
	RawPrefix
	VersionedFilePrefix
	VersionedDirPrefix
	CommitPrefix
	IssuesPage
)

var kindNames = [...]string{
	WebURL:              "repo web",
	CloneURL:            "repo clone",
	RawPrefix:           "raw versioned prefix",
	VersionedFilePrefix: "versioned file prefix",
	VersionedDirPrefix:  "versioned dir prefix",
	CommitPrefix:        "commit prefix",
	IssuesPage:          "issues",
}

func (k URLKind) String() string {
	return kindNames[k]
}

// GitHub and BitBucket paths are always /<user>/<repo>,
// GitLab allows nested groups: /<group>/<sub>/.../<repo>.
const (
	flatRepo   = `^/(?P<user>[^/]+)/(?P<repo>[^/]+)`
	nestedRepo = `^/(?P<user>[^/]+)/((?P<structure>[^/]+)/)*(?P<repo>[^/]+)`
)

var pathGrammars = map[URLKind]map[Type]*regexp.Regexp{
	WebURL: {
		GitHub:    regexp.MustCompile(flatRepo + `/?$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/?$`),
		BitBucket: regexp.MustCompile(flatRepo + `/?$`),
	},
	CloneURL: {
		GitHub:    regexp.MustCompile(flatRepo + `\.git$`),
		GitLab:    regexp.MustCompile(nestedRepo + `\.git$`),
		BitBucket: regexp.MustCompile(flatRepo + `\.git$`),
	},
	RawPrefix: {
		GitHub:    regexp.MustCompile(flatRepo + `$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/(-/)?raw$`),
		BitBucket: regexp.MustCompile(flatRepo + `/raw$`),
	},
	VersionedFilePrefix: {
		GitHub:    regexp.MustCompile(flatRepo + `/blob$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/(-/)?blob$`),
		BitBucket: regexp.MustCompile(flatRepo + `/src$`),
	},
	VersionedDirPrefix: {
		GitHub:    regexp.MustCompile(flatRepo + `/tree$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/(-/)?tree$`),
		BitBucket: regexp.MustCompile(flatRepo + `/src$`),
	},
	CommitPrefix: {
		GitHub:    regexp.MustCompile(flatRepo + `/commit$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/(-/)?commit$`),
		BitBucket: regexp.MustCompile(flatRepo + `/commits$`),
	},
	IssuesPage: {
		GitHub:    regexp.MustCompile(flatRepo + `/issues$`),
		GitLab:    regexp.MustCompile(nestedRepo + `/(-/)?issues$`),
		BitBucket: regexp.MustCompile(flatRepo + `/issues$`),
	},
}

// PathGrammar returns the expected path shape of a URL kind on a host type,
// or nil for Unknown.
func PathGrammar(kind URLKind, t Type) *regexp.Regexp {
	return pathGrammars[kind][t]
}

// Host returns the host a URL kind is served from on a hosting type.
func Host(kind URLKind, t Type) string {
	switch t {
	case GitHub:
		if kind == RawPrefix {
			return DomainGitHubRaw
		}
		return DomainGitHub
	case GitLab:
		return DomainGitLab
	case BitBucket:
		return DomainBitBucket
	default:
		return ""
	}
}

// PagesHost describes a static page hosting service.
type PagesHost struct {
	Type    Type
	Suffix  string
	Grammar *regexp.Regexp
}

// BitBucket only supports one pages repository per user, so it has no entry.
var pagesHosts = []PagesHost{
	{Type: GitHub, Suffix: SuffixGitHubPages, Grammar: regexp.MustCompile(`^(?P<user>[^/.]+)\.github\.io$`)},
	{Type: GitLab, Suffix: SuffixGitLabPages, Grammar: regexp.MustCompile(`^(?P<user>[^/.]+)\.gitlab\.io$`)},
}

// PagesHostFor finds the pages service whose suffix the host carries.
func PagesHostFor(host string) (PagesHost, bool) {
	host = strings.ToLower(host)
	for _, ph := range pagesHosts {
		if strings.HasSuffix(host, ph.Suffix) {
			return ph, true
		}
	}
	return PagesHost{}, false
}

// PagesHostOf returns the pages service of a hosting type.
func PagesHostOf(t Type) (PagesHost, bool) {
	for _, ph := range pagesHosts {
		if ph.Type == t {
			return ph, true
		}
	}
	return PagesHost{}, false
}
