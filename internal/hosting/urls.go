package hosting

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnsupported is returned when a URL can not be built for a hosting type,
// e.g. a raw-file prefix for an unknown host.
var ErrUnsupported = errors.New("not supported for this hosting type")

// Protocol selects the clone URL flavour.
type Protocol int

const (
	HTTPS Protocol = iota
	SSH
)

// scp-like git address: [user@]host:path
var reScpLike = regexp.MustCompile(`^(?:[^@/:]+@)?([^/:]+):(.+)$`)

// ParseWebURL parses and normalises a repository web URL:
// credentials, query, fragment and trailing slashes are removed.
func ParseWebURL(web string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(web))
	if err != nil {
		return nil, fmt.Errorf("parsing repository web URL %q: %w", web, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("repository web URL %q has no host", web)
	}
	clean(u)
	return u, nil
}

func clean(u *url.URL) {
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	u.RawPath = ""
	u.Path = strings.TrimRight(u.Path, "/")
}

// CloneToWeb converts any clone URL (https, ssh:// or scp-like
// "git@host:user/repo.git") into the repository web URL.
func CloneToWeb(clone string) (string, error) {
	clone = strings.TrimSpace(clone)
	if clone == "" {
		return "", fmt.Errorf("empty clone URL")
	}
	if !strings.Contains(clone, "://") {
		m := reScpLike.FindStringSubmatch(clone)
		if m == nil {
			return "", fmt.Errorf("unrecognised clone URL %q", clone)
		}
		clone = "ssh://" + m[1] + "/" + strings.TrimPrefix(m[2], "/")
	}
	u, err := url.Parse(clone)
	if err != nil {
		return "", fmt.Errorf("parsing clone URL %q: %w", clone, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("clone URL %q has no host", clone)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		// ssh, git, git+ssh: the web interface lives on the bare host
		u.Scheme = "https"
		u.Host = u.Hostname()
	}
	clean(u)
	u.Path = strings.TrimSuffix(u.Path, ".git")
	return u.String(), nil
}

// WebToClone builds an anonymous clone URL from a repository web URL.
func WebToClone(web string, proto Protocol) (string, error) {
	u, err := ParseWebURL(web)
	if err != nil {
		return "", err
	}
	switch proto {
	case HTTPS:
		u.Path += ".git"
		return u.String(), nil
	case SSH:
		return "git@" + u.Hostname() + ":" + strings.TrimPrefix(u.Path, "/") + ".git", nil
	default:
		return "", fmt.Errorf("unknown clone protocol %d", proto)
	}
}

// IssuesURL returns the issue tracker URL for a repository web URL.
func IssuesURL(web string, override Type) (string, error) {
	return withSuffix(web, override, map[Type]string{
		GitHub:    "/issues",
		GitLab:    "/-/issues",
		BitBucket: "/issues",
		Unknown:   "/issues",
	})
}

// RawPrefixURL returns the prefix for raw file downloads; append
// "/<version>/<path>" to it.
func RawPrefixURL(web string, override Type) (string, error) {
	u, err := ParseWebURL(web)
	if err != nil {
		return "", err
	}
	switch Detect(u, override) {
	case GitHub:
		u.Host = DomainGitHubRaw
		return u.String(), nil
	case GitLab:
		u.Path += "/-/raw"
		return u.String(), nil
	case BitBucket:
		u.Path += "/raw"
		return u.String(), nil
	default:
		return "", ErrUnsupported
	}
}

// VersionedFilePrefixURL returns the prefix for viewing a file at a version.
func VersionedFilePrefixURL(web string, override Type) (string, error) {
	return withSuffix(web, override, map[Type]string{
		GitHub:    "/blob",
		GitLab:    "/-/blob",
		BitBucket: "/src",
	})
}

// VersionedDirPrefixURL returns the prefix for browsing a directory at a
// version.
func VersionedDirPrefixURL(web string, override Type) (string, error) {
	return withSuffix(web, override, map[Type]string{
		GitHub:    "/tree",
		GitLab:    "/-/tree",
		BitBucket: "/src",
	})
}

// CommitPrefixURL returns the prefix for viewing a single commit.
func CommitPrefixURL(web string, override Type) (string, error) {
	return withSuffix(web, override, map[Type]string{
		GitHub:    "/commit",
		GitLab:    "/-/commit",
		BitBucket: "/commits",
	})
}

// BuildHostingURL returns the pages URL of the project,
// e.g. https://user.github.io/repo. BitBucket has no per-repository pages.
func BuildHostingURL(web string, override Type) (string, error) {
	u, err := ParseWebURL(web)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("repository web URL %q has no user/repository path", web)
	}
	owner, rest := strings.ToLower(segments[0]), strings.Join(segments[1:], "/")
	pages, ok := PagesHostOf(Detect(u, override))
	if !ok {
		return "", ErrUnsupported
	}
	return "https://" + owner + pages.Suffix + "/" + rest, nil
}

// SlugName returns the repository name from a slug ("user/repo"), a path or
// a URL: the last path segment without a ".git" suffix.
func SlugName(slug string) string {
	slug = strings.TrimRight(strings.TrimSpace(slug), "/")
	if i := strings.LastIndexAny(slug, "/:"); i >= 0 {
		slug = slug[i+1:]
	}
	return strings.TrimSuffix(slug, ".git")
}

func withSuffix(web string, override Type, suffixes map[Type]string) (string, error) {
	u, err := ParseWebURL(web)
	if err != nil {
		return "", err
	}
	suffix, ok := suffixes[Detect(u, override)]
	if !ok {
		return "", ErrUnsupported
	}
	u.Path += suffix
	return u.String(), nil
}
