package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/projvar/cli/internal/environment"
	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/property"
)

// scp-like clone address, e.g. git@github.com:user/repo.git
var reSSHCloneURL = regexp.MustCompile(`^(?P<user>git@)?(?P<host>[^/:]+)((:|/)(?P<path>.+))?$`)

// checkPublicURL makes sure value is an anonymous, plain URL.
// With allowSSH the ssh scheme and its "git" user are accepted.
func checkPublicURL(value string, allowSSH bool) (*url.URL, error) {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, badValue(value, "Not a valid URL")
	}
	schemes := "http, https"
	if allowSSH {
		schemes += ", ssh"
	}
	isSSH := u.Scheme == "ssh"
	if !(u.Scheme == "http" || u.Scheme == "https" || (allowSSH && isSSH)) {
		return nil, almostUsable(value, fmt.Sprintf("Should use one of these as protocol(scheme): [%s]", schemes))
	}
	if u.User != nil {
		if name := u.User.Username(); name != "" && !(isSSH && name == "git") {
			return nil, almostUsable(value, "Should be anonymous access, but specifies a user-name: "+name)
		}
		if _, ok := u.User.Password(); ok {
			return nil, almostUsable(value, "Should be anonymous access, but contains a password")
		}
	}
	if u.RawQuery != "" || u.ForceQuery {
		return nil, almostUsable(value, "Should be a simple URL, but uses query arguments: "+u.RawQuery)
	}
	if u.Fragment != "" {
		return nil, almostUsable(value, "Should be a simple URL, but uses a fragment: "+u.Fragment)
	}
	return u, nil
}

// checkURLPath checks the path of u against the grammar of its hosting
// service. A configured hosting type replaces detection by host, the same
// way the derived URLs are built; without one, the host has to be the one
// the service serves this kind of URL from.
func checkURLPath(env *environment.Environment, value string, kind hosting.URLKind, u *url.URL) (*Warning, error) {
	host := strings.ToLower(u.Hostname())
	override := env.Settings.HostingType
	t := hosting.Detect(u, override)
	grammar := hosting.PathGrammar(kind, t)
	if grammar == nil {
		return unknown(value), nil
	}
	if want := hosting.Host(kind, t); override == hosting.Unknown && host != want {
		return nil, almostUsable(value, fmt.Sprintf("For %s, the %s URL should use the host \"%s\"", t, kind, want))
	}
	if !grammar.MatchString(u.Path) {
		return nil, almostUsable(value, fmt.Sprintf("For %s, this path part of the %s URL is invalid: \"%s\"; it should match \"%s\"", host, kind, u.Path, grammar))
	}
	return nil, nil
}

func repoURLRule(kind hosting.URLKind) rule {
	return func(env *environment.Environment, _ property.Key, value string) (*Warning, error) {
		u, err := checkPublicURL(value, false)
		if err != nil {
			return nil, err
		}
		return checkURLPath(env, value, kind, u)
	}
}

// cloneURL accepts regular URLs as well as scp-like ssh addresses.
func cloneURL(value string) (*url.URL, error) {
	u, err := checkPublicURL(value, true)
	if err == nil || strings.Contains(value, "://") {
		return u, err
	}
	sshValue := reSSHCloneURL.ReplaceAllString(value, "ssh://${host}/${path}")
	if u, sshErr := checkPublicURL(sshValue, true); sshErr == nil {
		return u, nil
	}
	return nil, err
}

func validateCloneURL(env *environment.Environment, _ property.Key, value string) (*Warning, error) {
	u, err := cloneURL(value)
	if err != nil {
		return nil, err
	}
	return checkURLPath(env, value, hosting.CloneURL, u)
}

func validateCloneURLSSH(env *environment.Environment, _ property.Key, value string) (*Warning, error) {
	u, err := cloneURL(value)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ssh" {
		return nil, almostUsable(value, "Should be an SSH clone URL, e.g. git@host:user/repo.git")
	}
	return checkURLPath(env, value, hosting.CloneURL, u)
}

func validateBuildHostingURL(_ *environment.Environment, _ property.Key, value string) (*Warning, error) {
	u, err := checkPublicURL(value, false)
	if err != nil {
		return nil, err
	}
	host := strings.ToLower(u.Hostname())
	pages, ok := hosting.PagesHostFor(host)
	if !ok {
		return unknown(value), nil
	}
	if !pages.Grammar.MatchString(host) {
		return nil, almostUsable(value, fmt.Sprintf("For %s, this host part of the build hosting URL is invalid: \"%s\"; it should match \"%s\"", pages.Suffix, host, pages.Grammar))
	}
	return nil, nil
}
