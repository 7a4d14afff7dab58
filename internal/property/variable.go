package property

// DefaultKeyPrefix is prepended to every variable key suffix when values are
// read from or written to the environment.
const DefaultKeyPrefix = "PROJECT_"

// Variable is the static metadata bound to a Key.
type Variable struct {
	// KeySuffix is the external name without prefix, e.g. "VERSION".
	KeySuffix string

	// Description is a human-readable explanation of the property.
	Description string

	// DefaultRequired marks keys treated as mandatory unless overridden.
	DefaultRequired bool
}

// ExternalKey returns the variable name as exposed externally,
// e.g. "PROJECT_VERSION" for prefix "PROJECT_".
func (v *Variable) ExternalKey(prefix string) string {
	return prefix + v.KeySuffix
}

var variables = [keyCount]Variable{
	Name: {
		KeySuffix:       "NAME",
		Description:     "The name of the project, usually the repository name",
		DefaultRequired: true,
	},
	NameMachineReadable: {
		KeySuffix:   "NAME_MACHINE_READABLE",
		Description: "The name of the project in a form usable for file and package names (lower-case, no spaces)",
	},
	Version: {
		KeySuffix:       "VERSION",
		Description:     "The project version, preferably a semantic version (e.g. 1.10.3) or a git describe string",
		DefaultRequired: true,
	},
	VersionDate: {
		KeySuffix:   "VERSION_DATE",
		Description: "Date of the commit the version refers to, in the configured date format",
	},
	License: {
		KeySuffix:       "LICENSE",
		Description:     "The main license of the project as an SPDX identifier (e.g. GPL-3.0-or-later)",
		DefaultRequired: true,
	},
	Licenses: {
		KeySuffix:   "LICENSES",
		Description: "All licenses used in the project, as a comma separated list of SPDX identifiers",
	},
	BuildBranch: {
		KeySuffix:   "BUILD_BRANCH",
		Description: "The VCS branch checked out for this build",
	},
	BuildTag: {
		KeySuffix:   "BUILD_TAG",
		Description: "The VCS tag checked out for this build, if any",
	},
	BuildIdent: {
		KeySuffix:   "BUILD_IDENT",
		Description: "The VCS commit id (SHA) checked out for this build",
	},
	BuildDate: {
		KeySuffix:       "BUILD_DATE",
		Description:     "Date of the build, in the configured date format",
		DefaultRequired: true,
	},
	BuildOs: {
		KeySuffix:   "BUILD_OS",
		Description: "The operating system the build runs on (e.g. linux, darwin, windows)",
	},
	BuildOsFamily: {
		KeySuffix:   "BUILD_OS_FAMILY",
		Description: "The operating system family the build runs on (unix or windows)",
	},
	BuildArch: {
		KeySuffix:   "BUILD_ARCH",
		Description: "The CPU architecture the build runs on (e.g. amd64, arm64)",
	},
	BuildNumber: {
		KeySuffix:   "BUILD_NUMBER",
		Description: "The CI build/pipeline number",
	},
	BuildHostingURL: {
		KeySuffix:   "BUILD_HOSTING_URL",
		Description: "Web URL where build artifacts or generated pages are hosted (e.g. GitHub/GitLab Pages)",
	},
	Ci: {
		KeySuffix:   "CI",
		Description: `"true" if the build runs in continuous integration, "false" otherwise`,
	},
	RepoWebURL: {
		KeySuffix:       "REPO_WEB_URL",
		Description:     "Web URL of the repository (e.g. https://github.com/user/project)",
		DefaultRequired: true,
	},
	RepoCloneURL: {
		KeySuffix:       "REPO_CLONE_URL",
		Description:     "Anonymous HTTP(S) clone URL of the repository",
		DefaultRequired: true,
	},
	RepoCloneURLSSH: {
		KeySuffix:   "REPO_CLONE_URL_SSH",
		Description: "SSH clone URL of the repository (e.g. git@github.com:user/project.git)",
	},
	RepoIssuesURL: {
		KeySuffix:   "REPO_ISSUES_URL",
		Description: "Web URL of the issue tracker of the repository",
	},
	RepoRawVersionedPrefixURL: {
		KeySuffix:   "REPO_RAW_VERSIONED_PREFIX_URL",
		Description: "URL prefix for raw file access; append '/<version>/<path>' to get a file",
	},
	RepoVersionedFilePrefixURL: {
		KeySuffix:   "REPO_VERSIONED_FILE_PREFIX_URL",
		Description: "URL prefix for viewing a file at a version; append '/<version>/<path>'",
	},
	RepoVersionedDirPrefixURL: {
		KeySuffix:   "REPO_VERSIONED_DIR_PREFIX_URL",
		Description: "URL prefix for browsing a directory at a version; append '/<version>/<path>'",
	},
	RepoCommitPrefixURL: {
		KeySuffix:   "REPO_COMMIT_PREFIX_URL",
		Description: "URL prefix for viewing a commit; append '/<commit-id>'",
	},
}

// Of returns the variable metadata of a key.
// It panics for keys outside the declared range.
func Of(k Key) *Variable {
	return &variables[k]
}

// DefaultRequired returns a fresh set of the keys that are required unless
// explicitly overridden.
func DefaultRequired() Set {
	s := make(Set)
	for _, k := range Keys() {
		if variables[k].DefaultRequired {
			s.Add(k)
		}
	}
	return s
}
