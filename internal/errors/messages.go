package errors

import "fmt"

// Error constructors for the failures iconlog commands report most often.

// ManifestNotFound reports a manifest path that does not exist.
func ManifestNotFound(path string) *CLIError {
	return NewManifestError(
		fmt.Sprintf("manifest not found: %s", path),
		"Check the path, or set manifest_path in .iconlog/config.yml",
		"Generate the manifest with your icon build before running iconlog",
	)
}

// InvalidManifest reports a manifest that failed parsing or validation.
func InvalidManifest(path string, cause error) *CLIError {
	e := NewManifestError(
		fmt.Sprintf("invalid manifest %s: %v", path, cause),
		"Run 'iconlog validate "+path+"' for field-level details",
		"Manifests need version, generatedAt, totalCount and an icons array",
	)
	e.Cause = cause
	return e
}

// DuplicateNames reports a manifest whose normalized names repeat under strict checking.
func DuplicateNames(path string, names []string) *CLIError {
	return NewManifestError(
		fmt.Sprintf("manifest %s has duplicate normalized names: %v", path, names),
		"Rename the icons so each normalized name is unique",
		"Or disable strict_unique to accept the last occurrence of each name",
	)
}

// InvalidVersion reports a version string that is not MAJOR.MINOR.PATCH.
func InvalidVersion(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid version: %q", value),
		"iconlog release <current> [previous] --version 1.2.3",
		"Versions must be three dot-separated numbers, optionally prefixed with v",
	)
}

// InvalidDate reports a --date value that is neither YYYY-MM-DD nor another known layout.
func InvalidDate(value string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid date: %q", value),
		"Use YYYY-MM-DD, e.g. --date 2024-01-15",
	)
}

// ChangelogNotFound reports a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("changelog not found: %s", path),
		"Run 'iconlog release' to create it",
		"Or set changelog_path in .iconlog/config.yml",
	)
}

// NoPreviousVersion reports that no version can be derived for suggest/release.
func NoPreviousVersion() *CLIError {
	return NewArgumentError(
		"cannot determine the current version",
		"Pass a previous manifest, or --current-version X.Y.Z",
		"Use --version to set the release version directly",
	)
}

// InvalidFormat reports an unsupported --format value.
func InvalidFormat(value string, allowed []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unsupported format %q", value),
		fmt.Sprintf("Valid formats: %v", allowed),
	)
}

// ConfigLoadFailed wraps a configuration loading error.
func ConfigLoadFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration, "failed to load configuration",
		"Check .iconlog/config.yml and ~/.config/iconlog/config.yml for syntax errors",
		"Run 'iconlog config show' to see effective values",
	)
}

// GitRevisionFailed wraps a failure to read a file at a git revision.
func GitRevisionFailed(rev, path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime, fmt.Sprintf("reading %s at %s", path, rev),
		"Check that the revision exists: git rev-parse "+rev,
		"Check that the manifest was committed at that revision",
	)
}
