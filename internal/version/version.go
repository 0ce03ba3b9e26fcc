// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

import (
	"fmt"

	"github.com/maloquacious/semver"
	modsemver "golang.org/x/mod/semver"
)

var (
	// current is the version of remora.
	current = semver.Version{
		Major: 0,
		Minor: 2,
		Patch: 0,
		Build: semver.Commit(),
	}

	// tableFormat is the version of the table file format written by lrtab.
	// Files whose major version differs from this cannot be read.
	tableFormat = semver.Version{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}
)

// Current returns the version of remora.
func Current() semver.Version {
	return current
}

// TableFormat returns the version of the table file format.
func TableFormat() semver.Version {
	return tableFormat
}

// CompatibleTableFormat returns whether a table file that declares the given
// format version can be read. The version must be exactly MAJOR.MINOR.PATCH,
// with no prerelease or build suffix, and have the same major version as
// TableFormat.
func CompatibleTableFormat(declared string) error {
	v := "v" + declared
	if !modsemver.IsValid(v) || modsemver.Canonical(v) != v || modsemver.Prerelease(v) != "" {
		return fmt.Errorf("format version %q is not in MAJOR.MINOR.PATCH form", declared)
	}

	if modsemver.Major(v) != fmt.Sprintf("v%d", tableFormat.Major) {
		return fmt.Errorf("format version %s is not supported; this program reads %d.x.x", declared, tableFormat.Major)
	}

	return nil
}
