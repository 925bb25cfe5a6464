// Package gridkit is a headless data grid engine for Bubble Tea programs.
//
// The grid package holds the engine and its Model, table the default row and
// column materialization, and export the CSV and XLSX encoders.
package gridkit

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version returns the module version without a leading v.
func Version() string { return strings.TrimSpace(embeddedVersion) }

// VersionTag returns Version as a git tag.
func VersionTag() string { return "v" + Version() }

// IsSemver reports whether v is a SemVer 2.0.0 version without a leading v.
func IsSemver(v string) bool { return semverRE.MatchString(strings.TrimSpace(v)) }
