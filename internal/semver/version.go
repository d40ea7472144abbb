// Package semver parses, orders and bumps semantic versions and reads and
// writes the per-project .version marker.
package semver

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease+build).
type SemVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

var (
	// versionRegex follows the SemVer 2.0.0 grammar. It captures:
	//   1. Major version
	//   2. Minor version
	//   3. Patch version
	//   4. (optional) Pre-release identifiers
	//   5. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
			`(?:-((?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*)(?:\.(?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*))*))?` +
			`(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`,
	)

	// ErrInvalidVersion is returned when a string is not a semantic version.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrOverflow is returned when a component cannot be incremented. It
	// wraps ErrInvalidVersion because the result would not be representable.
	ErrOverflow = fmt.Errorf("%w: version component overflow", ErrInvalidVersion)
)

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// String returns the canonical string form of the version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// ParseVersion parses a semantic version string.
//
// Supported formats:
//   - "1.2.3"
//   - "1.2.3-alpha.1"
//   - "1.2.3+build.123"
//   - "1.2.3-rc.1+build.456"
//
// Surrounding whitespace is ignored. A "v" prefix, leading zeros and
// missing components are rejected. All errors wrap ErrInvalidVersion.
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return SemVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, trimmed)
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid major version: %s", ErrInvalidVersion, err.Error())
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid minor version: %s", ErrInvalidVersion, err.Error())
	}
	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid patch version: %s", ErrInvalidVersion, err.Error())
	}

	return SemVersion{Major: major, Minor: minor, Patch: patch, PreRelease: matches[4], Build: matches[5]}, nil
}

// Compare compares two semantic versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// Pre-release versions have lower precedence than the associated normal version
// (e.g., 1.0.0-alpha < 1.0.0). Build metadata is ignored.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// GreaterThan reports whether v has higher precedence than other.
func (v SemVersion) GreaterThan(other SemVersion) bool {
	return v.Compare(other) > 0
}

// BumpPatch increments the patch component and clears pre-release and
// build metadata (1.2.3-rc.1+b5 -> 1.2.4). A patch of math.MaxInt cannot
// be incremented and yields ErrOverflow.
func BumpPatch(v SemVersion) (SemVersion, error) {
	if v.Patch == math.MaxInt {
		return SemVersion{}, fmt.Errorf("%w: patch of %s", ErrOverflow, v)
	}
	return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// A shorter identifier list has lower precedence.
	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aIsNum := isNumericIdentifier(a)
	bIsNum := isNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		// Without leading zeros a longer digit string is always larger.
		if c := compareInt(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aIsNum:
		return -1 // numeric < alphanumeric
	case bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Numeric identifiers are digits only, without leading zeros unless exactly "0".
// They may exceed int, so they are never converted.
func isNumericIdentifier(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
