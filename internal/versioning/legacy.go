package versioning

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// patchCarry is written into the patch slot and then cut out of the rendered
// string, which is how the legacy scheme loses the patch number.
const patchCarry = 99999

var legacyPattern = regexp.MustCompile(`^(\d+)\.x-(\d+)\.(\d+)(?:-(alpha|beta|rc)(\d+))?(?:\+(.+))?$`)

// LegacyVersion is "{core}.x-{major}.{minor}[-{preType}{preNumber}][+{build}]".
type LegacyVersion struct {
	CoreMajor      int
	ExtensionMajor int
	ExtensionMinor int
	PreType        string
	PreNumber      int
	Build          string
}

func (l LegacyVersion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.x-%d.%d", l.CoreMajor, l.ExtensionMajor, l.ExtensionMinor)
	if l.PreType != "" {
		fmt.Fprintf(&b, "-%s%d", l.PreType, l.PreNumber)
	}
	if l.Build != "" {
		b.WriteString("+" + l.Build)
	}
	return b.String()
}

// ParseLegacy parses a legacy extension version.
func ParseLegacy(text string) (LegacyVersion, error) {
	m := legacyPattern.FindStringSubmatch(text)
	if m == nil {
		return LegacyVersion{}, ErrParse.WithContext("input", text)
	}
	var l LegacyVersion
	var err error
	if l.CoreMajor, err = strconv.Atoi(m[1]); err != nil {
		return LegacyVersion{}, ErrParse.Wrap(err).WithContext("input", text)
	}
	if l.ExtensionMajor, err = strconv.Atoi(m[2]); err != nil {
		return LegacyVersion{}, ErrParse.Wrap(err).WithContext("input", text)
	}
	if l.ExtensionMinor, err = strconv.Atoi(m[3]); err != nil {
		return LegacyVersion{}, ErrParse.Wrap(err).WithContext("input", text)
	}
	if m[4] != "" {
		l.PreType = m[4]
		if l.PreNumber, err = strconv.Atoi(m[5]); err != nil {
			return LegacyVersion{}, ErrParse.Wrap(err).WithContext("input", text)
		}
	}
	l.Build = m[6]
	return l, nil
}

// IsValidLegacy reports whether text is a legacy version.
func IsValidLegacy(text string) bool {
	return legacyPattern.MatchString(text)
}

// ToLegacy renders v in the legacy scheme under coreMajor (for example "8.x").
// The patch number is discarded. Pre-release and build metadata are appended
// as they are.
func ToLegacy(coreMajor string, v Version) string {
	carried := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), patchCarry)
	if pre := v.PreRelease(); pre != "" {
		carried += "-" + pre
	}
	if build := v.Build(); build != "" {
		carried += "+" + build
	}
	return strings.ReplaceAll(coreMajor+"-"+carried, "."+strconv.Itoa(patchCarry), "")
}

// ToSemantic converts a legacy version to "major.minor.0[-pre][+build]".
func ToSemantic(legacy string) (Version, error) {
	l, err := ParseLegacy(legacy)
	if err != nil {
		return Version{}, err
	}
	text := fmt.Sprintf("%d.%d.0", l.ExtensionMajor, l.ExtensionMinor)
	if l.PreType != "" {
		text += fmt.Sprintf("-%s%d", l.PreType, l.PreNumber)
	}
	if l.Build != "" {
		text += "+" + l.Build
	}
	return ParseSemantic(text)
}
