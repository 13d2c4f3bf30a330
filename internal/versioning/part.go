package versioning

import "strings"

// Part is the component of a version a bump targets.
type Part string

const (
	PartMajor      Part = "major"
	PartMinor      Part = "minor"
	PartPatch      Part = "patch"
	PartPreRelease Part = "pre-release"
	PartMetaData   Part = "meta-data"
)

// DefaultPart is the bump applied when none is configured.
const DefaultPart = PartMinor

// Parts lists every bump target in order of significance.
func Parts() []Part {
	return []Part{PartMajor, PartMinor, PartPatch, PartPreRelease, PartMetaData}
}

// ParsePart resolves a part name. Matching is case-insensitive.
func ParsePart(s string) (Part, bool) {
	p := Part(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Parts() {
		if p == known {
			return p, true
		}
	}
	return "", false
}
