package versioning

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

var (
	semanticPattern   = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)
	preReleasePattern = regexp.MustCompile(`(?i)^(alpha|beta|rc)(\.?)(\d+)$`)
)

// Version is an immutable semantic version.
type Version struct {
	sv *semver.Version
}

var zero = semver.New(0, 0, 0, "", "")

// Zero returns 0.0.0, the base for packages that were never released.
func Zero() Version { return Version{sv: zero} }

func (v Version) value() *semver.Version {
	if v.sv == nil {
		return zero
	}
	return v.sv
}

func (v Version) Major() uint64      { return v.value().Major() }
func (v Version) Minor() uint64      { return v.value().Minor() }
func (v Version) Patch() uint64      { return v.value().Patch() }
func (v Version) PreRelease() string { return v.value().Prerelease() }
func (v Version) Build() string      { return v.value().Metadata() }

// String renders the version without a leading "v".
func (v Version) String() string { return v.value().String() }

// ParseSemantic parses "[v]major.minor.patch[-pre][+build]".
func ParseSemantic(text string) (Version, error) {
	if !semanticPattern.MatchString(text) {
		return Version{}, ErrParse.WithContext("input", text)
	}
	sv, err := semver.NewVersion(text)
	if err != nil {
		return Version{}, ErrParse.Wrap(err).WithContext("input", text)
	}
	return Version{sv: sv}, nil
}

// MustParseSemantic is ParseSemantic for constants and tests.
func MustParseSemantic(text string) Version {
	v, err := ParseSemantic(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or 1 by semantic precedence. Build metadata is ignored.
func Compare(a, b Version) int {
	return a.value().Compare(b.value())
}

// TokenSupplier produces build metadata for meta-data bumps.
type TokenSupplier func() string

// DefaultTokenSupplier returns the first eight hex digits of a random UUID.
func DefaultTokenSupplier() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

type bumpOptions struct {
	metadata string
	supplier TokenSupplier
}

// BumpOption configures Bump.
type BumpOption func(*bumpOptions)

// WithMetadata sets the build metadata used by a meta-data bump.
func WithMetadata(token string) BumpOption {
	return func(o *bumpOptions) { o.metadata = token }
}

// WithTokenSupplier replaces the generator used when no metadata is given.
func WithTokenSupplier(fn TokenSupplier) BumpOption {
	return func(o *bumpOptions) { o.supplier = fn }
}

// Bump returns the next version for part. Bumping major, minor or patch zeroes
// the lower numbers and clears pre-release and build metadata.
//
// A pre-release bump on a release version moves to the next patch with
// "alpha.1" so the result still sorts above the input.
func Bump(v Version, part Part, opts ...BumpOption) (Version, error) {
	o := bumpOptions{supplier: DefaultTokenSupplier}
	for _, opt := range opts {
		opt(&o)
	}
	cur := v.value()

	switch part {
	case PartMajor:
		return Version{sv: semver.New(cur.Major()+1, 0, 0, "", "")}, nil
	case PartMinor:
		return Version{sv: semver.New(cur.Major(), cur.Minor()+1, 0, "", "")}, nil
	case PartPatch:
		return Version{sv: semver.New(cur.Major(), cur.Minor(), cur.Patch()+1, "", "")}, nil
	case PartPreRelease:
		return bumpPreRelease(cur)
	case PartMetaData:
		token := o.metadata
		if token == "" {
			token = o.supplier()
		}
		next, err := cur.SetMetadata(token)
		if err != nil {
			return Version{}, ErrInvalidBumpTarget.Wrap(err).WithContext("metadata", token)
		}
		return Version{sv: &next}, nil
	default:
		return Version{}, ErrInvalidBumpTarget.WithContext("part", string(part))
	}
}

func bumpPreRelease(cur *semver.Version) (Version, error) {
	pre := cur.Prerelease()
	if pre == "" {
		return Version{sv: semver.New(cur.Major(), cur.Minor(), cur.Patch()+1, "alpha.1", "")}, nil
	}
	m := preReleasePattern.FindStringSubmatch(pre)
	if m == nil {
		return Version{}, ErrInvalidBumpTarget.WithContext("pre_release", pre)
	}
	n, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Version{}, ErrInvalidBumpTarget.Wrap(err).WithContext("pre_release", pre)
	}
	next := m[1] + m[2] + strconv.FormatUint(n+1, 10)
	return Version{sv: semver.New(cur.Major(), cur.Minor(), cur.Patch(), next, "")}, nil
}

// NextVersion computes the version following latest under policy. An empty
// latest means nothing was released yet and counts as 0.0.0. A policy that is
// not a part name is taken as the literal next version.
func NextVersion(latest, policy string, opts ...BumpOption) (Version, error) {
	base := Zero()
	if latest != "" {
		v, err := ParseSemantic(latest)
		if err != nil {
			return Version{}, err
		}
		base = v
	}
	if policy == "" {
		return Bump(base, DefaultPart, opts...)
	}
	if part, ok := ParsePart(policy); ok {
		return Bump(base, part, opts...)
	}
	explicit, err := ParseSemantic(policy)
	if err != nil {
		return Version{}, ErrInvalidBumpTarget.Wrap(err).WithContext("part", policy)
	}
	return explicit, nil
}
