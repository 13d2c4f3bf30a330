package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemantic(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1.2.3", "1.2.3", false},
		{"v1.2.3", "1.2.3", false},
		{"1.2.3-rc.1", "1.2.3-rc.1", false},
		{"1.2.3+build5", "1.2.3+build5", false},
		{"1.2.3-beta.2+exp.sha.5114f85", "1.2.3-beta.2+exp.sha.5114f85", false},
		{"1.2", "", true},
		{"1.2.x", "", true},
		{"bogus", "", true},
		{"", "", true},
		{"8.x-1.2", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseSemantic(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		from string
		part Part
		want string
	}{
		{"1.2.3", PartMajor, "2.0.0"},
		{"1.2.3", PartMinor, "1.3.0"},
		{"1.2.3", PartPatch, "1.2.4"},
		{"1.2.3-rc.1+build5", PartMajor, "2.0.0"},
		{"1.2.3-rc.1+build5", PartMinor, "1.3.0"},
		{"1.2.3-rc.1", PartPatch, "1.2.4"},
		{"0.0.0", PartMinor, "0.1.0"},
		{"1.2.3", PartPreRelease, "1.2.4-alpha.1"},
		{"1.2.3-alpha.1", PartPreRelease, "1.2.3-alpha.2"},
		{"1.2.3-beta9", PartPreRelease, "1.2.3-beta10"},
		{"1.2.3-RC.3", PartPreRelease, "1.2.3-RC.4"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"/"+string(tt.part), func(t *testing.T) {
			got, err := Bump(MustParseSemantic(tt.from), tt.part)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBump_Monotonic(t *testing.T) {
	versions := []string{"0.0.0", "1.2.3", "1.2.3-alpha.1", "1.2.3-rc.7+b1", "10.0.9"}
	for _, s := range versions {
		v := MustParseSemantic(s)
		for _, part := range []Part{PartMajor, PartMinor, PartPatch, PartPreRelease} {
			next, err := Bump(v, part)
			require.NoError(t, err)
			assert.Equal(t, 1, Compare(next, v), "%s bumped by %s gave %s", s, part, next)
		}
		meta, err := Bump(v, PartMetaData, WithMetadata("abc"))
		require.NoError(t, err)
		assert.Equal(t, 0, Compare(meta, v))
		assert.Equal(t, v.PreRelease(), meta.PreRelease())
	}
}

func TestBump_PreReleaseUnknownShape(t *testing.T) {
	_, err := Bump(MustParseSemantic("1.2.3-snapshot"), PartPreRelease)
	require.ErrorIs(t, err, ErrInvalidBumpTarget)
}

func TestBump_UnknownPart(t *testing.T) {
	_, err := Bump(MustParseSemantic("1.2.3"), Part("build"))
	require.ErrorIs(t, err, ErrInvalidBumpTarget)
}

func TestBump_MetaData(t *testing.T) {
	v := MustParseSemantic("1.2.3-rc.1+old")

	got, err := Bump(v, PartMetaData, WithMetadata("20260101"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-rc.1+20260101", got.String())

	got, err = Bump(v, PartMetaData, WithTokenSupplier(func() string { return "tok" }))
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Build())

	got, err = Bump(v, PartMetaData)
	require.NoError(t, err)
	assert.Len(t, got.Build(), 8)
	assert.Equal(t, "old", v.Build(), "input must not change")
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(MustParseSemantic("1.5.0"), MustParseSemantic("2.0.0-alpha.1")))
	assert.Equal(t, -1, Compare(MustParseSemantic("2.0.0-alpha.1"), MustParseSemantic("2.0.0")))
	assert.Equal(t, -1, Compare(MustParseSemantic("2.0.0-alpha.2"), MustParseSemantic("2.0.0-alpha.10")))
	assert.Equal(t, 0, Compare(MustParseSemantic("v1.0.0"), MustParseSemantic("1.0.0+b1")))
	assert.Equal(t, 1, Compare(MustParseSemantic("1.0.1"), MustParseSemantic("1.0.0")))
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name    string
		latest  string
		policy  string
		want    string
		wantErr error
	}{
		{"no tags default bump", "", "", "0.1.0", nil},
		{"no tags minor", "", "minor", "0.1.0", nil},
		{"from tag major", "v1.4.2", "major", "2.0.0", nil},
		{"part name is case insensitive", "1.4.2", "Patch", "1.4.3", nil},
		{"explicit version", "1.4.2", "3.0.0-rc.1", "3.0.0-rc.1", nil},
		{"bad policy", "1.4.2", "sideways", "", ErrInvalidBumpTarget},
		{"bad latest", "nope", "minor", "", ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextVersion(tt.latest, tt.policy)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParsePart(t *testing.T) {
	for _, p := range Parts() {
		got, ok := ParsePart(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := ParsePart("build")
	assert.False(t, ok)
}
