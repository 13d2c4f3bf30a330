package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLegacy(t *testing.T) {
	tests := []struct {
		core string
		in   string
		want string
	}{
		{"8.x", "1.2.3", "8.x-1.2"},
		{"8.x", "1.2.0", "8.x-1.2"},
		{"8.x", "0.1.0", "8.x-0.1"},
		{"7.x", "2.0.0-beta3", "7.x-2.0-beta3"},
		{"8.x", "1.2.3-rc.1+b7", "8.x-1.2-rc.1+b7"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToLegacy(tt.core, MustParseSemantic(tt.in)))
		})
	}
}

func TestToSemantic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8.x-1.2", "1.2.0"},
		{"7.x-3.10-alpha4", "3.10.0-alpha4"},
		{"8.x-1.0-rc2+dev", "1.0.0-rc2+dev"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ToSemantic(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	for _, bad := range []string{"1.2.3", "8.x-1", "8.x-1.2-gamma1", "x.x-1.2"} {
		_, err := ToSemantic(bad)
		assert.ErrorIs(t, err, ErrParse, bad)
	}
}

func TestLegacyRoundTripDropsPatch(t *testing.T) {
	legacy := ToLegacy("8.x", MustParseSemantic("1.2.3"))
	require.Equal(t, "8.x-1.2", legacy)

	back, err := ToSemantic(legacy)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), back.Major())
	assert.Equal(t, uint64(2), back.Minor())
	assert.Equal(t, uint64(0), back.Patch())
}

func TestParseLegacy(t *testing.T) {
	l, err := ParseLegacy("8.x-2.11-beta3+git")
	require.NoError(t, err)
	assert.Equal(t, LegacyVersion{CoreMajor: 8, ExtensionMajor: 2, ExtensionMinor: 11, PreType: "beta", PreNumber: 3, Build: "git"}, l)
	assert.Equal(t, "8.x-2.11-beta3+git", l.String())
	assert.True(t, IsValidLegacy("8.x-1.0"))
	assert.False(t, IsValidLegacy("1.0.0"))
}
