package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
)

func TestCollect(t *testing.T) {
	fs := fsops.NewInMemory()
	for _, f := range []string{
		"build/.git/HEAD",
		"build/foo.module",
		"build/patches/core.patch",
		"build/modules/custom/a/.git/HEAD",
		"build/libraries/b/.git",
		"build/libraries/b/b.js",
		"build/deep/er/still/.git/config",
	} {
		require.NoError(t, fs.WriteFile(f, []byte("x"), 0o644))
	}

	paths, err := Collect(fs, "build")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"build/patches",
		"build/deep/er/still/.git",
		"build/libraries/b/.git",
		"build/modules/custom/a/.git",
	}, paths)
	assert.NotContains(t, paths, "build/.git")
}

func TestCollect_AlwaysListsScratchDirs(t *testing.T) {
	fs := fsops.NewInMemory()
	require.NoError(t, fs.WriteFile("build/foo.module", []byte("x"), 0o644))

	paths, err := Collect(fs, "build")
	require.NoError(t, err)
	assert.Equal(t, []string{"build/patches"}, paths)
}

func TestCollect_MissingBuildDir(t *testing.T) {
	_, err := Collect(fsops.NewInMemory(), "build")
	require.ErrorIs(t, err, fsops.ErrRootNotFound)
}
