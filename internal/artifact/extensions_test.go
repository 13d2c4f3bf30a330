package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
)

func TestExtensionDirsForExtensionPackage(t *testing.T) {
	fs := fsops.NewInMemory()
	writeTree(t, fs, map[string]string{
		"build/foo.info.yml":                         "name: Foo\n",
		"build/modules/a/a.info.yml":                 "name: A\n",
		"build/modules/a/tests/modules/t/t.info.yml": "name: T\n",
		"build/vendor/x/x.info.yml":                  "name: X\n",
		"build/node_modules/y/y.info.yml":            "name: Y\n",
		"build/src/Foo.php":                          "<?php\n",
	})

	dirs, err := ExtensionDirs(fs, "build", composer.KindModule, "web")
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "build/modules/a", "build/modules/a/tests/modules/t"}, dirs)
}

func TestExtensionDirsForApplicationRoot(t *testing.T) {
	fs := fsops.NewInMemory()
	writeTree(t, fs, map[string]string{
		"b/web/modules/custom/a/a.info.yml":                  "name: A\n",
		"b/web/profiles/custom/p/p.info.yml":                 "name: P\n",
		"b/web/sites/example.com/themes/custom/t/t.info.yml": "name: T\n",
		"b/web/modules/contrib/c/c.info.yml":                 "name: C\n",
		"b/drush/Commands/custom/cmd/cmd.info.yml":           "name: Cmd\n",
	})

	dirs, err := ExtensionDirs(fs, "b", composer.KindApplicationRoot, "web")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"b/drush/Commands/custom/cmd",
		"b/web/modules/custom/a",
		"b/web/profiles/custom/p",
		"b/web/sites/example.com/themes/custom/t",
	}, dirs)
}

func TestExtensionDirsWithDocrootAtPackageRoot(t *testing.T) {
	fs := fsops.NewInMemory()
	writeTree(t, fs, map[string]string{"b/modules/custom/a/a.info.yml": "name: A\n"})

	dirs, err := ExtensionDirs(fs, "b", composer.KindApplicationRoot, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/modules/custom/a"}, dirs)
}

func TestExtensionDirsMissingBuildDir(t *testing.T) {
	_, err := ExtensionDirs(fsops.NewInMemory(), "missing", composer.KindModule, "web")
	require.ErrorIs(t, err, fsops.ErrRootNotFound)
}
