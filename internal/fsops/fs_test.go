package fsops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, fs *FS, files map[string]string) {
	t.Helper()
	for p, content := range files {
		require.NoError(t, fs.WriteFile(p, []byte(content), 0o644))
	}
}

func TestFind(t *testing.T) {
	fs := NewInMemory()
	seed(t, fs, map[string]string{
		"foo.info.yml":              "name: Foo",
		"src/Foo.php":               "<?php",
		"src/.hidden":               "x",
		".git/HEAD":                 "ref",
		"vendor/pkg/.git/HEAD":      "ref",
		"node_modules/lib/index.js": "x",
	})

	t.Run("files ignoring dot files and vcs", func(t *testing.T) {
		entries, err := fs.Find(".", Query{Type: TypeFile, IgnoreDotFiles: true, IgnoreVCS: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"foo.info.yml", "node_modules/lib/index.js", "src/Foo.php"}, paths(entries))
	})

	t.Run("vcs dirs below depth zero", func(t *testing.T) {
		entries, err := fs.Find(".", Query{Type: TypeDir, MinDepth: 1, Match: func(e Entry) bool { return e.Name == ".git" }})
		require.NoError(t, err)
		assert.Equal(t, []string{"vendor/pkg/.git"}, paths(entries))
	})

	t.Run("prune", func(t *testing.T) {
		entries, err := fs.Find(".", Query{
			Type:           TypeFile,
			IgnoreDotFiles: true,
			Prune:          func(e Entry) bool { return e.Name == "node_modules" || e.Name == "vendor" },
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"foo.info.yml", "src/Foo.php"}, paths(entries))
	})

	t.Run("relative to sub root", func(t *testing.T) {
		entries, err := fs.Find("src", Query{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, ".hidden", entries[0].Path)
		assert.Equal(t, 0, entries[0].Depth)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := fs.Find("nope", Query{})
		require.ErrorIs(t, err, ErrRootNotFound)
	})
}

func TestCopy(t *testing.T) {
	fs := NewInMemory()
	seed(t, fs, map[string]string{
		"composer.json":                   `{"name":"drupal/foo"}`,
		"src/Foo.php":                     "<?php",
		"config/install/foo.settings.yml": "a: 1",
	})

	require.NoError(t, fs.Copy(".", "artifact/0.1.0/drupal-module", []string{"composer.json", "src/Foo.php", "config"}))

	data, err := fs.ReadFile("artifact/0.1.0/drupal-module/src/Foo.php")
	require.NoError(t, err)
	assert.Equal(t, "<?php", string(data))

	ok, err := fs.Exists("artifact/0.1.0/drupal-module/config/install/foo.settings.yml")
	require.NoError(t, err)
	assert.True(t, ok)

	err = fs.Copy(".", "out", []string{"missing.txt"})
	require.ErrorIs(t, err, ErrCopyFailed)
}

func TestEnsureDirectory(t *testing.T) {
	fs := NewInMemory()
	seed(t, fs, map[string]string{"artifact/1.0.0/stale.txt": "old"})

	require.NoError(t, fs.EnsureDirectory("artifact/1.0.0"))

	assert.True(t, fs.IsDir("artifact/1.0.0"))
	ok, err := fs.Exists("artifact/1.0.0/stale.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	fs := NewInMemory()
	seed(t, fs, map[string]string{
		"build/patches/a.patch":    "x",
		"build/vendor/x/.git/HEAD": "x",
		"build/keep.txt":           "x",
	})

	require.NoError(t, fs.Remove([]string{"build/patches", "build/vendor/x/.git", "build/never-existed"}))

	for p, want := range map[string]bool{
		"build/patches":       false,
		"build/vendor/x/.git": false,
		"build/vendor/x":      true,
		"build/keep.txt":      true,
	} {
		ok, err := fs.Exists(p)
		require.NoError(t, err)
		assert.Equal(t, want, ok, p)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, ".", Clean(""))
	assert.Equal(t, "a/b", Clean("/a//b/"))
	assert.Equal(t, "a/b", Clean(`a\b`))
	assert.Equal(t, "artifact/1.0.0/x", Join("artifact", "1.0.0", "x"))
}

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
