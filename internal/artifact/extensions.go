package artifact

import (
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/filerules"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
	"git.home.luguber.info/inful/artifactbuilder/internal/infofile"
)

// Tree is the query capability extension discovery needs.
type Tree interface {
	Find(root string, q fsops.Query) ([]fsops.Entry, error)
}

// skipped dependency caches are never searched for sub-packages.
var skipped = []string{"vendor", "node_modules"}

func pruneDependencies(e fsops.Entry) bool {
	return slices.Contains(skipped, e.Name)
}

// applicationExtensionPatterns are the custom extension locations of an
// application root, relative to the build directory.
func applicationExtensionPatterns(drupalRoot string) []string {
	root := ""
	if r := fsops.Clean(drupalRoot); r != "." {
		root = filerules.QuoteGlob(r) + "/"
	}
	return []string{
		root + "{modules,themes,profiles}/custom/*",
		root + "sites/*/{modules,themes,profiles}/custom/*",
		"drush/Commands/custom/*",
	}
}

// ExtensionDirs returns the directories inside buildDir whose info files
// carry a version. For an application root these are its custom extensions.
// For an extension package they are buildDir itself and every directory below
// it holding an info file. Returned paths include buildDir.
func ExtensionDirs(tree Tree, buildDir string, kind composer.Kind, drupalRoot string) ([]string, error) {
	buildDir = fsops.Clean(buildDir)
	if !kind.IsExtension() {
		return applicationExtensionDirs(tree, buildDir, drupalRoot)
	}

	entries, err := tree.Find(buildDir, fsops.Query{
		IgnoreVCS: true,
		Type:      fsops.TypeFile,
		Match:     func(e fsops.Entry) bool { return strings.HasSuffix(e.Name, infofile.InfoSuffix) },
		Prune:     pruneDependencies,
	})
	if err != nil {
		return nil, err
	}
	dirs := []string{buildDir}
	for _, e := range entries {
		dirs = append(dirs, fsops.Join(buildDir, path.Dir(e.Path)))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

func applicationExtensionDirs(tree Tree, buildDir, drupalRoot string) ([]string, error) {
	patterns := applicationExtensionPatterns(drupalRoot)
	entries, err := tree.Find(buildDir, fsops.Query{
		IgnoreVCS: true,
		Type:      fsops.TypeDir,
		Match: func(e fsops.Entry) bool {
			for _, p := range patterns {
				if ok, _ := doublestar.Match(p, e.Path); ok {
					return true
				}
			}
			return false
		},
		Prune: pruneDependencies,
	})
	if err != nil {
		return nil, err
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		dirs = append(dirs, fsops.Join(buildDir, e.Path))
	}
	return dirs, nil
}
