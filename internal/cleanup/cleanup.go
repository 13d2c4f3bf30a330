// Package cleanup lists the transient paths left in a finished build directory.
package cleanup

import (
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
)

// ScratchDirs are removed from every build directory when present.
var ScratchDirs = []string{"patches"}

// Tree is the file-tree query capability Collect needs.
type Tree interface {
	Find(root string, q fsops.Query) ([]fsops.Entry, error)
}

// Collect returns the paths to delete from buildDir: the scratch directories
// and every ".git" entry below the top level. A ".git" directly inside
// buildDir is kept. Returned paths include buildDir.
func Collect(tree Tree, buildDir string) ([]string, error) {
	buildDir = fsops.Clean(buildDir)

	out := make([]string, 0, len(ScratchDirs))
	for _, dir := range ScratchDirs {
		out = append(out, fsops.Join(buildDir, dir))
	}

	entries, err := tree.Find(buildDir, fsops.Query{
		MinDepth: 1,
		Match:    func(e fsops.Entry) bool { return e.Name == ".git" },
		Prune:    func(e fsops.Entry) bool { return e.Name == ".git" && e.Depth > 0 },
	})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out = append(out, fsops.Join(buildDir, e.Path))
	}
	return out, nil
}
