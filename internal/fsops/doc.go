// Package fsops provides the file-tree capabilities used by a build: querying a
// tree, copying selected paths, preparing an empty build directory and removing
// transient paths.
//
// All operations run against a go-billy filesystem rooted at the source
// package, so every path handled here is relative and slash-separated. Tests use
// an in-memory filesystem with the same layout.
package fsops
