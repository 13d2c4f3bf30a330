package fsops

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"
)

// EntryType restricts a query to files or directories.
type EntryType int

const (
	TypeAny EntryType = iota
	TypeFile
	TypeDir
)

// Entry is one node returned by a tree query.
type Entry struct {
	// Path is relative to the query root and slash-separated.
	Path  string
	Name  string
	Depth int // 0 for direct children of the root
	IsDir bool
}

// Query selects entries below a root directory.
type Query struct {
	MinDepth       int
	IgnoreDotFiles bool
	IgnoreVCS      bool
	Type           EntryType
	// Match filters entries that passed every other criterion.
	Match func(Entry) bool
	// Prune stops descent into a directory. The directory itself is still
	// matched.
	Prune func(Entry) bool
}

// vcsNames are version-control metadata entries.
var vcsNames = map[string]struct{}{
	".git": {}, ".svn": {}, "_svn": {}, "CVS": {}, "_darcs": {},
	".arch-params": {}, ".monotone": {}, ".bzr": {}, ".hg": {},
}

// IsVCS reports whether name is version-control metadata.
func IsVCS(name string) bool {
	_, ok := vcsNames[name]
	return ok
}

// Find walks root in lexical order and returns the entries matching q.
func (f *FS) Find(root string, q Query) ([]Entry, error) {
	root = Clean(root)
	info, err := f.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ErrRootNotFound.WithContext("path", root)
	}

	var entries []Entry
	walkErr := util.Walk(f.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		rel, relErr := filepath.Rel(filepath.FromSlash(root), p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		e := Entry{Path: rel, Name: path.Base(rel), Depth: strings.Count(rel, "/"), IsDir: info.IsDir()}
		if q.ignored(e) {
			if e.IsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if q.selects(e) {
			entries = append(entries, e)
		}
		if e.IsDir && q.Prune != nil && q.Prune(e) {
			return filepath.SkipDir
		}
		return nil
	})
	if walkErr != nil {
		return nil, ErrWalkFailed.Wrap(walkErr).WithContext("path", root)
	}
	return entries, nil
}

func (q Query) ignored(e Entry) bool {
	if q.IgnoreVCS && IsVCS(e.Name) {
		return true
	}
	return q.IgnoreDotFiles && strings.HasPrefix(e.Name, ".")
}

func (q Query) selects(e Entry) bool {
	if e.Depth < q.MinDepth {
		return false
	}
	switch q.Type {
	case TypeFile:
		if e.IsDir {
			return false
		}
	case TypeDir:
		if !e.IsDir {
			return false
		}
	}
	return q.Match == nil || q.Match(e)
}
