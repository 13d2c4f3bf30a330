package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const defaultDirMode = 0o755

// FS wraps a go-billy filesystem.
type FS struct {
	fs billy.Filesystem
}

// New wraps fsys.
func New(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewOS returns a filesystem rooted at dir on disk.
func NewOS(dir string) *FS {
	return New(osfs.New(dir))
}

// NewInMemory returns an empty in-memory filesystem.
func NewInMemory() *FS {
	return New(memfs.New())
}

// Raw returns the underlying go-billy filesystem.
func (f *FS) Raw() billy.Filesystem {
	return f.fs
}

// Exists reports whether p exists. Symlinks are not followed.
func (f *FS) Exists(p string) (bool, error) {
	_, err := f.fs.Lstat(Clean(p))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", p, err)
	}
}

// IsDir reports whether p is an existing directory.
func (f *FS) IsDir(p string) bool {
	info, err := f.fs.Stat(Clean(p))
	return err == nil && info.IsDir()
}

func (f *FS) ReadFile(p string) ([]byte, error) {
	return util.ReadFile(f.fs, Clean(p))
}

// WriteFile writes data to p, creating parent directories.
func (f *FS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = Clean(p)
	if dir := path.Dir(p); dir != "." {
		if err := f.fs.MkdirAll(dir, defaultDirMode); err != nil {
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	return util.WriteFile(f.fs, p, data, perm)
}

// EnsureDirectory recreates dir as an empty directory.
func (f *FS) EnsureDirectory(dir string) error {
	dir = Clean(dir)
	if err := util.RemoveAll(f.fs, dir); err != nil {
		return ErrPrepareFailed.Wrap(err).WithContext("path", dir)
	}
	if err := f.fs.MkdirAll(dir, defaultDirMode); err != nil {
		return ErrPrepareFailed.Wrap(err).WithContext("path", dir)
	}
	return nil
}

// Remove deletes every path recursively. Missing paths are ignored.
func (f *FS) Remove(paths []string) error {
	for _, p := range paths {
		if err := util.RemoveAll(f.fs, Clean(p)); err != nil {
			return ErrRemoveFailed.Wrap(err).WithContext("path", p)
		}
	}
	return nil
}

// Copy copies each path, relative to srcRoot, to the same relative location
// under dstRoot. Directories are copied recursively.
func (f *FS) Copy(srcRoot, dstRoot string, paths []string) error {
	for _, rel := range paths {
		src := Join(srcRoot, rel)
		dst := Join(dstRoot, rel)
		if err := f.copyPath(src, dst); err != nil {
			return ErrCopyFailed.Wrap(err).WithContext("path", rel)
		}
	}
	return nil
}

func (f *FS) copyPath(src, dst string) error {
	info, err := f.fs.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return f.copySymlink(src, dst)
	case info.IsDir():
		if err := f.fs.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
			return err
		}
		children, err := f.fs.ReadDir(src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := f.copyPath(Join(src, child.Name()), Join(dst, child.Name())); err != nil {
				return err
			}
		}
		return nil
	default:
		return f.copyFile(src, dst, info.Mode().Perm())
	}
}

func (f *FS) copyFile(src, dst string, perm os.FileMode) (err error) {
	if dir := path.Dir(dst); dir != "." {
		if err := f.fs.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}
	in, err := f.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := f.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func (f *FS) copySymlink(src, dst string) error {
	target, err := f.fs.Readlink(src)
	if err != nil {
		return err
	}
	if dir := path.Dir(dst); dir != "." {
		if err := f.fs.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}
	return f.fs.Symlink(target, dst)
}

// Clean normalizes p to a relative slash-separated path.
func Clean(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// Join joins path elements and cleans the result.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}
