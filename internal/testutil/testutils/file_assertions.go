package helpers

import (
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	fs      billy.Filesystem
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir inside fs.
func NewFileAssertions(t *testing.T, fs billy.Filesystem, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		fs:      fs,
		baseDir: baseDir,
	}
}

func (fa *FileAssertions) path(rel string) string {
	return fa.fs.Join(fa.baseDir, rel)
}

// AssertFileExists validates that a regular file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	info, err := fa.fs.Lstat(fa.path(relativePath))
	switch {
	case err != nil:
		fa.t.Errorf("Expected file to exist: %s", fa.path(relativePath))
	case info.IsDir():
		fa.t.Errorf("Expected %s to be a file, but it's a directory", fa.path(relativePath))
	}
	return fa
}

// AssertNotExists validates that nothing exists at the path.
func (fa *FileAssertions) AssertNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	if _, err := fa.fs.Lstat(fa.path(relativePath)); err == nil {
		fa.t.Errorf("Expected %s to be absent", fa.path(relativePath))
	}
	return fa
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	info, err := fa.fs.Stat(fa.path(relativePath))
	switch {
	case err != nil:
		fa.t.Errorf("Expected directory to exist: %s", fa.path(relativePath))
	case !info.IsDir():
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fa.path(relativePath))
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content, err := util.ReadFile(fa.fs, fa.path(relativePath))
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fa.path(relativePath), err)
		return fa
	}

	if !strings.Contains(string(content), expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, string(content))
	}
	return fa
}

// AssertFileCount validates the number of regular files below a directory, recursively.
func (fa *FileAssertions) AssertFileCount(relativePath string, want int) *FileAssertions {
	fa.t.Helper()
	count := 0
	err := util.Walk(fa.fs, fa.path(relativePath), func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		fa.t.Errorf("Failed to walk %s: %v", fa.path(relativePath), err)
		return fa
	}
	if count != want {
		fa.t.Errorf("Expected %d files below %s, found %d", want, relativePath, count)
	}
	return fa
}
