package infofile

import (
	"errors"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	ferrors "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
)

// InfoSuffix is the file name suffix of extension info files.
const InfoSuffix = ".info.yml"

// BumpDir sets version in every *.info.yml directly inside dir and returns the
// rewritten paths. A missing dir is not an error.
func BumpDir(fsys billy.Filesystem, dir, version string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, ErrRewrite.WithContext("dir", dir).Wrap(err)
	}

	var updated []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), InfoSuffix) {
			continue
		}
		p := path.Join(dir, e.Name())
		err := rewrite(fsys, p, e.Mode().Perm(), func(text string) (string, bool, error) {
			out, err := SetVersion(text, version)
			return out, err == nil, err
		})
		if err != nil {
			return updated, err
		}
		updated = append(updated, p)
	}
	slices.Sort(updated)
	return updated, nil
}

// BumpManifest sets version in the manifest at file when it declares one.
// It reports whether the file was rewritten.
func BumpManifest(fsys billy.Filesystem, file, version string) (bool, error) {
	info, err := fsys.Stat(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, ErrRewrite.WithContext("path", file).Wrap(err)
	}
	changed := false
	err = rewrite(fsys, file, info.Mode().Perm(), func(text string) (string, bool, error) {
		out, ok, err := SetManifestVersion(text, version)
		changed = ok
		return out, ok, err
	})
	return changed, err
}

func rewrite(fsys billy.Filesystem, p string, perm os.FileMode, edit func(string) (string, bool, error)) error {
	data, err := util.ReadFile(fsys, p)
	if err != nil {
		return ErrRewrite.WithContext("path", p).Wrap(err)
	}
	out, write, err := edit(string(data))
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return ce.WithContext("path", p)
		}
		return ErrRewrite.WithContext("path", p).Wrap(err)
	}
	if !write {
		return nil
	}
	if err := util.WriteFile(fsys, p, []byte(out), perm); err != nil {
		return ErrRewrite.WithContext("path", p).Wrap(err)
	}
	return nil
}
