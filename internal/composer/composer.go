// Package composer reads the package manifest (composer.json) of a source package.
package composer

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
)

const (
	// DefaultFileName is the manifest name used when COMPOSER is unset.
	DefaultFileName = "composer.json"
	// DefaultVendor is assumed for package names without a vendor prefix.
	DefaultVendor = "drupal"

	defaultDrupalRoot = "web"
)

// FileName returns the manifest file name, honouring the COMPOSER variable.
func FileName() string {
	if name := os.Getenv("COMPOSER"); name != "" {
		return name
	}
	return DefaultFileName
}

// Config is the "config" section.
type Config struct {
	BinDir    string `json:"bin-dir"`
	VendorDir string `json:"vendor-dir"`
}

// Extra is the "extra" section.
type Extra struct {
	InstallerPaths map[string][]string `json:"installer-paths"`
}

// Info is a parsed manifest.
type Info struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
	Config  Config `json:"config"`
	Extra   Extra  `json:"extra"`

	// Dir and File locate the manifest the info was read from.
	Dir  string `json:"-"`
	File string `json:"-"`
}

// Reader is the capability Load needs.
type Reader interface {
	ReadFile(p string) ([]byte, error)
}

// Load reads and parses dir/fileName. An empty fileName means FileName().
func Load(r Reader, dir, fileName string) (*Info, error) {
	if fileName == "" {
		fileName = FileName()
	}
	p := fsops.Join(dir, fileName)
	data, err := r.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrManifestNotFound.WithContext("path", p)
	}
	if err != nil {
		return nil, ErrManifestUnreadable.Wrap(err).WithContext("path", p)
	}
	return Parse(data, dir, fileName)
}

// Parse decodes manifest content and applies composer's config defaults.
func Parse(data []byte, dir, fileName string) (*Info, error) {
	info := &Info{Dir: fsops.Clean(dir), File: fileName}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, ErrManifestUnreadable.Wrap(err).WithContext("path", fileName)
	}
	if info.Config.VendorDir == "" {
		info.Config.VendorDir = "vendor"
	}
	if info.Config.BinDir == "" {
		info.Config.BinDir = path.Join(info.Config.VendorDir, "bin")
	}
	return info, nil
}

// Kind maps the manifest type to a package kind.
func (i *Info) Kind() (Kind, error) {
	return KindOf(i.Type)
}

// LockFileName is the lock file belonging to the manifest.
func (i *Info) LockFileName() string {
	return strings.TrimSuffix(i.File, ".json") + ".lock"
}

// SplitPackageName splits "vendor/name".
func SplitPackageName(full string) (vendor, name string) {
	if v, n, ok := strings.Cut(full, "/"); ok {
		return v, n
	}
	return DefaultVendor, full
}

// ExtensionInstallDir returns the installer path pattern for extensions of
// type ("module", "theme", ...), for example "web/modules/contrib/{$name}".
func (i *Info) ExtensionInstallDir(extensionType string) (string, bool) {
	want := "type:drupal-" + extensionType
	keys := make([]string, 0, len(i.Extra.InstallerPaths))
	for k := range i.Extra.InstallerPaths {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if slices.Contains(i.Extra.InstallerPaths[k], want) {
			return k, true
		}
	}
	return "", false
}

// DrupalRootDir returns the document root, derived from where drupal/core is
// installed. It defaults to "web".
func (i *Info) DrupalRootDir() string {
	coreDir, ok := i.ExtensionInstallDir("core")
	if !ok {
		return defaultDrupalRoot
	}
	root := strings.TrimSuffix(strings.TrimSuffix(coreDir, "/"), "/core")
	if root == "" || root == coreDir {
		return defaultDrupalRoot
	}
	return root
}
