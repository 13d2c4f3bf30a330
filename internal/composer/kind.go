package composer

import (
	"maps"
	"slices"
	"strings"
)

// Kind classifies a source package. It selects the file collection rules.
type Kind string

const (
	KindApplicationRoot  Kind = "application-root"
	KindModule           Kind = "module"
	KindTheme            Kind = "theme"
	KindProfile          Kind = "profile"
	KindCommandExtension Kind = "command-extension"
)

var kindsByType = map[string]Kind{
	"project":        KindApplicationRoot,
	"drupal-project": KindApplicationRoot,
	"drupal-module":  KindModule,
	"drupal-theme":   KindTheme,
	"drupal-profile": KindProfile,
	"drupal-drush":   KindCommandExtension,
}

// KindOf maps a composer package type to a Kind.
func KindOf(packageType string) (Kind, error) {
	if k, ok := kindsByType[packageType]; ok {
		return k, nil
	}
	return "", ErrUnsupportedType.
		WithContext("type", packageType).
		WithContext("supported", strings.Join(SupportedTypes(), ", "))
}

// IsExtension reports whether packages of this kind are installed into an
// application rather than being one.
func (k Kind) IsExtension() bool {
	return k != KindApplicationRoot && k != ""
}

// SupportedTypes lists the composer types that can be built, sorted.
func SupportedTypes() []string {
	return slices.Sorted(maps.Keys(kindsByType))
}
