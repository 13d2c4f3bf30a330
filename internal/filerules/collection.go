package filerules

import (
	"slices"

	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
)

// DefaultArtifactDir is the output directory name used when none is configured.
const DefaultArtifactDir = "artifact"

// Layout carries the package paths the rules depend on.
type Layout struct {
	// ArtifactDir is the output directory relative to the package root.
	ArtifactDir string
	// DrupalRoot is the document root of an application package.
	DrupalRoot string
	// ManifestFile and LockFile name the package manifest and its lock file.
	ManifestFile string
	LockFile     string
}

func (l Layout) withDefaults() Layout {
	if l.ArtifactDir == "" {
		l.ArtifactDir = DefaultArtifactDir
	}
	if l.DrupalRoot == "" {
		l.DrupalRoot = "web"
	}
	if l.ManifestFile == "" {
		l.ManifestFile = composer.DefaultFileName
	}
	if l.LockFile == "" {
		l.LockFile = "composer.lock"
	}
	l.ArtifactDir = fsops.Clean(l.ArtifactDir)
	l.DrupalRoot = fsops.Clean(l.DrupalRoot)
	return l
}

// Collection is everything that decides the artifact's content.
type Collection struct {
	Kind     composer.Kind
	RuleSets []RuleSet
	// Files are always part of the artifact.
	Files []string
	// OptionalFiles are part of the artifact when they exist.
	OptionalFiles []string
}

// Tree is the file-tree query capability Apply needs.
type Tree interface {
	Find(root string, q fsops.Query) ([]fsops.Entry, error)
	Exists(p string) (bool, error)
}

// Build returns the collection for a package kind.
func Build(kind composer.Kind, layout Layout) (Collection, error) {
	layout = layout.withDefaults()
	var sets []RuleSet
	switch kind {
	case composer.KindApplicationRoot:
		sets = applicationRuleSets(layout)
		return Collection{
			Kind:     kind,
			RuleSets: withBaseline(sets),
			Files: []string{
				layout.ManifestFile,
				layout.LockFile,
				fsops.Join(layout.DrupalRoot, "autoload.php"),
				fsops.Join(layout.DrupalRoot, "index.php"),
			},
			OptionalFiles: []string{
				fsops.Join(layout.DrupalRoot, ".htaccess"),
				fsops.Join(layout.DrupalRoot, "favicon.ico"),
				fsops.Join(layout.DrupalRoot, "robots.txt"),
			},
		}, nil
	case composer.KindModule, composer.KindTheme, composer.KindProfile, composer.KindCommandExtension:
		sets = []RuleSet{extensionRuleSet(kind, layout)}
		return Collection{Kind: kind, RuleSets: withBaseline(sets)}, nil
	default:
		return Collection{}, composer.ErrUnsupportedType.WithContext("kind", string(kind))
	}
}

func withBaseline(sets []RuleSet) []RuleSet {
	for i := range sets {
		sets[i].Add(Baseline())
	}
	return sets
}

func extensionRuleSet(kind composer.Kind, layout Layout) RuleSet {
	rs := RuleSet{Name: "extension"}
	rs.Add(
		Names(CategoryManifest, Include, QuoteGlob(layout.ManifestFile)),
		Names(CategoryDocs, Include, "*.md"),
		Names(CategoryManifest, Include, "*.yml"),
		Names(CategoryTemplate, Include, "*.twig"),
		artifactDir(layout.ArtifactDir),
		php(),
		stylesheets(kind == composer.KindTheme || kind == composer.KindProfile),
		scripts(),
		typeDeclarations(),
		images(),
		fonts(),
		ruby(),
		docker(),
		ci(),
	)
	if kind == composer.KindProfile {
		rs.Add(Paths(CategoryContrib, Exclude, "**/modules/contrib/**", "**/libraries/contrib/**", "**/themes/contrib/**"))
	}
	return rs
}

func applicationRuleSets(layout Layout) []RuleSet {
	root := QuoteGlob(layout.DrupalRoot)
	skip := [][]Rule{
		artifactDir(layout.ArtifactDir),
		Paths(CategoryLocation, Exclude, root+"/sites/simpletest/**"),
	}

	custom := RuleSet{Name: "custom-code"}
	custom.Add(skip...)
	custom.Add(
		Paths(CategoryLocation, Include,
			root+"/{modules,themes,profiles,libraries}/custom/**",
			root+"/sites/*/{modules,themes,profiles,libraries}/custom/**",
			"drush/Commands/custom/**",
			root+"/sites/*/drush/Commands/custom/**",
		),
		Paths(CategoryDependency, Exclude, "**/custom/*/node_modules/**"),
		Names(CategoryManifest, Include, "*.yml"),
		Names(CategoryTemplate, Include, "*.twig"),
		php(),
		stylesheets(false),
		scripts(),
		images(),
		fonts(),
	)

	site := RuleSet{Name: "site-settings"}
	site.Add(skip...)
	site.Add(
		Paths(CategorySiteConfig, Include, root+"/sites/*/**"),
		Names(CategorySiteConfig, Include, "settings.php", "services.yml"),
	)

	outer := RuleSet{Name: "outer-sites", IncludeDotFiles: true}
	outer.Add(skip...)
	outer.Add(Paths(CategorySiteConfig, Include, "sites/*/translations/**", "sites/*/config/**"))

	drush := RuleSet{Name: "drush"}
	drush.Add(
		artifactDir(layout.ArtifactDir),
		Paths(CategoryDrush, Include, "drush/**"),
		Paths(CategoryDrush, Exclude, "drush/Commands/**"),
		Names(CategoryDrush, Include, "*.yml"),
		Names(CategoryDrush, Exclude, "drush.local.example.yml", "drush.local.yml"),
	)

	patches := RuleSet{Name: "patches"}
	patches.Add(skip...)
	patches.Add(
		Paths(CategoryPatch, Include, "patches/**"),
		Names(CategoryPatch, Include, "*.patch"),
	)

	return []RuleSet{custom, site, outer, drush, patches}
}

// Apply evaluates c against the tree below root. It returns the selected
// paths relative to root, sorted and without duplicates.
func Apply(c Collection, tree Tree, root string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, rs := range c.RuleSets {
		entries, err := tree.Find(root, rs.query())
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			seen[e.Path] = struct{}{}
		}
	}
	for _, f := range c.Files {
		seen[fsops.Clean(f)] = struct{}{}
	}
	for _, f := range c.OptionalFiles {
		ok, err := tree.Exists(fsops.Join(root, f))
		if err != nil {
			return nil, err
		}
		if ok {
			seen[fsops.Clean(f)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}
