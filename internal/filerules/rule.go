package filerules

import (
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Category names what a rule governs. It is used for listing and debugging.
type Category string

const (
	CategorySource     Category = "source"
	CategoryDocs       Category = "docs"
	CategoryManifest   Category = "manifest"
	CategoryTemplate   Category = "template"
	CategoryStylesheet Category = "stylesheet"
	CategoryScript     Category = "script"
	CategoryTypes      Category = "type-declaration"
	CategoryImage      Category = "image"
	CategoryFont       Category = "font"
	CategorySiteConfig Category = "site-config"
	CategoryDrush      Category = "drush-config"
	CategoryPatch      Category = "patch"
	CategoryLocation   Category = "location"
	CategoryArtifact   Category = "artifact"
	CategoryVCS        Category = "vcs"
	CategoryIDE        Category = "ide"
	CategoryOS         Category = "os"
	CategoryDependency Category = "dependency"
	CategoryTooling    Category = "tooling"
	CategoryCI         Category = "ci"
	CategoryRuby       Category = "ruby"
	CategoryDocker     Category = "docker"
	CategoryContrib    Category = "contrib"
)

// Action is include or exclude.
type Action int

const (
	Include Action = iota
	Exclude
)

func (a Action) String() string {
	if a == Exclude {
		return "exclude"
	}
	return "include"
}

// Target is the part of a candidate path a rule looks at.
type Target int

const (
	// TargetName matches the base name.
	TargetName Target = iota
	// TargetPath matches the whole relative path.
	TargetPath
	// TargetSegment matches any single component of the relative path.
	TargetSegment
)

func (t Target) String() string {
	switch t {
	case TargetPath:
		return "path"
	case TargetSegment:
		return "segment"
	default:
		return "name"
	}
}

// Matcher tests a string against a compiled pattern.
type Matcher interface {
	Match(s string) bool
	String() string
}

type globMatcher string

// Glob returns a doublestar matcher. It panics on a malformed pattern, rule
// catalogs are static.
func Glob(pattern string) Matcher {
	if !doublestar.ValidatePattern(pattern) {
		panic("filerules: bad glob " + pattern)
	}
	return globMatcher(pattern)
}

func (g globMatcher) Match(s string) bool {
	return doublestar.MatchUnvalidated(string(g), s)
}

func (g globMatcher) String() string { return string(g) }

type regexpMatcher struct{ re *regexp.Regexp }

// Regexp returns a regular expression matcher. The expression is not anchored
// unless it says so.
func Regexp(expr string) Matcher {
	return regexpMatcher{re: regexp.MustCompile(expr)}
}

func (r regexpMatcher) Match(s string) bool { return r.re.MatchString(s) }

func (r regexpMatcher) String() string { return "/" + r.re.String() + "/" }

// Rule is one include or exclude predicate.
type Rule struct {
	Category Category
	Action   Action
	Target   Target
	Pattern  Matcher
}

func (r Rule) String() string {
	return r.Action.String() + " " + r.Target.String() + " " + r.Pattern.String() + " (" + string(r.Category) + ")"
}

// Matches reports whether the rule's pattern applies to relPath.
func (r Rule) Matches(relPath string) bool {
	switch r.Target {
	case TargetPath:
		return r.Pattern.Match(relPath)
	case TargetSegment:
		for _, seg := range strings.Split(relPath, "/") {
			if r.Pattern.Match(seg) {
				return true
			}
		}
		return false
	default:
		return r.Pattern.Match(path.Base(relPath))
	}
}

// Names builds include or exclude rules on base names.
func Names(cat Category, action Action, globs ...string) []Rule {
	rules := make([]Rule, 0, len(globs))
	for _, g := range globs {
		rules = append(rules, Rule{Category: cat, Action: action, Target: TargetName, Pattern: Glob(g)})
	}
	return rules
}

// Paths builds include or exclude rules on relative paths.
func Paths(cat Category, action Action, globs ...string) []Rule {
	rules := make([]Rule, 0, len(globs))
	for _, g := range globs {
		rules = append(rules, Rule{Category: cat, Action: action, Target: TargetPath, Pattern: Glob(g)})
	}
	return rules
}

// Segments builds exclude rules that drop anything below a directory name.
func Segments(cat Category, names ...string) []Rule {
	rules := make([]Rule, 0, len(names))
	for _, n := range names {
		rules = append(rules, Rule{Category: cat, Action: Exclude, Target: TargetSegment, Pattern: Glob(n)})
	}
	return rules
}

// QuoteGlob escapes glob metacharacters in a literal path.
func QuoteGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '?', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
