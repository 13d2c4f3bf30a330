package filerules

import "git.home.luguber.info/inful/artifactbuilder/internal/fsops"

// RuleSet is one group of rules evaluated together.
type RuleSet struct {
	Name  string
	Rules []Rule
	// IncludeDotFiles lets entries whose name starts with "." through.
	IncludeDotFiles bool
}

// Add appends rules and returns the set for chaining.
func (rs *RuleSet) Add(rules ...[]Rule) *RuleSet {
	for _, r := range rules {
		rs.Rules = append(rs.Rules, r...)
	}
	return rs
}

// Selects reports whether a file at relPath belongs to the set.
func (rs RuleSet) Selects(relPath string) bool {
	var wantName, wantPath, hasName, hasPath bool
	for _, r := range rs.Rules {
		if r.Action == Exclude {
			if r.Matches(relPath) {
				return false
			}
			continue
		}
		if r.Target == TargetName {
			wantName = true
			hasName = hasName || r.Matches(relPath)
		} else {
			wantPath = true
			hasPath = hasPath || r.Matches(relPath)
		}
	}
	if wantName && !hasName {
		return false
	}
	if wantPath && !hasPath {
		return false
	}
	return true
}

// prunes reports whether nothing below dir can be selected because one of
// its components is excluded.
func (rs RuleSet) prunes(dir string) bool {
	for _, r := range rs.Rules {
		if r.Action == Exclude && r.Target == TargetSegment && r.Matches(dir) {
			return true
		}
	}
	return false
}

func (rs RuleSet) query() fsops.Query {
	return fsops.Query{
		Type:           fsops.TypeFile,
		IgnoreDotFiles: !rs.IncludeDotFiles,
		IgnoreVCS:      true,
		Match:          func(e fsops.Entry) bool { return rs.Selects(e.Path) },
		Prune:          func(e fsops.Entry) bool { return rs.prunes(e.Path) },
	}
}
