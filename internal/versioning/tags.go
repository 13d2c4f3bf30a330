package versioning

import "sort"

// SelectLatest returns the tag with the highest semantic version. Tags that do
// not parse are ignored. The tag is returned as given, including any "v".
func SelectLatest(tags []string) (string, bool) {
	type candidate struct {
		tag string
		v   Version
	}
	candidates := make([]candidate, 0, len(tags))
	for _, tag := range tags {
		v, err := ParseSemantic(tag)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{tag: tag, v: v})
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return Compare(candidates[i].v, candidates[j].v) < 0
	})
	return candidates[len(candidates)-1].tag, true
}
