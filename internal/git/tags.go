package git

import (
	"context"
	stderrors "errors"
	"log/slog"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
)

// Tag is a tag name and the commit it points to.
type Tag struct {
	Name   string
	Commit plumbing.Hash
}

// MergedTags returns the names of tags whose commit is reachable from HEAD,
// sorted by name. Annotated and lightweight tags are both resolved to their
// commit; tags pointing at trees or blobs are ignored.
func (c *Client) MergedTags(ctx context.Context, dir string) ([]string, error) {
	tags, err := c.ListMergedTags(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}

// ListMergedTags is MergedTags with the resolved commit of each tag.
func (c *Client) ListMergedTags(ctx context.Context, dir string) ([]Tag, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	head, err := headHash(repo, dir)
	if err != nil {
		return nil, err
	}
	all, err := resolveTags(repo)
	if err != nil {
		return nil, ErrTagRead.WithContext("dir", dir).Wrap(err)
	}
	if len(all) == 0 {
		return nil, nil
	}
	reachable, err := reachableFrom(ctx, repo, head)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ErrTagRead.WithContext("dir", dir).Wrap(err)
	}

	merged := make([]Tag, 0, len(all))
	for _, t := range all {
		if _, ok := reachable[t.Commit]; ok {
			merged = append(merged, t)
		}
	}
	slices.SortFunc(merged, func(a, b Tag) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	c.log().Debug("Listed merged tags", logfields.Dir(dir), logfields.Count(len(merged)), slog.Int("total", len(all)))
	return merged, nil
}

func resolveTags(repo *git.Repository) ([]Tag, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	var out []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, ok, err := peelToCommit(repo, ref.Hash())
		if err != nil {
			return err
		}
		if ok {
			out = append(out, Tag{Name: ref.Name().Short(), Commit: commit})
		}
		return nil
	})
	return out, err
}

// peelToCommit follows annotated tag objects down to a commit.
func peelToCommit(repo *git.Repository, h plumbing.Hash) (plumbing.Hash, bool, error) {
	for {
		tagObj, err := repo.TagObject(h)
		switch {
		case err == nil:
			if tagObj.TargetType != plumbing.TagObject && tagObj.TargetType != plumbing.CommitObject {
				return plumbing.ZeroHash, false, nil
			}
			h = tagObj.Target
			continue
		case !stderrors.Is(err, plumbing.ErrObjectNotFound):
			return plumbing.ZeroHash, false, err
		}

		if _, err := repo.CommitObject(h); err != nil {
			if stderrors.Is(err, plumbing.ErrObjectNotFound) || stderrors.Is(err, object.ErrUnsupportedObject) {
				return plumbing.ZeroHash, false, nil
			}
			return plumbing.ZeroHash, false, err
		}
		return h, true, nil
	}
}

// reachableFrom collects every commit reachable from start by following parents.
// A parent missing from the object store, as at the edge of a shallow clone,
// ends that line of history. Only a missing start is an error.
func reachableFrom(ctx context.Context, repo *git.Repository, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	seen := map[plumbing.Hash]struct{}{}
	queue := []plumbing.Hash{start}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h := queue[0]
		queue = queue[1:]
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		commit, err := repo.CommitObject(h)
		if err != nil {
			if h != start && stderrors.Is(err, plumbing.ErrObjectNotFound) {
				delete(seen, h)
				continue
			}
			return nil, err
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return seen, nil
}
