package git

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
)

// Client opens local repositories. The zero value is usable.
type Client struct {
	logger *slog.Logger
}

// NewClient returns a Client that logs through logger (slog.Default when nil).
func NewClient(logger *slog.Logger) *Client {
	return &Client{logger: logger}
}

func (c *Client) log() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// open finds the repository containing dir, walking up to the .git directory.
func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository.WithContext("dir", dir)
		}
		return nil, ErrNotRepository.WithContext("dir", dir).Wrap(err)
	}
	return repo, nil
}

func headHash(repo *git.Repository, dir string) (plumbing.Hash, error) {
	ref, err := repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, ErrNoHead.WithContext("dir", dir)
		}
		return plumbing.ZeroHash, ErrNoHead.WithContext("dir", dir).Wrap(err)
	}
	return ref.Hash(), nil
}

// Head returns the commit hash HEAD resolves to.
func (c *Client) Head(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	h, err := headHash(repo, dir)
	if err != nil {
		return "", err
	}
	c.log().Debug("Resolved HEAD", logfields.Dir(dir), slog.String("commit", h.String()))
	return h.String(), nil
}
