// Package gitlog reads commit messages out of a local git repository.
package gitlog

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// DefaultLimit caps how many commits are read when no lower bound is given.
const DefaultLimit = 1000

type Commit struct {
	SHA     string
	Message string
}

// Open opens the repository containing dir.
func Open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(err, "open repository %s", dir)
	}

	return repo, nil
}

// Range returns the commits reachable from to but not from from, oldest
// first. An empty to means HEAD. An empty from reads back at most
// DefaultLimit commits.
func Range(repo *git.Repository, from, to string) ([]Commit, error) {
	return RangeLimit(repo, from, to, DefaultLimit)
}

// RangeLimit is Range with an explicit cap on the commits read back when from
// is empty. The newest limit commits are kept.
func RangeLimit(repo *git.Repository, from, to string, limit int) ([]Commit, error) {
	toHash, err := resolve(repo, to)
	if err != nil {
		return nil, err
	}

	stop := map[plumbing.Hash]bool{}
	if from != "" {
		fromHash, err := resolve(repo, from)
		if err != nil {
			return nil, err
		}

		excluded, err := repo.Log(&git.LogOptions{From: fromHash})
		if err != nil {
			return nil, errors.Wrapf(err, "log %s", from)
		}
		err = excluded.ForEach(func(c *object.Commit) error {
			stop[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "log %s", from)
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrapf(err, "log %s", to)
	}
	defer iter.Close()

	var result []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if stop[c.Hash] {
			return nil
		}
		if from == "" && len(result) >= limit {
			return storer.ErrStop
		}

		result = append(result, Commit{SHA: c.Hash.String(), Message: c.Message})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "log %s", to)
	}

	return lo.Reverse(result), nil
}

func resolve(repo *git.Repository, rev string) (plumbing.Hash, error) {
	if rev == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, errors.Wrap(err, "resolve HEAD")
		}
		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, errors.Wrapf(err, "resolve %s", rev)
	}

	return *hash, nil
}
