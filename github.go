package main

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
)

// gitHub is the slice of the GitHub API the webhook needs.
type gitHub interface {
	ListCommits(ctx context.Context, owner, repo string, number int) ([]*github.RepositoryCommit, error)
	CreateStatus(ctx context.Context, owner, repo, ref string, status *github.RepoStatus) error
}

type gitHubFactory func(installationID int64) (gitHub, error)

type gitHubClient struct {
	client *github.Client
}

// installationClients creates a GitHub client per installation of the app.
func installationClients(appID int64, keyFile string) gitHubFactory {
	return func(installationID int64) (gitHub, error) {
		itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, keyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "installation %d", installationID)
		}

		return &gitHubClient{client: github.NewClient(&http.Client{Transport: itr})}, nil
	}
}

func (g *gitHubClient) ListCommits(ctx context.Context, owner, repo string, number int) ([]*github.RepositoryCommit, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []*github.RepositoryCommit
	for {
		commits, resp, err := g.client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "list commits of %s/%s#%d", owner, repo, number)
		}
		all = append(all, commits...)

		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (g *gitHubClient) CreateStatus(ctx context.Context, owner, repo, ref string, status *github.RepoStatus) error {
	_, _, err := g.client.Repositories.CreateStatus(ctx, owner, repo, ref, status)
	if err != nil {
		return errors.Wrapf(err, "set status %s on %s", status.GetContext(), ref)
	}

	return nil
}
