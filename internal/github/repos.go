package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
)

// ListAllRepos enumerates every repository in the organization, following
// pagination and backing off on rate-limit errors.
func (c *client) ListAllRepos(ctx context.Context) ([]*gh.Repository, error) {
	var allRepos []*gh.Repository
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	for {
		repos, resp, err := c.listReposWithRetry(ctx, opts)
		if err != nil {
			return nil, err
		}

		allRepos = append(allRepos, repos...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (c *client) listReposWithRetry(ctx context.Context, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
	maxRetries := 5
	baseDelay := 1 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		repos, resp, err := c.repositories.ListByOrg(ctx, c.org, opts)

		if err == nil {
			return repos, resp, nil
		}

		var rateLimitErr *gh.RateLimitError
		ok := errors.As(err, &rateLimitErr)
		if !ok {
			return nil, nil, err
		}

		if attempt == maxRetries {
			return nil, nil, fmt.Errorf("max retries reached: %w", err)
		}

		waitDuration := rateLimitErr.Rate.Reset.Sub(time.Now())
		if waitDuration < 0 {
			waitDuration = baseDelay * time.Duration(1<<attempt)
		}

		select {
		case <-time.After(waitDuration):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	return nil, nil, fmt.Errorf("unexpected retry loop exit")
}

// ListCollaborators returns direct and inherited collaborators with their
// permission flags populated.
func (c *client) ListCollaborators(ctx context.Context, repo string) ([]*gh.User, error) {
	opts := &gh.ListCollaboratorsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	users, _, err := c.repositories.ListCollaborators(ctx, c.org, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing collaborators for %s: %w", repo, err)
	}
	return users, nil
}

// ListRecentCommits returns at most limit commits pushed since the given
// time, most recent first.
func (c *client) ListRecentCommits(ctx context.Context, repo string, since time.Time, limit int) ([]*gh.RepositoryCommit, error) {
	opts := &gh.CommitsListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	commits, _, err := c.repositories.ListCommits(ctx, c.org, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing commits for %s: %w", repo, err)
	}
	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}
