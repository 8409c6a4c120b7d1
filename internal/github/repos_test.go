package github

import (
	"context"
	"errors"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAllRepos_Pagination(t *testing.T) {
	ctx := context.Background()

	reposSvc := &fakeRepositories{
		listByOrg: func(_ context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
			assert.Equal(t, "org-name", org)
			if opts.Page == 0 {
				return []*gh.Repository{
					{ID: gh.Ptr(int64(1)), Name: gh.Ptr("repo-1")},
					{ID: gh.Ptr(int64(2)), Name: gh.Ptr("repo-2")},
				}, &gh.Response{NextPage: 2}, nil
			}
			return []*gh.Repository{
				{ID: gh.Ptr(int64(3)), Name: gh.Ptr("repo-3")},
			}, &gh.Response{NextPage: 0}, nil
		},
	}

	c := &client{repositories: reposSvc, org: "org-name"}

	repos, err := c.ListAllRepos(ctx)

	require.NoError(t, err)
	require.Len(t, repos, 3)
	assert.Equal(t, []string{"repo-1", "repo-2", "repo-3"}, []string{
		repos[0].GetName(),
		repos[1].GetName(),
		repos[2].GetName(),
	})
}

func TestListAllRepos_NonRateLimitErrorIsFatal(t *testing.T) {
	reposSvc := &fakeRepositories{
		listByOrg: func(_ context.Context, _ string, _ *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
			return nil, nil, errors.New("boom")
		},
	}

	c := &client{repositories: reposSvc, org: "org-name"}

	_, err := c.ListAllRepos(context.Background())
	assert.Error(t, err)
}

func TestListAllRepos_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	reposSvc := &fakeRepositories{
		listByOrg: func(ctx context.Context, _ string, _ *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
			select {
			case <-time.After(100 * time.Millisecond):
				return []*gh.Repository{}, &gh.Response{}, nil
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		},
	}

	c := &client{repositories: reposSvc, org: "org-name"}

	repos, err := c.ListAllRepos(ctx)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Len(t, repos, 0)
}

func TestListRecentCommits_CapsAtLimit(t *testing.T) {
	since := time.Now().AddDate(0, 0, -30)

	reposSvc := &fakeRepositories{
		listCommits: func(_ context.Context, _, _ string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
			assert.Equal(t, since, opts.Since)
			commits := make([]*gh.RepositoryCommit, 15)
			for i := range commits {
				commits[i] = &gh.RepositoryCommit{SHA: gh.Ptr("sha")}
			}
			return commits, &gh.Response{}, nil
		},
	}

	c := &client{repositories: reposSvc, org: "org-name"}

	commits, err := c.ListRecentCommits(context.Background(), "repo", since, 10)
	require.NoError(t, err)
	assert.Len(t, commits, 10)
}
