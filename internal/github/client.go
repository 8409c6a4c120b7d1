package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
)

// RepositoriesAdapter covers the go-github repository operations the bot
// uses; narrowed so tests can substitute fakes.
type RepositoriesAdapter interface {
	ListByOrg(ctx context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
	GetBranch(ctx context.Context, owner, repo, branch string, maxRedirects int) (*gh.Branch, *gh.Response, error)
	GetBranchProtection(ctx context.Context, owner, repo, branch string) (*gh.Protection, *gh.Response, error)
	ListAllTopics(ctx context.Context, owner, repo string) ([]string, *gh.Response, error)
	ListCollaborators(ctx context.Context, owner, repo string, opts *gh.ListCollaboratorsOptions) ([]*gh.User, *gh.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error)
}

// IssuesAdapter covers label and issue operations on scanned repositories
// and on the admin repository.
type IssuesAdapter interface {
	ListLabels(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Label, *gh.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *gh.Label) (*gh.Label, *gh.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *gh.IssueListByRepoOptions) ([]*gh.Issue, *gh.Response, error)
	Create(ctx context.Context, owner, repo string, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error)
}

// RateLimitAdapter exposes the current API rate-limit status.
type RateLimitAdapter interface {
	Get(ctx context.Context) (*gh.RateLimits, *gh.Response, error)
}

// Client is the host-client surface the services depend on.
type Client interface {
	Org() string
	ListAllRepos(ctx context.Context) ([]*gh.Repository, error)
	FileContent(ctx context.Context, repo, path string) (string, Probe)
	DefaultBranchStatus(ctx context.Context, repo, branch string) (BranchStatus, Probe)
	Topics(ctx context.Context, repo string) ([]string, Probe)
	ListLabelNames(ctx context.Context, repo string) ([]string, error)
	CreateLabel(ctx context.Context, repo, name, color, description string) error
	ListOpenIssues(ctx context.Context, repo, label string) ([]*gh.Issue, error)
	CreateIssue(ctx context.Context, repo, title, body string, labels, assignees []string) error
	UpdateIssue(ctx context.Context, repo string, number int, body string, assignees []string) error
	ListCollaborators(ctx context.Context, repo string) ([]*gh.User, error)
	ListRecentCommits(ctx context.Context, repo string, since time.Time, limit int) ([]*gh.RepositoryCommit, error)
	RateRemaining(ctx context.Context) (int, error)
}

type client struct {
	org          string
	repositories RepositoriesAdapter
	issues       IssuesAdapter
	rateLimit    RateLimitAdapter
}

type authTransport struct {
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func newGithub(token string) *gh.Client {
	var httpClient *http.Client
	if token != "" {
		httpClient = &http.Client{
			Transport: &authTransport{
				token: token,
			},
		}
	}
	return gh.NewClient(httpClient)
}

// New builds an org-scoped client authenticated with the given token.
func New(token, org string) Client {
	github := newGithub(token)
	return &client{
		org:          org,
		repositories: github.Repositories,
		issues:       github.Issues,
		rateLimit:    github.RateLimit,
	}
}

func (c *client) Org() string {
	return c.org
}

// RateRemaining reports the remaining core API quota.
func (c *client) RateRemaining(ctx context.Context) (int, error) {
	limits, _, err := c.rateLimit.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading rate limit: %w", err)
	}
	return limits.GetCore().Remaining, nil
}

// DetectOrganization resolves the organization to scan from the
// authenticated user's memberships when none is configured.
func DetectOrganization(ctx context.Context, token string) (string, error) {
	github := newGithub(token)
	orgs, _, err := github.Organizations.List(ctx, "", nil)
	if err != nil {
		return "", fmt.Errorf("listing organization memberships: %w", err)
	}
	for _, org := range orgs {
		if login := org.GetLogin(); login != "" {
			return login, nil
		}
	}
	return "", fmt.Errorf("authenticated user belongs to no organization")
}
