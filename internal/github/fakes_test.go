package github

import (
	"context"
	"errors"

	gh "github.com/google/go-github/v80/github"
)

// fakeRepositories implements RepositoriesAdapter with overridable
// functions; unset operations fail loudly.
type fakeRepositories struct {
	listByOrg           func(ctx context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error)
	getContents         func(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
	getBranch           func(ctx context.Context, owner, repo, branch string, maxRedirects int) (*gh.Branch, *gh.Response, error)
	getBranchProtection func(ctx context.Context, owner, repo, branch string) (*gh.Protection, *gh.Response, error)
	listAllTopics       func(ctx context.Context, owner, repo string) ([]string, *gh.Response, error)
	listCollaborators   func(ctx context.Context, owner, repo string, opts *gh.ListCollaboratorsOptions) ([]*gh.User, *gh.Response, error)
	listCommits         func(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error)
}

var errNotStubbed = errors.New("not stubbed")

func (f *fakeRepositories) ListByOrg(ctx context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
	if f.listByOrg == nil {
		return nil, nil, errNotStubbed
	}
	return f.listByOrg(ctx, org, opts)
}

func (f *fakeRepositories) GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error) {
	if f.getContents == nil {
		return nil, nil, nil, errNotStubbed
	}
	return f.getContents(ctx, owner, repo, path, opts)
}

func (f *fakeRepositories) GetBranch(ctx context.Context, owner, repo, branch string, maxRedirects int) (*gh.Branch, *gh.Response, error) {
	if f.getBranch == nil {
		return nil, nil, errNotStubbed
	}
	return f.getBranch(ctx, owner, repo, branch, maxRedirects)
}

func (f *fakeRepositories) GetBranchProtection(ctx context.Context, owner, repo, branch string) (*gh.Protection, *gh.Response, error) {
	if f.getBranchProtection == nil {
		return nil, nil, errNotStubbed
	}
	return f.getBranchProtection(ctx, owner, repo, branch)
}

func (f *fakeRepositories) ListAllTopics(ctx context.Context, owner, repo string) ([]string, *gh.Response, error) {
	if f.listAllTopics == nil {
		return nil, nil, errNotStubbed
	}
	return f.listAllTopics(ctx, owner, repo)
}

func (f *fakeRepositories) ListCollaborators(ctx context.Context, owner, repo string, opts *gh.ListCollaboratorsOptions) ([]*gh.User, *gh.Response, error) {
	if f.listCollaborators == nil {
		return nil, nil, errNotStubbed
	}
	return f.listCollaborators(ctx, owner, repo, opts)
}

func (f *fakeRepositories) ListCommits(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
	if f.listCommits == nil {
		return nil, nil, errNotStubbed
	}
	return f.listCommits(ctx, owner, repo, opts)
}

// fakeIssues implements IssuesAdapter the same way.
type fakeIssues struct {
	listLabels  func(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Label, *gh.Response, error)
	createLabel func(ctx context.Context, owner, repo string, label *gh.Label) (*gh.Label, *gh.Response, error)
	listByRepo  func(ctx context.Context, owner, repo string, opts *gh.IssueListByRepoOptions) ([]*gh.Issue, *gh.Response, error)
	create      func(ctx context.Context, owner, repo string, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error)
	edit        func(ctx context.Context, owner, repo string, number int, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error)
}

func (f *fakeIssues) ListLabels(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Label, *gh.Response, error) {
	if f.listLabels == nil {
		return nil, nil, errNotStubbed
	}
	return f.listLabels(ctx, owner, repo, opts)
}

func (f *fakeIssues) CreateLabel(ctx context.Context, owner, repo string, label *gh.Label) (*gh.Label, *gh.Response, error) {
	if f.createLabel == nil {
		return nil, nil, errNotStubbed
	}
	return f.createLabel(ctx, owner, repo, label)
}

func (f *fakeIssues) ListByRepo(ctx context.Context, owner, repo string, opts *gh.IssueListByRepoOptions) ([]*gh.Issue, *gh.Response, error) {
	if f.listByRepo == nil {
		return nil, nil, errNotStubbed
	}
	return f.listByRepo(ctx, owner, repo, opts)
}

func (f *fakeIssues) Create(ctx context.Context, owner, repo string, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error) {
	if f.create == nil {
		return nil, nil, errNotStubbed
	}
	return f.create(ctx, owner, repo, issue)
}

func (f *fakeIssues) Edit(ctx context.Context, owner, repo string, number int, issue *gh.IssueRequest) (*gh.Issue, *gh.Response, error) {
	if f.edit == nil {
		return nil, nil, errNotStubbed
	}
	return f.edit(ctx, owner, repo, number, issue)
}
