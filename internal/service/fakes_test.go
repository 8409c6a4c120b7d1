package service

import (
	"context"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/require"

	"github.com/finastra-demo/repo-compliance-bot/internal/github"
	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

const testCatalogJSON = `[
	{"name": "naming:missing-prefix", "color": "f66a0a", "severity": "high", "high_priority": true},
	{"name": "naming:bad-pattern", "color": "f66a0a", "severity": "medium"},
	{"name": "missing:readme", "color": "d73a49", "severity": "high", "high_priority": true},
	{"name": "missing:gitignore", "color": "d73a49", "severity": "high", "high_priority": true},
	{"name": "missing:license", "color": "fbca04", "severity": "low"},
	{"name": "missing:codeowners", "color": "fbca04", "severity": "low"},
	{"name": "missing:description", "color": "fbca04", "severity": "low"},
	{"name": "security:no-branch-protection", "color": "d73a49", "severity": "high", "high_priority": true},
	{"name": "security:no-status-checks", "color": "f66a0a", "severity": "medium"},
	{"name": "security:branch-unverified", "color": "f66a0a", "severity": "medium"},
	{"name": "activity:no-pushes", "color": "24292e", "severity": "medium"},
	{"name": "activity:stale", "color": "f66a0a", "severity": "medium"},
	{"name": "activity:archived", "color": "24292e", "severity": "medium"},
	{"name": "quality:empty", "color": "6a737d", "severity": "low"},
	{"name": "quality:minimal", "color": "6a737d", "severity": "low"},
	{"name": "quality:no-topics", "color": "6a737d", "severity": "low"}
]`

func testCatalog(t *testing.T) *policy.Catalog {
	t.Helper()
	catalog, err := policy.CatalogFromJSON([]byte(testCatalogJSON))
	require.NoError(t, err)
	return catalog
}

// fakeAccessor serves file, branch, and topic probes from in-memory state.
type fakeAccessor struct {
	files        map[string]string
	unknownPaths map[string]bool
	branch       github.BranchStatus
	branchProbe  github.Probe
	topics       []string
	topicsProbe  github.Probe
}

func (f *fakeAccessor) FileContent(_ context.Context, _, path string) (string, github.Probe) {
	if f.unknownPaths[path] {
		return "", github.ProbeUnknown
	}
	if content, ok := f.files[path]; ok {
		return content, github.ProbeFound
	}
	return "", github.ProbeMissing
}

func (f *fakeAccessor) DefaultBranchStatus(_ context.Context, _, _ string) (github.BranchStatus, github.Probe) {
	return f.branch, f.branchProbe
}

func (f *fakeAccessor) Topics(_ context.Context, _ string) ([]string, github.Probe) {
	return f.topics, f.topicsProbe
}

// compliantAccessor returns an accessor describing a repository that
// passes every content-based check.
func compliantAccessor() *fakeAccessor {
	return &fakeAccessor{
		files: map[string]string{
			"README.md":  longReadme(),
			".gitignore": "vendor/\n",
			"LICENSE":    "MIT License",
			"CODEOWNERS": "* @alice\n",
		},
		branch:      github.BranchStatus{Protected: true, ChecksKnown: true, HasRequiredChecks: true},
		branchProbe: github.ProbeFound,
		topics:      []string{"go"},
		topicsProbe: github.ProbeFound,
	}
}

func longReadme() string {
	readme := "# Service\n\n"
	for len(readme) < 150 {
		readme += "This repository hosts a production service. "
	}
	return readme
}

// fakeLabelClient records label creation and can fail specific labels.
type fakeLabelClient struct {
	existing  []string
	listErr   error
	created   []string
	failNames map[string]error
}

func (f *fakeLabelClient) ListLabelNames(_ context.Context, _ string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeLabelClient) CreateLabel(_ context.Context, _, name, _, _ string) error {
	if err, ok := f.failNames[name]; ok {
		return err
	}
	f.created = append(f.created, name)
	f.existing = append(f.existing, name)
	return nil
}

// fakeResolverClient serves the responsible-user tiers.
type fakeResolverClient struct {
	collaborators    []*gh.User
	collaboratorsErr error
	files            map[string]string
	commits          []*gh.RepositoryCommit
	commitsErr       error
}

func (f *fakeResolverClient) ListCollaborators(_ context.Context, _ string) ([]*gh.User, error) {
	if f.collaboratorsErr != nil {
		return nil, f.collaboratorsErr
	}
	return f.collaborators, nil
}

func (f *fakeResolverClient) FileContent(_ context.Context, _, path string) (string, github.Probe) {
	if content, ok := f.files[path]; ok {
		return content, github.ProbeFound
	}
	return "", github.ProbeMissing
}

func (f *fakeResolverClient) ListRecentCommits(_ context.Context, _ string, _ time.Time, limit int) ([]*gh.RepositoryCommit, error) {
	if f.commitsErr != nil {
		return nil, f.commitsErr
	}
	commits := f.commits
	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}

func collaborator(login string, permissions map[string]bool) *gh.User {
	return &gh.User{Login: gh.Ptr(login), Permissions: permissions}
}

func commitBy(login string) *gh.RepositoryCommit {
	return &gh.RepositoryCommit{Author: &gh.User{Login: gh.Ptr(login)}}
}

// fakeIssueClient records issue traffic against the admin repository.
type fakeIssueClient struct {
	open      []*gh.Issue
	listErr   error
	created   []createdIssue
	updated   []updatedIssue
	createErr error
}

type createdIssue struct {
	repo      string
	title     string
	body      string
	labels    []string
	assignees []string
}

type updatedIssue struct {
	repo      string
	number    int
	body      string
	assignees []string
}

func (f *fakeIssueClient) ListOpenIssues(_ context.Context, _, label string) ([]*gh.Issue, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matching []*gh.Issue
	for _, issue := range f.open {
		for _, l := range issue.Labels {
			if l.GetName() == label {
				matching = append(matching, issue)
				break
			}
		}
	}
	return matching, nil
}

func (f *fakeIssueClient) CreateIssue(_ context.Context, repo, title, body string, labels, assignees []string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, createdIssue{repo: repo, title: title, body: body, labels: labels, assignees: assignees})
	return nil
}

func (f *fakeIssueClient) UpdateIssue(_ context.Context, repo string, number int, body string, assignees []string) error {
	f.updated = append(f.updated, updatedIssue{repo: repo, number: number, body: body, assignees: assignees})
	return nil
}

func openIssue(number int, title string, labels ...string) *gh.Issue {
	issue := &gh.Issue{Number: gh.Ptr(number), Title: gh.Ptr(title)}
	for _, label := range labels {
		issue.Labels = append(issue.Labels, &gh.Label{Name: gh.Ptr(label)})
	}
	return issue
}

// fakeResolver returns a fixed assignee list.
type fakeResolver struct {
	users []string
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _ models.Repository) []string {
	f.calls++
	return f.users
}
