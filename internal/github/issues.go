package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"
)

// ListOpenIssues returns every open issue on the repository carrying the
// given tracking label.
func (c *client) ListOpenIssues(ctx context.Context, repo, label string) ([]*gh.Issue, error) {
	var all []*gh.Issue
	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		Labels:      []string{label},
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		issues, resp, err := c.issues.ListByRepo(ctx, c.org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing open issues on %s: %w", repo, err)
		}
		all = append(all, issues...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return all, nil
}

// CreateIssue opens a new issue with the given labels and assignees.
func (c *client) CreateIssue(ctx context.Context, repo, title, body string, labels, assignees []string) error {
	req := &gh.IssueRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}
	if len(assignees) > 0 {
		req.Assignees = &assignees
	}
	if _, _, err := c.issues.Create(ctx, c.org, repo, req); err != nil {
		return fmt.Errorf("creating issue %q on %s: %w", title, repo, err)
	}
	return nil
}

// UpdateIssue replaces the body of an existing issue and, when assignees
// are given, re-applies them.
func (c *client) UpdateIssue(ctx context.Context, repo string, number int, body string, assignees []string) error {
	req := &gh.IssueRequest{
		Body: gh.Ptr(body),
	}
	if len(assignees) > 0 {
		req.Assignees = &assignees
	}
	if _, _, err := c.issues.Edit(ctx, c.org, repo, number, req); err != nil {
		return fmt.Errorf("updating issue #%d on %s: %w", number, repo, err)
	}
	return nil
}
