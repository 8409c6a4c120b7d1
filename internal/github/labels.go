package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"
)

// ListLabelNames returns the names of every label defined on the repository.
func (c *client) ListLabelNames(ctx context.Context, repo string) ([]string, error) {
	var names []string
	opts := &gh.ListOptions{PerPage: 100}

	for {
		labels, resp, err := c.issues.ListLabels(ctx, c.org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels for %s: %w", repo, err)
		}
		for _, label := range labels {
			names = append(names, label.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// CreateLabel defines a new label on the repository.
func (c *client) CreateLabel(ctx context.Context, repo, name, color, description string) error {
	label := &gh.Label{
		Name:        gh.Ptr(name),
		Color:       gh.Ptr(color),
		Description: gh.Ptr(description),
	}
	if _, _, err := c.issues.CreateLabel(ctx, c.org, repo, label); err != nil {
		return fmt.Errorf("creating label %s on %s: %w", name, repo, err)
	}
	return nil
}
