package github

import (
	"context"
	"errors"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

// Probe is the typed outcome of a read that may legitimately find nothing.
// Missing means the host answered and the thing is not there; Unknown means
// the read itself failed, so absence was not established.
type Probe int

const (
	ProbeFound Probe = iota
	ProbeMissing
	ProbeUnknown
)

func (p Probe) String() string {
	switch p {
	case ProbeFound:
		return "found"
	case ProbeMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// BranchStatus captures the protection state of a branch. ChecksKnown is
// false when the protection detail could not be read, which callers treat
// as a soft gap rather than a violation.
type BranchStatus struct {
	Protected         bool
	ChecksKnown       bool
	HasRequiredChecks bool
}

func classify(resp *gh.Response, err error) Probe {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return ProbeMissing
	}
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return ProbeMissing
	}
	return ProbeUnknown
}

// FileContent probes a path on the default branch and returns the decoded
// content when found.
func (c *client) FileContent(ctx context.Context, repo, path string) (string, Probe) {
	content, _, resp, err := c.repositories.GetContents(ctx, c.org, repo, path, nil)
	if err != nil {
		return "", classify(resp, err)
	}
	if content == nil {
		// Path resolved to a directory listing.
		return "", ProbeMissing
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", ProbeUnknown
	}
	return decoded, ProbeFound
}

// DefaultBranchStatus reads the branch and, when protected, the protection
// detail for required status checks.
func (c *client) DefaultBranchStatus(ctx context.Context, repo, branch string) (BranchStatus, Probe) {
	b, resp, err := c.repositories.GetBranch(ctx, c.org, repo, branch, 1)
	if err != nil {
		return BranchStatus{}, classify(resp, err)
	}

	status := BranchStatus{Protected: b.GetProtected()}
	if !status.Protected {
		return status, ProbeFound
	}

	protection, _, err := c.repositories.GetBranchProtection(ctx, c.org, repo, branch)
	if err != nil {
		return status, ProbeFound
	}
	status.ChecksKnown = true
	status.HasRequiredChecks = protection.GetRequiredStatusChecks() != nil
	return status, ProbeFound
}

// Topics lists the discoverability topics attached to the repository.
func (c *client) Topics(ctx context.Context, repo string) ([]string, Probe) {
	topics, resp, err := c.repositories.ListAllTopics(ctx, c.org, repo)
	if err != nil {
		return nil, classify(resp, err)
	}
	return topics, ProbeFound
}
