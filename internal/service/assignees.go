package service

import (
	"context"
	"sort"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/finastra-demo/repo-compliance-bot/internal/github"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

const (
	maxResponsibleUsers = 3
	adminTierTarget     = 2
	codeownersTierTake  = 2
	commitWindowDays    = 30
	commitSampleSize    = 10
)

// ResolverClient is the slice of the host client the resolver consults.
type ResolverClient interface {
	ListCollaborators(ctx context.Context, repo string) ([]*gh.User, error)
	FileContent(ctx context.Context, repo, path string) (string, github.Probe)
	ListRecentCommits(ctx context.Context, repo string, since time.Time, limit int) ([]*gh.RepositoryCommit, error)
}

// ResponsibleUserResolver derives an ordered, deduplicated candidate list
// of humans accountable for a repository: administrators first, then
// file-declared owners, then recent contributors, then the owning account.
// A failing tier contributes zero candidates and is never fatal.
type ResponsibleUserResolver struct {
	gh  ResolverClient
	now func() time.Time
}

func NewResponsibleUserResolver(gh ResolverClient) *ResponsibleUserResolver {
	return &ResponsibleUserResolver{gh: gh, now: time.Now}
}

// Resolve returns at most three unique usernames in priority order.
func (r *ResponsibleUserResolver) Resolve(ctx context.Context, repo models.Repository) []string {
	var users []string
	seen := make(map[string]struct{})

	add := func(login string) {
		if login == "" || len(users) >= maxResponsibleUsers {
			return
		}
		if _, dup := seen[login]; dup {
			return
		}
		seen[login] = struct{}{}
		users = append(users, login)
	}

	// Tier 1: admin collaborators, then maintainers.
	if collaborators, err := r.gh.ListCollaborators(ctx, repo.Name); err == nil {
		for _, user := range collaborators {
			if len(users) >= adminTierTarget {
				break
			}
			if user.GetPermissions()["admin"] {
				add(user.GetLogin())
			}
		}
		for _, user := range collaborators {
			if len(users) >= adminTierTarget {
				break
			}
			permissions := user.GetPermissions()
			if permissions["maintain"] && !permissions["admin"] {
				add(user.GetLogin())
			}
		}
	}

	// Tier 2: file-declared owners.
	if len(users) < adminTierTarget {
		taken := 0
		for _, owner := range r.codeownerHandles(ctx, repo.Name) {
			if taken >= codeownersTierTake || len(users) >= maxResponsibleUsers {
				break
			}
			before := len(users)
			add(owner)
			if len(users) > before {
				taken++
			}
		}
	}

	// Tier 3: most active committers of the last 30 days.
	if len(users) < maxResponsibleUsers {
		for _, author := range r.recentCommitters(ctx, repo.Name) {
			if len(users) >= maxResponsibleUsers {
				break
			}
			add(author)
		}
	}

	// Tier 4: fall back to the owning account.
	if len(users) == 0 {
		add(repo.Owner)
	}

	return users
}

// codeownerHandles parses the first CODEOWNERS file found for @username
// tokens, excluding team references (those containing a slash).
func (r *ResponsibleUserResolver) codeownerHandles(ctx context.Context, repo string) []string {
	var content string
	found := false
	for _, path := range codeownersCandidates {
		if c, probe := r.gh.FileContent(ctx, repo, path); probe == github.ProbeFound {
			content = c
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	var handles []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, token := range strings.Fields(line) {
			if !strings.HasPrefix(token, "@") {
				continue
			}
			handle := strings.TrimPrefix(token, "@")
			if handle == "" || strings.Contains(handle, "/") {
				continue
			}
			if _, dup := seen[handle]; dup {
				continue
			}
			seen[handle] = struct{}{}
			handles = append(handles, handle)
		}
	}
	return handles
}

// recentCommitters ranks the authors of the last 30 days of commits by
// commit count, most active first, preserving first-seen order on ties.
func (r *ResponsibleUserResolver) recentCommitters(ctx context.Context, repo string) []string {
	since := r.now().UTC().AddDate(0, 0, -commitWindowDays)
	commits, err := r.gh.ListRecentCommits(ctx, repo, since, commitSampleSize)
	if err != nil {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, commit := range commits {
		login := commit.GetAuthor().GetLogin()
		if login == "" {
			continue
		}
		if _, seen := counts[login]; !seen {
			order = append(order, login)
		}
		counts[login]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
