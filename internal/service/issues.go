package service

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"go.uber.org/zap"

	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

const (
	reportTrackingLabel    = "compliance-report"
	violationTrackingLabel = "compliance-violation"
	automatedLabel         = "automated"
)

// IssueClient is the slice of the host client the publisher writes
// tracking issues through.
type IssueClient interface {
	ListOpenIssues(ctx context.Context, repo, label string) ([]*gh.Issue, error)
	CreateIssue(ctx context.Context, repo, title, body string, labels, assignees []string) error
	UpdateIssue(ctx context.Context, repo string, number int, body string, assignees []string) error
}

// Resolver supplies the responsible users attached to per-repository
// issues when auto-assignment is enabled.
type Resolver interface {
	Resolve(ctx context.Context, repo models.Repository) []string
}

// IssuePublisher renders report bodies and creates or updates tracking
// issues in the admin repository. Create-or-update is keyed off an open
// issue whose title contains the run date (summary) or the repository name
// (per-repo), which makes repeated runs on the same day idempotent.
type IssuePublisher struct {
	gh         IssueClient
	resolver   Resolver
	catalog    *policy.Catalog
	adminRepo  string
	autoAssign bool
	logger     *zap.Logger
}

func NewIssuePublisher(gh IssueClient, resolver Resolver, catalog *policy.Catalog, adminRepo string, autoAssign bool, logger *zap.Logger) *IssuePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssuePublisher{
		gh:         gh,
		resolver:   resolver,
		catalog:    catalog,
		adminRepo:  adminRepo,
		autoAssign: autoAssign,
		logger:     logger,
	}
}

// Publish writes the daily summary issue and one issue per repository
// carrying a high-priority label. Failures are logged and never abort the
// rest of the batch.
func (p *IssuePublisher) Publish(ctx context.Context, report models.Report) {
	p.publishSummary(ctx, report)

	highPriority := p.catalog.HighPriorityLabels()
	for _, result := range report.Results {
		if result.Compliant() || !result.HasAnyLabel(highPriority) {
			continue
		}
		p.publishRepositoryIssue(ctx, result)
	}
}

func (p *IssuePublisher) publishSummary(ctx context.Context, report models.Report) {
	date := report.ScanTimestamp.UTC().Format("2006-01-02")
	title := fmt.Sprintf("Repository Compliance Report - %s", date)
	body := summaryBody(report)

	existing, err := p.findOpenIssue(ctx, reportTrackingLabel, date)
	if err != nil {
		p.logger.Warn("could not search for existing summary issue", zap.Error(err))
		return
	}

	if existing != nil {
		if err := p.gh.UpdateIssue(ctx, p.adminRepo, existing.GetNumber(), body, nil); err != nil {
			p.logger.Warn("could not update summary issue", zap.Error(err))
			return
		}
		p.logger.Info("summary issue updated", zap.Int("number", existing.GetNumber()))
		return
	}

	labels := []string{reportTrackingLabel, automatedLabel}
	if err := p.gh.CreateIssue(ctx, p.adminRepo, title, body, labels, nil); err != nil {
		p.logger.Warn("could not create summary issue", zap.Error(err))
		return
	}
	p.logger.Info("summary issue created", zap.String("title", title))
}

func (p *IssuePublisher) publishRepositoryIssue(ctx context.Context, result models.ComplianceResult) {
	repo := result.Repository
	title := fmt.Sprintf("Compliance violations in %s", repo.Name)
	body := repositoryBody(result)

	var assignees []string
	if p.autoAssign {
		assignees = p.resolver.Resolve(ctx, repo)
	}

	existing, err := p.findOpenIssue(ctx, violationTrackingLabel, repo.Name)
	if err != nil {
		p.logger.Warn("could not search for existing repository issue",
			zap.String("repository", repo.Name), zap.Error(err))
		return
	}

	if existing != nil {
		if err := p.gh.UpdateIssue(ctx, p.adminRepo, existing.GetNumber(), body, assignees); err != nil {
			p.logger.Warn("could not update repository issue",
				zap.String("repository", repo.Name), zap.Error(err))
			return
		}
		p.logger.Info("repository issue updated",
			zap.String("repository", repo.Name), zap.Int("number", existing.GetNumber()))
		return
	}

	labels := []string{violationTrackingLabel, automatedLabel}
	if err := p.gh.CreateIssue(ctx, p.adminRepo, title, body, labels, assignees); err != nil {
		p.logger.Warn("could not create repository issue",
			zap.String("repository", repo.Name), zap.Error(err))
		return
	}
	p.logger.Info("repository issue created",
		zap.String("repository", repo.Name), zap.Strings("assignees", assignees))
}

func (p *IssuePublisher) findOpenIssue(ctx context.Context, label, titleSubstring string) (*gh.Issue, error) {
	issues, err := p.gh.ListOpenIssues(ctx, p.adminRepo, label)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if strings.Contains(issue.GetTitle(), titleSubstring) {
			return issue, nil
		}
	}
	return nil, nil
}

func summaryBody(report models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Repository Compliance Summary\n\n")
	fmt.Fprintf(&b, "**Organization:** %s\n", report.Organization)
	fmt.Fprintf(&b, "**Scan Date:** %s UTC\n", report.ScanTimestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Repositories Scanned:** %d\n", report.TotalRepositories)
	fmt.Fprintf(&b, "**Non-Compliant Repositories:** %d\n", report.NonCompliantCount)
	fmt.Fprintf(&b, "**Compliance Rate:** %.1f%%\n\n", report.ComplianceRate)

	if len(report.TopViolations) > 0 {
		fmt.Fprintf(&b, "## Top Violation Categories\n\n")
		for _, row := range report.TopViolations {
			fmt.Fprintf(&b, "- %s: %d\n", row.Category, row.Count)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Issues Found\n\n")
	for _, result := range report.Results {
		if result.Compliant() {
			continue
		}
		fmt.Fprintf(&b, "### [%s](%s)\n", result.Repository.Name, result.Repository.URL)
		for _, violation := range result.Violations() {
			fmt.Fprintf(&b, "- %s\n", violation)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "---\n*This report was generated automatically by the repository compliance bot*\n")
	return b.String()
}

func repositoryBody(result models.ComplianceResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance Violations\n\n")
	fmt.Fprintf(&b, "**Repository:** [%s](%s)\n", result.Repository.Name, result.Repository.URL)
	fmt.Fprintf(&b, "**Visibility:** %s\n\n", result.Repository.Visibility())

	fmt.Fprintf(&b, "## Findings\n\n")
	for _, finding := range result.Findings {
		fmt.Fprintf(&b, "- **%s** (`%s`, severity %s): %s\n",
			finding.Kind, finding.Label, finding.Severity, finding.Violation)
	}

	fmt.Fprintf(&b, "\n---\n*This issue was opened automatically by the repository compliance bot*\n")
	return b.String()
}
