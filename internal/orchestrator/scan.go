package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/internal/service"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

type RepositoryLister interface {
	ListAll(ctx context.Context) ([]models.Repository, error)
}

type Inspector interface {
	Inspect(ctx context.Context, repo models.Repository, rules policy.OrganizationRules) models.ComplianceResult
}

type LabelSynchronizer interface {
	EnsureLabels(ctx context.Context, repo string, desired []models.LabelName) int
}

type Publisher interface {
	Publish(ctx context.Context, report models.Report)
}

// Options configures one scan run. Everything comes from the startup
// configuration; the orchestrator never reads process state itself.
type Options struct {
	Org           string
	Rules         policy.OrganizationRules
	DryRun        bool
	ExcludeRepos  []string
	ReportPath    string
	DashboardPath string
	PacingEvery   int
	PacingDelay   time.Duration
}

// ScanBot drives the sequential scan: enumerate, inspect, label, aggregate,
// publish, write artifacts. Repositories are processed one at a time; the
// API rate budget is the bottleneck, not CPU, so a pacing pause is inserted
// after every batch instead of fanning out.
type ScanBot struct {
	repos     RepositoryLister
	inspector Inspector
	labels    LabelSynchronizer
	publisher Publisher
	opts      Options
	logger    *zap.Logger
	now       func() time.Time
}

const (
	defaultPacingEvery = 10
	defaultPacingDelay = 2 * time.Second
)

func NewScanBot(repos RepositoryLister, inspector Inspector, labels LabelSynchronizer, publisher Publisher, opts Options, logger *zap.Logger) *ScanBot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PacingEvery <= 0 {
		opts.PacingEvery = defaultPacingEvery
	}
	if opts.PacingDelay <= 0 {
		opts.PacingDelay = defaultPacingDelay
	}
	return &ScanBot{
		repos:     repos,
		inspector: inspector,
		labels:    labels,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Run scans the organization to completion. Only the top-level conditions
// are fatal: an inaccessible organization or zero repositories discovered.
func (b *ScanBot) Run(ctx context.Context) (models.Report, error) {
	repos, err := b.repos.ListAll(ctx)
	if err != nil {
		return models.Report{}, fmt.Errorf("organization %s inaccessible: %w", b.opts.Org, err)
	}

	repos = b.filterExcluded(repos)
	if len(repos) == 0 {
		return models.Report{}, fmt.Errorf("no repositories discovered in organization %s", b.opts.Org)
	}

	b.logger.Info("scanning organization",
		zap.String("organization", b.opts.Org),
		zap.Int("repositories", len(repos)),
		zap.Bool("dry_run", b.opts.DryRun))

	results := make([]models.ComplianceResult, 0, len(repos))
	for index, repo := range repos {
		b.logger.Info("checking repository", zap.String("repository", repo.Name))

		result := b.inspector.Inspect(ctx, repo, b.opts.Rules)
		results = append(results, result)

		if result.Compliant() {
			b.logger.Info("compliant", zap.String("repository", repo.Name))
		} else {
			b.logger.Warn("violations found",
				zap.String("repository", repo.Name),
				zap.Int("count", len(result.Findings)))
			b.applyLabels(ctx, result)
		}

		if (index+1)%b.opts.PacingEvery == 0 && index+1 < len(repos) {
			b.pause(ctx)
		}
	}

	report := service.Aggregate(b.opts.Org, results, len(repos), b.now().UTC())

	b.writeArtifacts(report)
	b.publishIssues(ctx, report)
	b.logSummary(report)

	return report, nil
}

func (b *ScanBot) filterExcluded(repos []models.Repository) []models.Repository {
	if len(b.opts.ExcludeRepos) == 0 {
		return repos
	}
	kept := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		if b.excluded(repo.Name) {
			b.logger.Info("repository excluded", zap.String("repository", repo.Name))
			continue
		}
		kept = append(kept, repo)
	}
	return kept
}

func (b *ScanBot) excluded(name string) bool {
	for _, pattern := range b.opts.ExcludeRepos {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			b.logger.Warn("invalid exclusion pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (b *ScanBot) applyLabels(ctx context.Context, result models.ComplianceResult) {
	labels := result.Labels()
	if b.opts.DryRun {
		labelNames := make([]string, 0, len(labels))
		for _, label := range labels {
			labelNames = append(labelNames, string(label))
		}
		b.logger.Info("dry run: would apply labels",
			zap.String("repository", result.Repository.Name),
			zap.Strings("labels", labelNames))
		return
	}
	b.labels.EnsureLabels(ctx, result.Repository.Name, labels)
}

func (b *ScanBot) pause(ctx context.Context) {
	select {
	case <-time.After(b.opts.PacingDelay):
	case <-ctx.Done():
	}
}

func (b *ScanBot) writeArtifacts(report models.Report) {
	if err := service.WriteJSONReport(b.opts.ReportPath, report); err != nil {
		b.logger.Error("could not write JSON report", zap.Error(err))
	} else {
		b.logger.Info("JSON report written", zap.String("path", b.opts.ReportPath))
	}

	if err := service.WriteHTMLDashboard(b.opts.DashboardPath, report); err != nil {
		b.logger.Error("could not write HTML dashboard", zap.Error(err))
	} else {
		b.logger.Info("HTML dashboard written", zap.String("path", b.opts.DashboardPath))
	}
}

func (b *ScanBot) publishIssues(ctx context.Context, report models.Report) {
	if b.opts.DryRun {
		b.logger.Info("dry run: skipping issue publication")
		return
	}
	if report.NonCompliantCount == 0 {
		return
	}
	b.publisher.Publish(ctx, report)
}

func (b *ScanBot) logSummary(report models.Report) {
	b.logger.Info("scan complete",
		zap.Int("total", report.TotalRepositories),
		zap.Int("compliant", report.CompliantCount),
		zap.Int("non_compliant", report.NonCompliantCount),
		zap.Float64("compliance_rate_percent", report.ComplianceRate))

	for _, recommendation := range service.Recommendations(report) {
		b.logger.Info("recommendation", zap.String("advice", recommendation))
	}
}
