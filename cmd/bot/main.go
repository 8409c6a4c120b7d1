package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finastra-demo/repo-compliance-bot/internal/config"
	"github.com/finastra-demo/repo-compliance-bot/internal/github"
	"github.com/finastra-demo/repo-compliance-bot/internal/orchestrator"
	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/internal/service"
)

//go:embed catalog/*.json
var embeddedCatalog embed.FS

type flags struct {
	org        string
	dryRun     bool
	autoAssign bool
	report     string
	dashboard  string
	debug      bool
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "compliance-bot",
		Short: "Scans every repository in an organization against governance rules",
		Long: `compliance-bot scans every repository in a GitHub organization, checks
each against the organization's governance rules, applies labels reflecting
violations, writes a JSON report and an HTML dashboard, and opens tracking
issues in an admin repository.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	rootCmd.Flags().StringVar(&f.org, "org", "", "organization to scan (overrides TARGET_ORG)")
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "log intended label/issue mutations instead of performing them")
	rootCmd.Flags().BoolVar(&f.autoAssign, "auto-assign", false, "assign responsible users on per-repository issues")
	rootCmd.Flags().StringVar(&f.report, "report", "", "JSON report output path (overrides REPORT_PATH)")
	rootCmd.Flags().StringVar(&f.dashboard, "dashboard", "", "HTML dashboard output path (overrides DASHBOARD_PATH)")
	rootCmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	applyFlags(cfg, f)

	logger, err := newLogger(f.debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	catalogData, err := embeddedCatalog.ReadFile("catalog/labels.json")
	if err != nil {
		return fmt.Errorf("reading embedded label catalog: %w", err)
	}
	catalog, err := policy.CatalogFromJSON(catalogData)
	if err != nil {
		return fmt.Errorf("parsing label catalog: %w", err)
	}

	org := cfg.TargetOrg
	if org == "" {
		org, err = github.DetectOrganization(ctx, cfg.GithubToken)
		if err != nil {
			return fmt.Errorf("detecting organization: %w", err)
		}
		logger.Info("organization auto-detected", zap.String("organization", org))
	}

	ghClient := github.New(cfg.GithubToken, org)

	if remaining, err := ghClient.RateRemaining(ctx); err != nil {
		logger.Warn("could not read API rate limit", zap.Error(err))
	} else {
		logger.Info("API rate limit", zap.Int("remaining", remaining))
	}

	repoSvc := service.NewRepositoriesService(ghClient)
	inspector := service.NewInspector(ghClient, catalog)
	labelSync := service.NewLabelSynchronizer(ghClient, catalog, logger)
	resolver := service.NewResponsibleUserResolver(ghClient)
	publisher := service.NewIssuePublisher(ghClient, resolver, catalog, cfg.AdminRepo, cfg.AutoAssign, logger)

	bot := orchestrator.NewScanBot(repoSvc, inspector, labelSync, publisher, orchestrator.Options{
		Org:           org,
		Rules:         policy.RulesFor(org),
		DryRun:        cfg.DryRun,
		ExcludeRepos:  cfg.ExcludeRepos,
		ReportPath:    cfg.ReportPath,
		DashboardPath: cfg.DashboardPath,
	}, logger)

	if _, err := bot.Run(ctx); err != nil {
		return err
	}
	return nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.org != "" {
		cfg.TargetOrg = f.org
	}
	if f.dryRun {
		cfg.DryRun = true
	}
	if f.autoAssign {
		cfg.AutoAssign = true
	}
	if f.report != "" {
		cfg.ReportPath = f.report
	}
	if f.dashboard != "" {
		cfg.DashboardPath = f.dashboard
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Encoding = "console"
	if debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zapConfig.Build()
}
