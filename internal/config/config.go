package config

import "github.com/caarlos0/env/v11"

// Config is built once at startup from the process environment and passed
// into every component; core logic never reads ambient process state.
type Config struct {
	GithubToken   string   `env:"GITHUB_TOKEN,required"`
	TargetOrg     string   `env:"TARGET_ORG"`
	AdminRepo     string   `env:"ADMIN_REPO" envDefault:"admin-repo-compliance"`
	DryRun        bool     `env:"DRY_RUN"`
	AutoAssign    bool     `env:"AUTO_ASSIGN"`
	ReportPath    string   `env:"REPORT_PATH" envDefault:"compliance-report.json"`
	DashboardPath string   `env:"DASHBOARD_PATH" envDefault:"compliance-dashboard.html"`
	ExcludeRepos  []string `env:"EXCLUDE_REPOS" envSeparator:","`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
