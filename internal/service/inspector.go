package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finastra-demo/repo-compliance-bot/internal/github"
	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

const (
	readmeMinLength      = 100
	descriptionMinLength = 10
	minimalSizeKB        = 10
	staleAfterDays       = 180
	inactiveAfterDays    = 365
)

// Candidate paths are probed in order. README probing stops at the first
// hit even when the content is under the length threshold: a stub README.md
// is what the host renders, so a longer file under another name must not
// mask it.
var (
	readmeCandidates     = []string{"README.md", "README", "README.rst", "readme.md"}
	licenseCandidates    = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"}
	codeownersCandidates = []string{"CODEOWNERS", ".github/CODEOWNERS", "docs/CODEOWNERS"}
)

// ContentAccessor is the slice of the host client the inspector reads
// repository content through.
type ContentAccessor interface {
	FileContent(ctx context.Context, repo, path string) (string, github.Probe)
	DefaultBranchStatus(ctx context.Context, repo, branch string) (github.BranchStatus, github.Probe)
	Topics(ctx context.Context, repo string) ([]string, github.Probe)
}

// Inspector runs the six governance checks against one repository at a
// time. It is a pure transformation over the snapshot and the content
// accessor: read failures degrade to findings or are swallowed per check,
// never propagated.
type Inspector struct {
	accessor ContentAccessor
	catalog  *policy.Catalog
	now      func() time.Time
}

func NewInspector(accessor ContentAccessor, catalog *policy.Catalog) *Inspector {
	return &Inspector{
		accessor: accessor,
		catalog:  catalog,
		now:      time.Now,
	}
}

// Inspect checks one repository against the organization rules. Archived
// repositories are excluded from active governance and come back with no
// findings.
func (i *Inspector) Inspect(ctx context.Context, repo models.Repository, rules policy.OrganizationRules) models.ComplianceResult {
	result := models.ComplianceResult{Repository: repo}

	if repo.Archived {
		return result
	}

	result.Findings = append(result.Findings, i.checkNaming(repo, rules)...)
	result.Findings = append(result.Findings, i.checkRequiredFiles(ctx, repo)...)
	result.Findings = append(result.Findings, i.checkBranchProtection(ctx, repo)...)
	result.Findings = append(result.Findings, i.checkDescription(repo)...)
	result.Findings = append(result.Findings, i.checkActivity(repo)...)
	result.Findings = append(result.Findings, i.checkQuality(ctx, repo)...)

	return result
}

func (i *Inspector) finding(kind models.ViolationKind, violation string, label models.LabelName) models.Finding {
	return models.Finding{
		Kind:      kind,
		Violation: violation,
		Label:     label,
		Severity:  i.catalog.Severity(label),
	}
}

// checkNaming verifies the prefix and the full naming pattern
// independently; both can fire for the same repository.
func (i *Inspector) checkNaming(repo models.Repository, rules policy.OrganizationRules) []models.Finding {
	var findings []models.Finding

	if !rules.MatchesPrefix(repo.Name) {
		findings = append(findings, i.finding(models.KindNaming,
			fmt.Sprintf("Repository name must start with one of: %s", strings.Join(rules.NamePrefixes, ", ")),
			"naming:missing-prefix"))
	}

	if !rules.MatchesPattern(repo.Name) {
		findings = append(findings, i.finding(models.KindNaming,
			fmt.Sprintf("Repository name does not match the pattern %s", rules.NamingPattern),
			"naming:bad-pattern"))
	}

	return findings
}

func (i *Inspector) checkRequiredFiles(ctx context.Context, repo models.Repository) []models.Finding {
	var findings []models.Finding

	readmeFound := false
	for _, path := range readmeCandidates {
		content, probe := i.accessor.FileContent(ctx, repo.Name, path)
		if probe != github.ProbeFound {
			continue
		}
		readmeFound = true
		if len(content) < readmeMinLength {
			findings = append(findings, i.finding(models.KindFiles,
				fmt.Sprintf("README file is too short (< %d characters)", readmeMinLength),
				"missing:readme"))
		}
		break
	}
	if !readmeFound {
		findings = append(findings, i.finding(models.KindFiles,
			"No README file found", "missing:readme"))
	}

	if _, probe := i.accessor.FileContent(ctx, repo.Name, ".gitignore"); probe != github.ProbeFound {
		findings = append(findings, i.finding(models.KindFiles,
			"No .gitignore file found", "missing:gitignore"))
	}

	if !repo.Private {
		licenseFound := false
		for _, path := range licenseCandidates {
			if _, probe := i.accessor.FileContent(ctx, repo.Name, path); probe == github.ProbeFound {
				licenseFound = true
				break
			}
		}
		if !licenseFound {
			findings = append(findings, i.finding(models.KindFiles,
				"No LICENSE file found (required for public repositories)", "missing:license"))
		}
	}

	codeownersFound := false
	for _, path := range codeownersCandidates {
		if _, probe := i.accessor.FileContent(ctx, repo.Name, path); probe == github.ProbeFound {
			codeownersFound = true
			break
		}
	}
	if !codeownersFound {
		findings = append(findings, i.finding(models.KindFiles,
			"No CODEOWNERS file found", "missing:codeowners"))
	}

	return findings
}

// checkBranchProtection emits a distinct finding when the branch cannot be
// read instead of silently skipping. The required-status-checks probe is
// soft: an unreadable protection detail is not a violation.
func (i *Inspector) checkBranchProtection(ctx context.Context, repo models.Repository) []models.Finding {
	status, probe := i.accessor.DefaultBranchStatus(ctx, repo.Name, repo.DefaultBranch)
	if probe != github.ProbeFound {
		return []models.Finding{i.finding(models.KindSecurity,
			fmt.Sprintf("Default branch %q could not be verified", repo.DefaultBranch),
			"security:branch-unverified")}
	}

	if !status.Protected {
		return []models.Finding{i.finding(models.KindSecurity,
			"Default branch has no protection rules", "security:no-branch-protection")}
	}

	if status.ChecksKnown && !status.HasRequiredChecks {
		return []models.Finding{i.finding(models.KindSecurity,
			"Branch protection has no required status checks", "security:no-status-checks")}
	}

	return nil
}

func (i *Inspector) checkDescription(repo models.Repository) []models.Finding {
	if len(strings.TrimSpace(repo.Description)) < descriptionMinLength {
		return []models.Finding{i.finding(models.KindDescription,
			"Repository description missing or too short", "missing:description")}
	}
	return nil
}

// checkActivity compares now (UTC) against the last push. Timestamps are
// normalized to UTC before subtraction.
func (i *Inspector) checkActivity(repo models.Repository) []models.Finding {
	if repo.PushedAt == nil {
		return []models.Finding{i.finding(models.KindActivity,
			"Repository has never been pushed to", "activity:no-pushes")}
	}

	days := int(i.now().UTC().Sub(repo.PushedAt.UTC()).Hours() / 24)
	switch {
	case days > inactiveAfterDays:
		return []models.Finding{i.finding(models.KindActivity,
			fmt.Sprintf("Repository inactive for %d days (1+ years)", days),
			"activity:archived")}
	case days > staleAfterDays:
		return []models.Finding{i.finding(models.KindActivity,
			fmt.Sprintf("Repository stale for %d days (6+ months)", days),
			"activity:stale")}
	}

	return nil
}

// checkQuality flags empty and near-empty repositories. The topics probe
// is best effort: a failed read is swallowed, not reported.
func (i *Inspector) checkQuality(ctx context.Context, repo models.Repository) []models.Finding {
	var findings []models.Finding

	switch {
	case repo.SizeKB == 0:
		findings = append(findings, i.finding(models.KindQuality,
			"Repository is empty", "quality:empty"))
	case repo.SizeKB < minimalSizeKB:
		findings = append(findings, i.finding(models.KindQuality,
			fmt.Sprintf("Repository has minimal content (< %d KB)", minimalSizeKB),
			"quality:minimal"))
	}

	topics, probe := i.accessor.Topics(ctx, repo.Name)
	if probe == github.ProbeFound && len(topics) == 0 {
		findings = append(findings, i.finding(models.KindQuality,
			"Repository has no discoverability topics", "quality:no-topics"))
	}

	return findings
}
