package service

import (
	"math"
	"sort"
	"time"

	"github.com/finastra-demo/repo-compliance-bot/models"
)

const topViolationsLimit = 10

// Aggregate folds the per-repository results into the run report. Pure and
// deterministic for a fixed input order: ties in the top-violations sort
// keep first-seen order, and the result list is ordered most violations
// first without disturbing the relative order of equals.
func Aggregate(orgName string, results []models.ComplianceResult, totalScanned int, scannedAt time.Time) models.Report {
	report := models.Report{
		Organization:      orgName,
		ScanTimestamp:     scannedAt,
		TotalRepositories: totalScanned,
		CategoryCounts:    make(map[string]int),
		LabelCounts:       make(map[models.LabelName]int),
		ByVisibility:      make(map[string]int),
		ByLanguage:        make(map[string]int),
		BySize:            make(map[string]int),
	}

	var categoryOrder []string
	for _, result := range results {
		if result.Compliant() {
			continue
		}
		report.NonCompliantCount++

		for _, finding := range result.Findings {
			category := string(finding.Kind)
			if _, seen := report.CategoryCounts[category]; !seen {
				categoryOrder = append(categoryOrder, category)
			}
			report.CategoryCounts[category]++
			report.LabelCounts[finding.Label]++
		}

		// Breakdowns cover non-compliant repositories only.
		report.ByVisibility[result.Repository.Visibility()]++
		report.ByLanguage[languageKey(result.Repository.Language)]++
		report.BySize[result.Repository.SizeBucket()]++
	}

	report.CompliantCount = totalScanned - report.NonCompliantCount
	report.ComplianceRate = complianceRate(totalScanned, report.NonCompliantCount)
	report.TopViolations = topViolations(report.CategoryCounts, categoryOrder)
	report.Results = sortByViolations(results)

	return report
}

func complianceRate(totalScanned, nonCompliant int) float64 {
	if totalScanned == 0 {
		return 100
	}
	rate := float64(totalScanned-nonCompliant) / float64(totalScanned) * 100
	return math.Round(rate*10) / 10
}

func languageKey(language string) string {
	if language == "" {
		return "unknown"
	}
	return language
}

func topViolations(counts map[string]int, order []string) []models.CategoryCount {
	top := make([]models.CategoryCount, 0, len(order))
	for _, category := range order {
		top = append(top, models.CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > topViolationsLimit {
		top = top[:topViolationsLimit]
	}
	return top
}

func sortByViolations(results []models.ComplianceResult) []models.ComplianceResult {
	sorted := make([]models.ComplianceResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Findings) > len(sorted[j].Findings)
	})
	return sorted
}

// Recommendations derives the closing advice lines logged after the scan
// summary, one per violation family present in the report.
func Recommendations(report models.Report) []string {
	var recs []string
	if report.CategoryCounts[string(models.KindSecurity)] > 0 {
		recs = append(recs, "Enable branch protection with required status checks on default branches")
	}
	if report.CategoryCounts[string(models.KindFiles)] > 0 {
		recs = append(recs, "Add the missing README, .gitignore, LICENSE and CODEOWNERS files where flagged")
	}
	if report.CategoryCounts[string(models.KindNaming)] > 0 {
		recs = append(recs, "Rename repositories to follow the organization naming convention")
	}
	if report.CategoryCounts[string(models.KindDescription)] > 0 {
		recs = append(recs, "Add a meaningful description to flagged repositories")
	}
	if report.CategoryCounts[string(models.KindActivity)] > 0 {
		recs = append(recs, "Archive repositories with no recent pushes or hand them to an active owner")
	}
	if report.CategoryCounts[string(models.KindQuality)] > 0 {
		recs = append(recs, "Populate empty or minimal repositories and add discoverability topics")
	}
	return recs
}
