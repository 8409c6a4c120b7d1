package models

import "time"

// CategoryCount is one row of the top-violations table.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Report is the aggregate of one full organization scan. It is derived
// purely from the inspection results and never mutated afterwards.
type Report struct {
	Organization      string             `json:"organization"`
	ScanTimestamp     time.Time          `json:"scan_timestamp"`
	TotalRepositories int                `json:"total_repositories"`
	CompliantCount    int                `json:"compliant_count"`
	NonCompliantCount int                `json:"non_compliant_count"`
	ComplianceRate    float64            `json:"compliance_rate_percent"`
	CategoryCounts    map[string]int     `json:"category_counts"`
	LabelCounts       map[LabelName]int  `json:"label_counts"`
	TopViolations     []CategoryCount    `json:"top_violations"`
	ByVisibility      map[string]int     `json:"by_visibility"`
	ByLanguage        map[string]int     `json:"by_language"`
	BySize            map[string]int     `json:"by_size"`
	Results           []ComplianceResult `json:"results"`
}
