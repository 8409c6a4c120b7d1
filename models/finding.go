package models

// LabelName is a categorical compliance tag of the form "category:reason",
// drawn from the fixed catalog embedded in cmd/bot.
type LabelName string

// Severity ranks how urgently a finding needs attention.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ViolationKind is the closed set of check families a finding can belong to.
type ViolationKind string

const (
	KindNaming      ViolationKind = "naming"
	KindFiles       ViolationKind = "files"
	KindSecurity    ViolationKind = "security"
	KindDescription ViolationKind = "description"
	KindActivity    ViolationKind = "activity"
	KindQuality     ViolationKind = "quality"
)

// Finding is one failed governance check on one repository. The kind is
// attached at creation time so aggregation never has to parse the
// violation text, and the label/severity pair travels with the violation
// instead of living in a parallel list.
type Finding struct {
	Kind      ViolationKind `json:"kind"`
	Violation string        `json:"violation"`
	Label     LabelName     `json:"label"`
	Severity  Severity      `json:"severity"`
}

// ComplianceResult is the outcome of inspecting one repository.
type ComplianceResult struct {
	Repository Repository `json:"repository"`
	Findings   []Finding  `json:"findings"`
}

// Compliant reports whether the inspection produced no findings.
func (r ComplianceResult) Compliant() bool {
	return len(r.Findings) == 0
}

// Violations returns the violation texts in finding order.
func (r ComplianceResult) Violations() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Violation)
	}
	return out
}

// Labels returns the label names in finding order, without duplicates.
func (r ComplianceResult) Labels() []LabelName {
	seen := make(map[LabelName]struct{}, len(r.Findings))
	out := make([]LabelName, 0, len(r.Findings))
	for _, f := range r.Findings {
		if _, ok := seen[f.Label]; ok {
			continue
		}
		seen[f.Label] = struct{}{}
		out = append(out, f.Label)
	}
	return out
}

// HasAnyLabel reports whether the result carries at least one of the
// given labels.
func (r ComplianceResult) HasAnyLabel(labels map[LabelName]struct{}) bool {
	for _, f := range r.Findings {
		if _, ok := labels[f.Label]; ok {
			return true
		}
	}
	return false
}
