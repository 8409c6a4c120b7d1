package models

import "time"

// Repository is a read-only snapshot of one repository at scan time.
type Repository struct {
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         string     `json:"owner"`
	URL           string     `json:"url"`
	Private       bool       `json:"private"`
	Archived      bool       `json:"archived"`
	SizeKB        int        `json:"size_kb"`
	Language      string     `json:"language,omitempty"`
	Description   string     `json:"description,omitempty"`
	DefaultBranch string     `json:"default_branch"`
	CreatedAt     time.Time  `json:"created_at"`
	PushedAt      *time.Time `json:"pushed_at,omitempty"`
}

// Visibility returns the breakdown key used in reports.
func (r Repository) Visibility() string {
	if r.Private {
		return "private"
	}
	return "public"
}

// SizeBucket classifies the repository for report breakdowns.
func (r Repository) SizeBucket() string {
	switch {
	case r.SizeKB < 1:
		return "empty"
	case r.SizeKB < 100:
		return "small"
	case r.SizeKB < 1000:
		return "medium"
	default:
		return "large"
	}
}
