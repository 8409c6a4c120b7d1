package policy

import (
	"regexp"
	"strings"
)

// OrganizationRules is the per-organization naming configuration. Selected
// once per run and treated as immutable afterwards.
type OrganizationRules struct {
	NamePrefixes  []string
	NamingPattern *regexp.Regexp
	Description   string
}

const (
	finastraOrg = "finastra-demo"
	arctiqOrg   = "arctiq"
)

var (
	finastraRules = OrganizationRules{
		NamePrefixes:  []string{"FD-"},
		NamingPattern: regexp.MustCompile(`^FD-[a-z0-9]+-[a-z0-9-]+$`),
		Description:   "Finastra demo naming convention (FD- prefix)",
	}

	arctiqRules = OrganizationRules{
		NamePrefixes:  []string{"a-", "e-", "t-", "p-", "action-", "collab-"},
		NamingPattern: regexp.MustCompile(`^(a|e|t|p|action|collab)-[a-z0-9]+-[a-z0-9-]+$`),
		Description:   "Arctiq naming convention",
	}

	defaultRules = OrganizationRules{
		NamePrefixes:  []string{"a-", "e-", "t-", "p-"},
		NamingPattern: regexp.MustCompile(`^[a-z]-[a-z0-9]+-[a-z0-9-]+$`),
		Description:   "Generic single-letter prefix convention",
	}
)

// RulesFor selects the rule set for an organization. The primary
// organization is matched case-sensitively, the Arctiq alternate
// case-insensitively; every other name gets the generic default.
// Total and deterministic.
func RulesFor(orgName string) OrganizationRules {
	switch {
	case orgName == finastraOrg:
		return finastraRules
	case strings.EqualFold(orgName, arctiqOrg):
		return arctiqRules
	default:
		return defaultRules
	}
}

// MatchesPrefix reports whether name starts with any allowed prefix.
func (r OrganizationRules) MatchesPrefix(name string) bool {
	for _, prefix := range r.NamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// MatchesPattern reports whether name fully matches the naming regex.
func (r OrganizationRules) MatchesPattern(name string) bool {
	return r.NamingPattern.MatchString(name)
}
