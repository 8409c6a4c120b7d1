package policy

import (
	"encoding/json"
	"fmt"

	"github.com/finastra-demo/repo-compliance-bot/models"
)

// LabelSpec describes one catalog entry: the display color and description
// used when the label has to be created on a repository, the severity
// attached to findings carrying it, and whether the label is urgent enough
// to warrant an individually tracked issue.
type LabelSpec struct {
	Name         models.LabelName `json:"name"`
	Color        string           `json:"color"`
	Description  string           `json:"description"`
	Severity     models.Severity  `json:"severity"`
	HighPriority bool             `json:"high_priority"`
}

// Catalog is the fixed label catalog loaded from the embedded JSON file.
type Catalog struct {
	specs map[models.LabelName]LabelSpec
}

const fallbackColor = "6a737d"

// CatalogFromJSON parses the embedded label catalog.
func CatalogFromJSON(data []byte) (*Catalog, error) {
	var specs []LabelSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}
	catalog := &Catalog{specs: make(map[models.LabelName]LabelSpec, len(specs))}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("catalog entry without a name")
		}
		catalog.specs[spec.Name] = spec
	}
	return catalog, nil
}

// Severity returns the catalog severity for a label, defaulting to low for
// labels outside the catalog.
func (c *Catalog) Severity(name models.LabelName) models.Severity {
	if spec, ok := c.specs[name]; ok {
		return spec.Severity
	}
	return models.SeverityLow
}

// Color returns the display color for a label, with the gray fallback the
// original checker used for unknown labels.
func (c *Catalog) Color(name models.LabelName) string {
	if spec, ok := c.specs[name]; ok && spec.Color != "" {
		return spec.Color
	}
	return fallbackColor
}

// Description returns the label description used at creation time.
func (c *Catalog) Description(name models.LabelName) string {
	if spec, ok := c.specs[name]; ok && spec.Description != "" {
		return spec.Description
	}
	return fmt.Sprintf("Compliance: %s", name)
}

// HighPriority reports whether the label belongs to the urgent subset.
func (c *Catalog) HighPriority(name models.LabelName) bool {
	spec, ok := c.specs[name]
	return ok && spec.HighPriority
}

// HighPriorityLabels returns the urgent subset as a lookup set.
func (c *Catalog) HighPriorityLabels() map[models.LabelName]struct{} {
	out := make(map[models.LabelName]struct{})
	for name, spec := range c.specs {
		if spec.HighPriority {
			out[name] = struct{}{}
		}
	}
	return out
}
