package plans

import (
	"github.com/jrsteele09/go-tenant-authz/capabilities"
)

// FeatureStatus describes how a plan tier treats a capability.
type FeatureStatus string

const (
	StatusIncluded FeatureStatus = "included"
	StatusExcluded FeatureStatus = "excluded"
	// StatusAddOn marks capabilities purchasable on top of the tier.
	// Anything other than StatusIncluded is treated as not granted.
	StatusAddOn FeatureStatus = "add_on"
)

// FeatureEntry is a plan's decision for a single capability plus the
// descriptive metadata the pricing UI renders.
type FeatureEntry struct {
	Status      FeatureStatus `json:"status"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
}

// PlanDefinition bundles a subscription tier's capability matrix.
// Definitions are read-only at runtime; the catalog is loaded once per
// process lifetime.
type PlanDefinition struct {
	ID         string                            `json:"id"`
	Name       string                            `json:"name"`
	PriceCents int                               `json:"price_cents"`
	Features   map[capabilities.ID]*FeatureEntry `json:"features"`
}

// Includes reports whether the plan's base definition grants the
// capability. Absent entries and non-included statuses both deny.
func (p *PlanDefinition) Includes(capID capabilities.ID) bool {
	entry, ok := p.Features[capID]
	if !ok || entry == nil {
		return false
	}
	return entry.Status == StatusIncluded
}

// Overrides are per-tenant exceptions keyed by capability. A true value
// grants the capability regardless of plan; false revokes it. An override
// replaces the plan's base decision, it never merges with it.
type Overrides map[capabilities.ID]bool
