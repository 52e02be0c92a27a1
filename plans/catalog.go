package plans

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jrsteele09/go-tenant-authz/capabilities"
)

// Catalog holds every plan definition in ascending price order. It is
// immutable after construction and safe for concurrent reads without
// locking.
type Catalog struct {
	ordered []*PlanDefinition
	byID    map[string]*PlanDefinition
}

// NewCatalog builds a catalog from the given definitions, sorted by
// ascending price. Equal prices keep their declaration order so that
// CheapestPlanGranting tie-breaks are deterministic.
func NewCatalog(defs ...*PlanDefinition) (*Catalog, error) {
	byID := make(map[string]*PlanDefinition, len(defs))
	ordered := make([]*PlanDefinition, 0, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("[NewCatalog] plan definition with empty ID")
		}
		if _, exists := byID[def.ID]; exists {
			return nil, fmt.Errorf("[NewCatalog] duplicate plan %q", def.ID)
		}
		byID[def.ID] = def
		ordered = append(ordered, def)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PriceCents < ordered[j].PriceCents
	})
	return &Catalog{ordered: ordered, byID: byID}, nil
}

// LoadFile reads plan definitions from a JSON file. The file holds an
// array of PlanDefinition objects.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[plans LoadFile] reading %s: %w", path, err)
	}
	var defs []*PlanDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("[plans LoadFile] parsing %s: %w", path, err)
	}
	return NewCatalog(defs...)
}

// Get returns the definition for the given plan identifier.
func (c *Catalog) Get(planID string) (*PlanDefinition, bool) {
	def, ok := c.byID[planID]
	return def, ok
}

// List returns every plan in ascending price order.
func (c *Catalog) List() []*PlanDefinition {
	out := make([]*PlanDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IsIncluded reports whether the plan's base definition grants the
// capability. Unknown plans and absent feature entries deny; authorization
// always fails closed.
func (c *Catalog) IsIncluded(planID string, capID capabilities.ID) bool {
	def, ok := c.byID[planID]
	if !ok {
		return false
	}
	return def.Includes(capID)
}

// ResolveEffective computes the capability set granted to a tenant on the
// given plan: the plan's base set, with each override replacing the base
// decision for its capability. Overrides win whether granting or revoking.
// An unknown plan yields only whatever the overrides grant.
func (c *Catalog) ResolveEffective(planID string, overrides Overrides) map[capabilities.ID]bool {
	granted := make(map[capabilities.ID]bool)
	if def, ok := c.byID[planID]; ok {
		for capID, entry := range def.Features {
			if entry != nil && entry.Status == StatusIncluded {
				granted[capID] = true
			}
		}
	}
	for capID, allowed := range overrides {
		if allowed {
			granted[capID] = true
		} else {
			delete(granted, capID)
		}
	}
	return granted
}

// CheapestPlanGranting scans plans in ascending price order and returns
// the first whose base definition grants the capability. Used to compute
// upgrade targets for denied callers.
func (c *Catalog) CheapestPlanGranting(capID capabilities.ID) (string, bool) {
	for _, def := range c.ordered {
		if def.Includes(capID) {
			return def.ID, true
		}
	}
	return "", false
}
