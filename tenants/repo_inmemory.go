package tenants

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jrsteele09/go-tenant-authz/plans"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of the tenant Repo
type InMemoryRepo struct {
	mu      sync.RWMutex
	tenants map[string]*Tenant
}

// NewInMemoryRepo creates a new in-memory tenant repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		tenants: make(map[string]*Tenant),
	}
}

// Upsert creates or updates a tenant record
func (r *InMemoryRepo) Upsert(tenantData *Tenant) error {
	if tenantData == nil || tenantData.ID == "" {
		return fmt.Errorf("tenant ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	stored := *tenantData
	if tenantData.Overrides != nil {
		stored.Overrides = make(plans.Overrides, len(tenantData.Overrides))
		for capID, allowed := range tenantData.Overrides {
			stored.Overrides[capID] = allowed
		}
	}
	r.tenants[stored.ID] = &stored
	return nil
}

// Delete removes a tenant record
func (r *InMemoryRepo) Delete(tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, tenantID)
	return nil
}

// Get retrieves a tenant by ID
func (r *InMemoryRepo) Get(tenantID string) (*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenant, ok := r.tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("tenant not found")
	}
	copied := *tenant
	return &copied, nil
}

// List returns tenants ordered by ID with offset/limit paging
func (r *InMemoryRepo) List(offset, limit int) ([]*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		copied := *t
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
