package plans_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/plans"
	"github.com/stretchr/testify/require"
)

func TestCatalog_IsIncluded(t *testing.T) {
	catalog := plans.DefaultCatalog()

	t.Run("included capability", func(t *testing.T) {
		require.True(t, catalog.IsIncluded(plans.PlanCore, capabilities.Analytics))
	})

	t.Run("absent capability denies by default", func(t *testing.T) {
		require.False(t, catalog.IsIncluded(plans.PlanCore, capabilities.FinancialAnalytics))
	})

	t.Run("add-on status is not granted", func(t *testing.T) {
		require.False(t, catalog.IsIncluded(plans.PlanCore, capabilities.PaymentLinks))
	})

	t.Run("unknown plan fails closed", func(t *testing.T) {
		require.False(t, catalog.IsIncluded("enterprise-legacy", capabilities.Analytics))
	})

	t.Run("unknown capability fails closed", func(t *testing.T) {
		require.False(t, catalog.IsIncluded(plans.PlanScale, "quantum_mode"))
	})
}

func TestCatalog_ResolveEffective(t *testing.T) {
	catalog := plans.DefaultCatalog()

	t.Run("base set without overrides", func(t *testing.T) {
		granted := catalog.ResolveEffective(plans.PlanCore, nil)
		require.True(t, granted[capabilities.Analytics])
		require.True(t, granted[capabilities.Invoicing])
		require.False(t, granted[capabilities.FinancialAnalytics])
	})

	t.Run("granting override wins over exclusion", func(t *testing.T) {
		granted := catalog.ResolveEffective(plans.PlanCore, plans.Overrides{
			capabilities.FinancialAnalytics: true,
		})
		require.True(t, granted[capabilities.FinancialAnalytics])
	})

	t.Run("revoking override wins over inclusion", func(t *testing.T) {
		granted := catalog.ResolveEffective(plans.PlanGrowth, plans.Overrides{
			capabilities.FinancialAnalytics: false,
		})
		require.False(t, granted[capabilities.FinancialAnalytics])
		require.True(t, granted[capabilities.Analytics], "other capabilities unaffected")
	})

	t.Run("unknown plan yields only override grants", func(t *testing.T) {
		granted := catalog.ResolveEffective("no-such-plan", plans.Overrides{
			capabilities.APIAccess: true,
		})
		require.Equal(t, map[capabilities.ID]bool{capabilities.APIAccess: true}, granted)
	})
}

func TestCatalog_CheapestPlanGranting(t *testing.T) {
	catalog := plans.DefaultCatalog()

	t.Run("skips tiers without the capability", func(t *testing.T) {
		planID, ok := catalog.CheapestPlanGranting(capabilities.FinancialAnalytics)
		require.True(t, ok)
		require.Equal(t, plans.PlanGrowth, planID)
	})

	t.Run("cheapest tier wins when several grant", func(t *testing.T) {
		planID, ok := catalog.CheapestPlanGranting(capabilities.Analytics)
		require.True(t, ok)
		require.Equal(t, plans.PlanCore, planID)
	})

	t.Run("no plan grants", func(t *testing.T) {
		_, ok := catalog.CheapestPlanGranting("quantum_mode")
		require.False(t, ok)
	})

	t.Run("equal prices tie-break on declaration order", func(t *testing.T) {
		catalog, err := plans.NewCatalog(
			&plans.PlanDefinition{ID: "first", PriceCents: 1000, Features: map[capabilities.ID]*plans.FeatureEntry{
				capabilities.Analytics: {Status: plans.StatusIncluded},
			}},
			&plans.PlanDefinition{ID: "second", PriceCents: 1000, Features: map[capabilities.ID]*plans.FeatureEntry{
				capabilities.Analytics: {Status: plans.StatusIncluded},
			}},
		)
		require.NoError(t, err)

		planID, ok := catalog.CheapestPlanGranting(capabilities.Analytics)
		require.True(t, ok)
		require.Equal(t, "first", planID)
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("rejects duplicate plan IDs", func(t *testing.T) {
		_, err := plans.NewCatalog(
			&plans.PlanDefinition{ID: "dup"},
			&plans.PlanDefinition{ID: "dup"},
		)
		require.Error(t, err)
		require.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects empty plan ID", func(t *testing.T) {
		_, err := plans.NewCatalog(&plans.PlanDefinition{})
		require.Error(t, err)
	})

	t.Run("orders by ascending price", func(t *testing.T) {
		catalog, err := plans.NewCatalog(
			&plans.PlanDefinition{ID: "expensive", PriceCents: 9900},
			&plans.PlanDefinition{ID: "cheap", PriceCents: 900},
		)
		require.NoError(t, err)

		ordered := catalog.List()
		require.Equal(t, "cheap", ordered[0].ID)
		require.Equal(t, "expensive", ordered[1].ID)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads a JSON catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plans.json")
		data := `[
			{"id": "basic", "name": "Basic", "price_cents": 500, "features": {
				"analytics": {"status": "included"}
			}},
			{"id": "pro", "name": "Pro", "price_cents": 2500, "features": {
				"analytics": {"status": "included"},
				"financial_analytics": {"status": "included"}
			}}
		]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		catalog, err := plans.LoadFile(path)
		require.NoError(t, err)
		require.True(t, catalog.IsIncluded("basic", capabilities.Analytics))
		require.False(t, catalog.IsIncluded("basic", capabilities.FinancialAnalytics))

		planID, ok := catalog.CheapestPlanGranting(capabilities.FinancialAnalytics)
		require.True(t, ok)
		require.Equal(t, "pro", planID)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := plans.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})
}
