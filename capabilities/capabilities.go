package capabilities

// ID identifies a single gated unit of functionality. Both the backend and
// the UI compile against these identifiers; plan definitions and tenant
// overrides reference them by value.
type ID string

const (
	Analytics          ID = "analytics"
	FinancialAnalytics ID = "financial_analytics"
	Invoicing          ID = "invoicing"
	PaymentLinks       ID = "payment_links"
	CalendarExport     ID = "calendar_export"
	CustomBranding     ID = "custom_branding"
	APIAccess          ID = "api_access"
	PrioritySupport    ID = "priority_support"
)

// Capability pairs an identifier with its human-readable semantics.
type Capability struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Capability{
	{Analytics, "Analytics", "Usage and engagement dashboards"},
	{FinancialAnalytics, "Financial analytics", "Revenue, payout and settlement reporting"},
	{Invoicing, "Invoicing", "Invoice generation and delivery"},
	{PaymentLinks, "Payment links", "Shareable hosted payment pages"},
	{CalendarExport, "Calendar export", "iCal feeds for bookings"},
	{CustomBranding, "Custom branding", "Tenant logo and colour themes"},
	{APIAccess, "API access", "Programmatic access via API keys"},
	{PrioritySupport, "Priority support", "Dedicated support queue"},
}

// List returns every known capability in declaration order.
func List() []Capability {
	out := make([]Capability, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the capability for the given identifier.
func Lookup(id ID) (Capability, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Capability{}, false
}

// Known reports whether the identifier is part of the catalog.
func Known(id ID) bool {
	_, ok := Lookup(id)
	return ok
}
