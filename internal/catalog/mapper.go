package catalog

import "strings"

// The configurator front-end sells modules under short names that predate the
// catalog ids, and older client builds still send names that were renamed or
// retired. One table maps every known short name to its canonical catalog id;
// order creation and configuration save both resolve through it.
var configuratorAliases = map[string]string{
	"whatsapp":               "module_whatsapp_bot",
	"whatsapp_bot":           "module_whatsapp_bot",
	"chatbot":                "module_whatsapp_bot",
	"appointments":           "module_appointment_scheduling",
	"appointment_scheduling": "module_appointment_scheduling",
	"booking":                "module_appointment_scheduling",
	"payments":               "module_whatsapp_payments",
	"whatsapp_payments":      "module_whatsapp_payments",
	"invoicing":              "module_invoice_generation",
	"invoices":               "module_invoice_generation",
	"invoice_generation":     "module_invoice_generation",
	"crm":                    "module_customer_crm",
	"customer_crm":           "module_customer_crm",
	"marketing":              "module_marketing_campaigns",
	"marketing_campaigns":    "module_marketing_campaigns",
	"support":                "module_support_tickets",
	"support_tickets":        "module_support_tickets",
	"tickets":                "module_support_tickets",
	"analytics":              "module_analytics_dashboard",
	"analytics_dashboard":    "module_analytics_dashboard",
	"dashboard":              "module_analytics_dashboard",
}

// displayAliases picks the short name shown back to the configurator for each
// catalog id.
var displayAliases = map[string]string{
	"module_whatsapp_bot":           "whatsapp",
	"module_appointment_scheduling": "appointments",
	"module_whatsapp_payments":      "payments",
	"module_invoice_generation":     "invoicing",
	"module_customer_crm":           "crm",
	"module_marketing_campaigns":    "marketing",
	"module_support_tickets":        "support",
	"module_analytics_dashboard":    "analytics",
}

// Resolve translates a configurator identifier to its canonical catalog id.
// Canonical ids pass through unchanged. Unknown identifiers return ok=false;
// callers drop them silently because stale clients may send names of modules
// no longer sold.
func Resolve(configuratorID string) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(configuratorID))
	if id == "" {
		return "", false
	}
	if canonical, ok := configuratorAliases[id]; ok {
		return canonical, true
	}
	if _, ok := displayAliases[id]; ok {
		return id, true
	}
	return "", false
}

// ToConfiguratorID returns the short display name for a catalog id, or the
// catalog id unchanged when no alias exists.
func ToConfiguratorID(catalogID string) string {
	if alias, ok := displayAliases[catalogID]; ok {
		return alias
	}
	return catalogID
}

// ResolveSelection resolves a raw configurator selection into the canonical
// id set: unresolvable ids are dropped, duplicates and aliases of the same
// module collapse to one entry, and first-occurrence order is preserved.
func ResolveSelection(configuratorIDs []string) []string {
	resolved := make([]string, 0, len(configuratorIDs))
	seen := make(map[string]struct{}, len(configuratorIDs))
	for _, raw := range configuratorIDs {
		canonical, ok := Resolve(raw)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		resolved = append(resolved, canonical)
	}
	return resolved
}
