// internal/rules/freight.go
package rules

import "strings"

// Freight resolves the freight type for a logistics-service line. The
// explicit supplier table always outranks the carrier-table fallbacks; a
// missing supplier short-circuits to "Other Freight".
func Freight(supplier, poNumber string, supplierFreight, rara, ryi map[string]string) string {
	if supplier == "" {
		return "Other Freight"
	}

	if ft, ok := supplierFreight[supplier]; ok && ft != "" {
		return ft
	}

	upper := strings.ToUpper(supplier)
	if strings.Contains(upper, "RARA") {
		if ft, ok := rara[poNumber]; ok && ft != "" {
			return ft
		}
		return "Unknown RARA Freight"
	}
	if strings.Contains(upper, "RYI") {
		if ft, ok := ryi[poNumber]; ok && ft != "" {
			return ft
		}
		return "Unknown RYI Freight"
	}

	return "Other Freight"
}
