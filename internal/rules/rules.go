// internal/rules/rules.go
package rules

import "strings"

// Head-office sub-locations grouped by delivery region. The urgency
// threshold follows the region's lead-time allowance.
var (
	hoSulawesi = map[string]struct{}{
		"HO LAR": {}, "HO LWK": {}, "HO PALU": {}, "HO KDI": {},
		"HO MUNA": {}, "HO WATU": {}, "HO LAEYA": {}, "HO TKE": {},
	}
	hoHalmahera = map[string]struct{}{
		"HO OBI": {}, "HO FLUK": {}, "HO BARU": {}, "HO LWI": {},
	}
)

// UrgentNormal classifies a requisition as Urgent or Normal from its lead
// time and location group. Consignment orders and missing lead times are
// always Normal.
func UrgentNormal(requisitionType, loc string, leadTime *float64) string {
	if requisitionType == "Consignment" {
		return "Normal"
	}
	if leadTime == nil {
		return "Normal"
	}
	lt := *leadTime

	if loc == "HO" && lt <= 15 {
		return "Urgent"
	}
	if strings.Contains(loc, "LC") && lt <= 15 {
		return "Urgent"
	}
	if _, ok := hoSulawesi[loc]; ok && lt <= 36 {
		return "Urgent"
	}
	if _, ok := hoHalmahera[loc]; ok && lt <= 43 {
		return "Urgent"
	}
	return "Normal"
}
