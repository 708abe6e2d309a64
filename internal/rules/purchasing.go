// internal/rules/purchasing.go
package rules

// Procurement rosters. Head-office buyers work against a 5-day PO approval
// target, site buyers against 3 days. Combined entries ("Rona / Joko") are
// how shared queues appear in the source system.
var (
	hoTeam = map[string]struct{}{
		"Linda / Puji / Syifa R / Stheven": {},
		"Syifa Ramadhani":                  {},
		"Syifa Alifia":                     {},
		"Rizal Agus Fianto":                {},
		"Auriel":                           {},
		"Puji Astuti":                      {},
		"Linda Permata Sari":               {},
		"Laurensius Adi":                   {},
		"Syifa Ramadhani Luthfi":           {},
	}
	siteTeam = map[string]struct{}{
		"Rona / Joko":                 {},
		"Joko":                        {},
		"Victo":                       {},
		"Rakan":                       {},
		"Rona Justhafist":             {},
		"Rona / Victo / Rakan / Joko": {},
		"Fairus / Irwan":              {},
		"Fairus Mubakri":              {},
		"Irwan":                       {},
		"Ady":                         {},
		"Fairus / Ady":                {},
		"Olvan":                       {},
	}
)

// PurchasingStatus classifies the purchasing stage as On Time or Late from
// the buyer's team threshold. Buyers on neither roster, and missing
// durations, yield no status.
func PurchasingStatus(procurementName string, duration *int) *string {
	if duration == nil {
		return nil
	}
	d := *duration

	if _, ok := hoTeam[procurementName]; ok {
		if d <= 5 {
			return strPtr("On Time")
		}
		return strPtr("Late")
	}
	if _, ok := siteTeam[procurementName]; ok {
		if d <= 3 {
			return strPtr("On Time")
		}
		return strPtr("Late")
	}
	return nil
}

func strPtr(s string) *string { return &s }
