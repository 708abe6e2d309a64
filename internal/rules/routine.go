// internal/rules/routine.go
package rules

import "strings"

// Procurement staff whose electrical purchases are treated as non-routine.
var nonRoutineStaff = map[string]struct{}{
	"rizal agus fianto":      {},
	"syifa alifia":           {},
	"syifa ramadhani luthfi": {},
	"linda permata sari":     {},
	"puji astuti":            {},
	"laurensius adi":         {},
	"stheven immanuel":       {},
}

// RoutineRule is one entry of the routine categorization cascade. Category
// matches exactly against the lower-cased merged category; NameAny lists
// item-name substring alternatives (negated by NameExclude); Staff restricts
// the rule to a procurement-staff set.
type RoutineRule struct {
	Category    string
	NameAny     []string
	NameExclude bool
	Staff       map[string]struct{}
	Result      string
}

// routineRules is applied sequentially: a later rule overwrites the result
// of an earlier one when both match the same record.
var routineRules = []RoutineRule{
	{Category: "aksesoris kendaraan", NameAny: []string{"lampu rotary"}, Result: "Routine"},
	{Category: "alat hiburan", NameAny: []string{"shuttlecock", "cock"}, Result: "Routine"},
	{Category: "apd", NameAny: []string{"helm", "kacamata", "kaca mata", "rompi", "masker medis", "safety shoes", "tali", "backsupport"}, Result: "Routine"},
	{Category: "cetak", Result: "Non-Routine"},
	{Category: "container & part", Result: "Non-Routine"},
	{Category: "elektrikal", Staff: nonRoutineStaff, Result: "Non-Routine"},
	{Category: "karoseri ft", NameAny: []string{"filter"}, Result: "Routine"},
	{Category: "karoseri ft", NameAny: []string{"filter"}, NameExclude: true, Result: "Non-Routine"},
	{Category: "karoseri lt", Result: "Non-Routine"},
	{Category: "peralatan dapur", Result: "Non-Routine"},
	{Category: "peralatan shipping", NameAny: []string{"terpal"}, Result: "Routine"},
	{Category: "peralatan shipping", NameAny: []string{"terpal"}, NameExclude: true, Result: "Non-Routine"},
	{Category: "peralatan survey", NameAny: []string{"flagging tape"}, Result: "Routine"},
	{Category: "peralatan survey", NameAny: []string{"flagging tape"}, NameExclude: true, Result: "Non-Routine"},
	{Category: "telepon", Result: "Non-Routine"},
	{Category: "tire dt", Result: "Routine"},
	{Category: "tire innova", NameAny: []string{"delium"}, Result: "Routine"},
	{Category: "tire manhaul", NameAny: []string{"gt", "gajah tunggal"}, Result: "Routine"},
	{Category: "tire tl", Result: "Non-Routine"},
	{Category: "tire vb", Result: "Routine"},
	{Category: "radio ht, rig", Result: "Non-Routine"},
	{Category: "packaging", Result: "Routine"},
}

func (r RoutineRule) matches(category, itemName, staff string) bool {
	if category != r.Category {
		return false
	}
	if r.NameAny != nil {
		matched := false
		for _, alt := range r.NameAny {
			if strings.Contains(itemName, alt) {
				matched = true
				break
			}
		}
		if matched == r.NameExclude {
			return false
		}
	}
	if r.Staff != nil {
		if _, ok := r.Staff[staff]; !ok {
			return false
		}
	}
	return true
}

// ApplyRoutine runs the routine cascade over one record. The initial value
// comes from the raw Routine field; category, itemName and staff must be
// lower-cased by the caller.
func ApplyRoutine(initial, category, itemName, staff string) string {
	out := initial
	for _, r := range routineRules {
		if r.matches(category, itemName, staff) {
			out = r.Result
		}
	}
	return out
}
