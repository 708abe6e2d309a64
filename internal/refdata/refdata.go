// internal/refdata/refdata.go
package refdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasetyadi/po-logbook/internal/dates"
)

// PICNorm carries manually corrected requisition dates for one requisition.
type PICNorm struct {
	UpdatedApproved  *time.Time
	UpdatedRequired  *time.Time
	BackgroundUpdate string
}

// Bundle holds every reference table indexed for lookup. All maps are built
// once per run and read-only during the transformation; duplicate keys keep
// the first occurrence.
type Bundle struct {
	PICNorm      map[string]PICNorm         // by requisition number
	Holidays     map[time.Time]struct{}     // non-workdays for the workday span
	Wilayah      map[string]string          // supplier location (lower) -> region (lower)
	Pulau        map[string]string          // region (lower) -> island
	JasaService  map[string]string          // item id + po number -> service flag
	Freight      map[string]string          // supplier -> freight type
	RARA         map[string]string          // po number -> freight type
	RYI          map[string]string          // po number -> freight type
	CostSaving   map[string]decimal.Decimal // item name + "-" + po number
	TimeDate     map[string]int             // po number -> allowance override (days)
	OnTimeNorm   map[string]struct{}        // po numbers forced delivery on-time
	NotCounted   map[string]struct{}        // po numbers excluded from scoring
	LogisticNorm map[string]float64         // po number -> logistic on-time value
}

// BuildPICNorm indexes the requisition date normalization table by
// requisition number.
func BuildPICNorm(t *Table) map[string]PICNorm {
	key := t.Col("Requisition Number")
	approved := t.Col("Updated Requisition Approved Date")
	required := t.Col("Updated Requisition Required Date")
	background := t.Col("Background Update")

	out := make(map[string]PICNorm, len(t.Rows))
	for _, row := range t.Rows {
		k := Cell(row, key)
		if k == "" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		out[k] = PICNorm{
			UpdatedApproved:  dates.Parse(Cell(row, approved)),
			UpdatedRequired:  dates.Parse(Cell(row, required)),
			BackgroundUpdate: Cell(row, background),
		}
	}
	return out
}

// BuildHolidays collects the non-workday dates.
func BuildHolidays(t *Table) map[time.Time]struct{} {
	col := t.Col("NONWORKDAYS")
	out := make(map[time.Time]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if d := dates.Parse(Cell(row, col)); d != nil {
			out[*d] = struct{}{}
		}
	}
	return out
}

// BuildLookup indexes valueCol by keyCol, first occurrence wins. Keys are
// trimmed; lowerKey/lowerVal additionally lower-case for case-insensitive
// joins.
func BuildLookup(t *Table, keyCol, valueCol string, lowerKey, lowerVal bool) map[string]string {
	ki := t.Col(keyCol)
	vi := t.Col(valueCol)
	out := make(map[string]string, len(t.Rows))
	for _, row := range t.Rows {
		k := Cell(row, ki)
		if lowerKey {
			k = strings.ToLower(k)
		}
		if k == "" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		v := Cell(row, vi)
		if lowerVal {
			v = strings.ToLower(v)
		}
		out[k] = v
	}
	return out
}

// BuildSet collects the distinct keys of keyCol.
func BuildSet(t *Table, keyCol string) map[string]struct{} {
	ki := t.Col(keyCol)
	out := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if k := Cell(row, ki); k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

// BuildIntMap indexes an integer column, first occurrence wins; rows whose
// value does not parse are skipped.
func BuildIntMap(t *Table, keyCol, valueCol string) map[string]int {
	ki := t.Col(keyCol)
	vi := t.Col(valueCol)
	out := make(map[string]int, len(t.Rows))
	for _, row := range t.Rows {
		k := Cell(row, ki)
		if k == "" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		v, err := strconv.Atoi(CleanID(Cell(row, vi)))
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

// BuildFloatMap indexes a numeric column, first occurrence wins.
func BuildFloatMap(t *Table, keyCol, valueCol string) map[string]float64 {
	ki := t.Col(keyCol)
	vi := t.Col(valueCol)
	out := make(map[string]float64, len(t.Rows))
	for _, row := range t.Rows {
		k := Cell(row, ki)
		if k == "" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		raw := strings.ReplaceAll(Cell(row, vi), ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

// BuildCostSaving indexes cost-saving overrides by the Item Name + PO Number
// composite key.
func BuildCostSaving(t *Table) map[string]decimal.Decimal {
	name := t.Col("Item Name")
	po := t.Col("PO Number")
	value := t.Col("Cost Saving")
	out := make(map[string]decimal.Decimal, len(t.Rows))
	for _, row := range t.Rows {
		k := CostKey(Cell(row, name), Cell(row, po))
		if k == "-" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		raw := strings.ReplaceAll(Cell(row, value), ",", "")
		v, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

// BuildJasaService indexes the service flag by the Item ID + PO Number
// composite key, with both parts cleaned of spreadsheet numeric artifacts.
func BuildJasaService(t *Table) map[string]string {
	item := t.Col("Item ID")
	po := t.Col("PO Number")
	flag := t.Col("JS_SERVICE")
	out := make(map[string]string, len(t.Rows))
	for _, row := range t.Rows {
		k := ServiceKey(Cell(row, item), Cell(row, po))
		if k == "" {
			continue
		}
		if _, dup := out[k]; dup {
			continue
		}
		out[k] = Cell(row, flag)
	}
	return out
}

// CostKey builds the Item Name + PO Number composite override key.
func CostKey(itemName, poNumber string) string {
	return itemName + "-" + poNumber
}

// ServiceKey builds the cleaned Item ID + PO Number composite merge key.
func ServiceKey(itemID, poNumber string) string {
	return CleanID(itemID) + CleanID(poNumber)
}
