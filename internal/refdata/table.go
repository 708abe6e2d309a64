// internal/refdata/table.go
package refdata

import "strings"

// Table is a raw reference table as loaded: a header row plus string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

// Col returns the index of the first header cell matching any of the given
// names, ignoring case, spacing and punctuation. Returns -1 when absent.
func (t *Table) Col(names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, h := range t.Header {
		if _, ok := targets[normalizeColumnName(h)]; ok {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at idx, or "" when the row is short or the
// index is missing.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// CleanID normalizes identifier text that round-tripped through a
// spreadsheet numeric cell (e.g. "18640.0" -> "18640").
func CleanID(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ".0"))
}
