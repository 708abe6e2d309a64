package domain

// Table is a finalized record set in the fixed reporting column order.
// Nil cells render as empty (the null marker) on export.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}
