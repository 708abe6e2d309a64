// internal/export/export.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prasetyadi/po-logbook/internal/domain"
)

const dateCellFormat = "2006-01-02"

// WriteXLSX writes the finalized table as a single-sheet workbook under dir.
// An empty filename gets a timestamped default. Returns the written path.
func WriteXLSX(t *domain.Table, dir, filename string) (string, error) {
	if filename == "" {
		filename = defaultFilename(time.Now())
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		filename += ".xlsx"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, filename)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return path, nil
}

// cellValue renders a table value for the sheet: nil stays an empty cell and
// dates render as plain calendar dates.
func cellValue(v interface{}) interface{} {
	if d, ok := v.(time.Time); ok {
		return d.Format(dateCellFormat)
	}
	return v
}

func defaultFilename(now time.Time) string {
	return fmt.Sprintf("procurement_data_%s.xlsx", now.Format("20060102_150405"))
}
