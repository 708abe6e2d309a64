// internal/loader/reference.go
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prasetyadi/po-logbook/internal/config"
	"github.com/prasetyadi/po-logbook/internal/refdata"
)

// LoadReferences loads every reference table and builds the lookup bundle.
// Tables come from the published spreadsheet when a sheet ID is configured,
// otherwise from <name>.csv files under the reference directory. A table
// that cannot be loaded is fatal: the transformation has no partial mode.
func LoadReferences(ctx context.Context, src config.SourceConfig) (*refdata.Bundle, error) {
	tables := make(map[string]*refdata.Table)
	for _, name := range []string{
		config.RefPICNorm, config.RefOnTimeNorm, config.RefNotCounted,
		config.RefLogisticNorm, config.RefNonWorkdays, config.RefWilayah,
		config.RefPulau, config.RefTimeDate, config.RefCostSaving,
		config.RefJasaService, config.RefFreight, config.RefRARA, config.RefRYI,
	} {
		t, err := loadTable(ctx, src, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load reference table %s: %w", name, err)
		}
		tables[name] = t
	}

	return &refdata.Bundle{
		PICNorm:      refdata.BuildPICNorm(tables[config.RefPICNorm]),
		Holidays:     refdata.BuildHolidays(tables[config.RefNonWorkdays]),
		Wilayah:      refdata.BuildLookup(tables[config.RefWilayah], "Supplier Location", "To", true, true),
		Pulau:        refdata.BuildLookup(tables[config.RefPulau], "Wilayah", "Pulau", true, false),
		JasaService:  refdata.BuildJasaService(tables[config.RefJasaService]),
		Freight:      refdata.BuildLookup(tables[config.RefFreight], "Supplier", "Freight Type", false, false),
		RARA:         refdata.BuildLookup(tables[config.RefRARA], "PO Number", "Freight Type", false, false),
		RYI:          refdata.BuildLookup(tables[config.RefRYI], "PO Number", "Freight Type", false, false),
		CostSaving:   refdata.BuildCostSaving(tables[config.RefCostSaving]),
		TimeDate:     refdata.BuildIntMap(tables[config.RefTimeDate], "PO Number", "timedate"),
		OnTimeNorm:   refdata.BuildSet(tables[config.RefOnTimeNorm], "PO Number"),
		NotCounted:   refdata.BuildSet(tables[config.RefNotCounted], "PO Number"),
		LogisticNorm: refdata.BuildFloatMap(tables[config.RefLogisticNorm], "PO Number", "Value"),
	}, nil
}

func loadTable(ctx context.Context, src config.SourceConfig, name string) (*refdata.Table, error) {
	if src.SheetID != "" {
		gid, ok := src.GIDs[name]
		if !ok {
			return nil, fmt.Errorf("no gid configured for table %s", name)
		}
		return fetchCSV(ctx, publishedCSVURL(src.SheetID, gid))
	}
	return readCSVFile(filepath.Join(src.ReferenceDir, name+".csv"))
}

func publishedCSVURL(sheetID, gid string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%s", sheetID, gid)
}

func fetchCSV(ctx context.Context, url string) (*refdata.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}
	return parseCSV(resp.Body)
}

func readCSVFile(path string) (*refdata.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) (*refdata.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	return &refdata.Table{Header: records[0], Rows: records[1:]}, nil
}
