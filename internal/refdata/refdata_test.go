package refdata

import (
	"testing"
	"time"
)

func TestTableCol(t *testing.T) {
	table := &Table{Header: []string{"PO Number", "Freight Type", " timedate "}}

	if got := table.Col("po_number"); got != 0 {
		t.Errorf("Col(po_number) = %d, want 0", got)
	}
	if got := table.Col("FREIGHT TYPE"); got != 1 {
		t.Errorf("Col(FREIGHT TYPE) = %d, want 1", got)
	}
	if got := table.Col("timedate"); got != 2 {
		t.Errorf("Col(timedate) = %d, want 2", got)
	}
	if got := table.Col("missing", "also missing"); got != -1 {
		t.Errorf("Col(missing) = %d, want -1", got)
	}
}

func TestCleanID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"18640.0", "18640"},
		{" 18640.0 ", "18640"},
		{"20/CB/012024", "20/CB/012024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanID(tt.in); got != tt.want {
			t.Errorf("CleanID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildLookupFirstOccurrenceWins(t *testing.T) {
	table := &Table{
		Header: []string{"PO Number", "Freight Type"},
		Rows: [][]string{
			{"PO-1", "Sea Freight"},
			{"PO-1", "Air Freight"},
			{"PO-2", "Land Freight"},
			{"", "Ignored"},
		},
	}
	got := BuildLookup(table, "PO Number", "Freight Type", false, false)
	if len(got) != 2 {
		t.Fatalf("lookup size = %d, want 2", len(got))
	}
	if got["PO-1"] != "Sea Freight" {
		t.Errorf("duplicate key kept %q, want the first occurrence", got["PO-1"])
	}
}

func TestBuildLookupLowerCasing(t *testing.T) {
	table := &Table{
		Header: []string{"Supplier Location", "To"},
		Rows:   [][]string{{" Jakarta Barat ", "DKI Jakarta"}},
	}
	got := BuildLookup(table, "Supplier Location", "To", true, true)
	if got["jakarta barat"] != "dki jakarta" {
		t.Errorf("lookup = %v, want lower-cased key and value", got)
	}
}

func TestBuildPICNorm(t *testing.T) {
	table := &Table{
		Header: []string{"Requisition Number", "Updated Requisition Approved Date", "Updated Requisition Required Date", "Background Update"},
		Rows: [][]string{
			{"REQ-1", "12/03/2025", "20/03/2025", "revisi tanggal"},
			{"REQ-1", "01/01/2025", "", "duplicate, ignored"},
			{"REQ-2", "not a date", "", ""},
		},
	}
	got := BuildPICNorm(table)

	norm, ok := got["REQ-1"]
	if !ok {
		t.Fatal("REQ-1 missing from index")
	}
	want := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	if norm.UpdatedApproved == nil || !norm.UpdatedApproved.Equal(want) {
		t.Errorf("UpdatedApproved = %v, want %v (first occurrence)", norm.UpdatedApproved, want)
	}
	if norm.BackgroundUpdate != "revisi tanggal" {
		t.Errorf("BackgroundUpdate = %q", norm.BackgroundUpdate)
	}

	if norm2 := got["REQ-2"]; norm2.UpdatedApproved != nil {
		t.Errorf("unparseable date should index as nil, got %v", norm2.UpdatedApproved)
	}
}

func TestBuildIntAndFloatMaps(t *testing.T) {
	ints := BuildIntMap(&Table{
		Header: []string{"PO Number", "timedate"},
		Rows:   [][]string{{"PO-1", "20"}, {"PO-2", "x"}},
	}, "PO Number", "timedate")
	if v, ok := ints["PO-1"]; !ok || v != 20 {
		t.Errorf("int map PO-1 = %v (%v)", v, ok)
	}
	if _, ok := ints["PO-2"]; ok {
		t.Error("unparseable int row should be skipped")
	}

	floats := BuildFloatMap(&Table{
		Header: []string{"PO Number", "Value"},
		Rows:   [][]string{{"PO-1", "0.5"}, {"PO-2", "1,000"}},
	}, "PO Number", "Value")
	if floats["PO-1"] != 0.5 {
		t.Errorf("float map PO-1 = %v", floats["PO-1"])
	}
	if floats["PO-2"] != 1000 {
		t.Errorf("comma-grouped value = %v, want 1000", floats["PO-2"])
	}
}

func TestBuildCostSavingAndServiceKeys(t *testing.T) {
	cost := BuildCostSaving(&Table{
		Header: []string{"Item Name", "PO Number", "Cost Saving"},
		Rows:   [][]string{{"Solar Industri", "PO-1", "1,500,000"}},
	})
	v, ok := cost[CostKey("Solar Industri", "PO-1")]
	if !ok || v.IntPart() != 1500000 {
		t.Fatalf("cost saving = %v (%v)", v, ok)
	}

	js := BuildJasaService(&Table{
		Header: []string{"Item ID", "PO Number", "JS_SERVICE"},
		Rows:   [][]string{{"18640.0", "PO-1", "Jasa"}},
	})
	if js[ServiceKey("18640", "PO-1")] != "Jasa" {
		t.Errorf("service flag not found under cleaned composite key: %v", js)
	}
}
