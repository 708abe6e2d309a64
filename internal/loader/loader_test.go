package loader

import (
	"strings"
	"testing"
)

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"PO Number", "ponumber"},
		{"po_number", "ponumber"},
		{" Qty Order ", "qtyorder"},
		{"PO Disc/Cost", "podisccost"},
		{"R-R SITE", "rrsite"},
	}
	for _, tt := range tests {
		if got := normalizeColumnName(tt.in); got != tt.want {
			t.Errorf("normalizeColumnName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2500", 2500, true},
		{"1,250,000", 1250000, true},
		{"0.5", 0.5, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got := parseFloat(tt.in)
		if tt.ok {
			if got == nil || *got != tt.want {
				t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
			continue
		}
		if got != nil {
			t.Errorf("parseFloat(%q) = %v, want nil", tt.in, *got)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	got := parseDecimal("1,500,000.25")
	if got == nil || got.String() != "1500000.25" {
		t.Errorf("parseDecimal = %v, want 1500000.25", got)
	}
	if got := parseDecimal("  "); got != nil {
		t.Errorf("blank cell = %v, want nil", got)
	}
}

func TestParseCSV(t *testing.T) {
	in := "PO Number,Freight Type\nPO-1,Sea Freight\nPO-2,\"Land, Combined\"\n"
	table, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(table.Header) != 2 || table.Header[0] != "PO Number" {
		t.Fatalf("header = %v", table.Header)
	}
	if len(table.Rows) != 2 || table.Rows[1][1] != "Land, Combined" {
		t.Fatalf("rows = %v", table.Rows)
	}

	if _, err := parseCSV(strings.NewReader("")); err == nil {
		t.Error("empty input should fail: the transformation has no partial mode")
	}
}

func TestIsEmptyRow(t *testing.T) {
	if !isEmptyRow([]string{"", "  ", ""}) {
		t.Error("blank cells should read as an empty row")
	}
	if isEmptyRow([]string{"", "PO-1"}) {
		t.Error("a populated cell should not read as empty")
	}
}

func TestPublishedCSVURL(t *testing.T) {
	got := publishedCSVURL("abc123", "42")
	want := "https://docs.google.com/spreadsheets/d/abc123/gviz/tq?tqx=out:csv&gid=42"
	if got != want {
		t.Errorf("publishedCSVURL = %q, want %q", got, want)
	}
}
