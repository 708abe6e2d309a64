package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasetyadi/po-logbook/internal/domain"
	"github.com/prasetyadi/po-logbook/internal/refdata"
)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func f(v float64) *float64 { return &v }

// fullLine is a line with enough raw fields populated to drive every step.
func fullLine(po, item string) *domain.Line {
	return &domain.Line{
		RequisitionType:          "Standard",
		ItemID:                   item,
		ItemName:                 "Bearing 6204",
		ItemCategory:             "Spare Part",
		Department:               "LAR-PLANT",
		Unit:                     "PCS",
		ExchangeRate:             f(1),
		POPrice:                  f(200),
		QtyOrder:                 f(10),
		POSubTotal:               f(2000),
		JumlahPPN:                f(220),
		QtyReceived:              f(10),
		POReceiveLocation:        "LAR",
		POSubmitDate:             day(2025, time.January, 14),
		PORequiredDate:           day(2025, time.February, 10),
		POApprovalDate:           day(2025, time.January, 16),
		ReceivePODate:            day(2025, time.February, 5),
		PONumber:                 po,
		Supplier:                 "PT Maju Jaya",
		SupplierLocation:         "Jakarta Barat",
		TermOfPayment:            "Tempo 30 hari",
		RequisitionNumber:        "REQ-" + po,
		RequisitionApprovedDate:  day(2025, time.January, 10),
		RequisitionRequiredDate:  day(2025, time.February, 9),
		RequisitionSubTotal:      f(2100),
		Routine:                  "Routine",
		Urgent:                   "Normal",
		ProcurementName:          "Joko",
		QtyShipped:               f(10),
		TLQtyReceived:            f(10),
		LocationTLReceived:       "LAR",
		FinalDestinationLocation: "LAR",
	}
}

func TestValueEligibility(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{})

	excluded1 := fullLine("PO-A", "1")
	excluded1.ItemCategory = "ATK"
	excluded2 := fullLine("PO-A", "2")
	excluded2.ItemCategory = "ATK"

	mixed1 := fullLine("PO-B", "3")
	mixed1.ItemCategory = "Spare Part"
	mixed2 := fullLine("PO-B", "4")
	mixed2.ItemCategory = "Kontrak"

	plain1 := fullLine("PO-C", "5")
	plain2 := fullLine("PO-C", "6")

	lines := []*domain.Line{excluded1, excluded2, mixed1, mixed2, plain1, plain2}
	p.classifyLines(lines)
	p.markValueEligibility(lines)

	// A fully excluded PO keeps exactly one counted line: the first.
	if excluded1.Value != 1 || excluded2.Value != 0 {
		t.Errorf("excluded PO values = %d,%d; want 1,0", excluded1.Value, excluded2.Value)
	}
	// One excluded line zeroes the whole PO before restoration.
	if mixed1.Value != 1 || mixed2.Value != 0 {
		t.Errorf("mixed PO values = %d,%d; want 1,0", mixed1.Value, mixed2.Value)
	}
	if plain1.Value != 1 || plain2.Value != 1 {
		t.Errorf("plain PO values = %d,%d; want 1,1", plain1.Value, plain2.Value)
	}

	for _, l := range lines {
		if l.Value != 0 && l.Value != 1 {
			t.Fatalf("VALUE out of domain: %d", l.Value)
		}
	}
	if excluded1.UniqueCountPO != 1 || excluded2.UniqueCountPO != 0 {
		t.Errorf("unique count markers = %d,%d; want 1,0", excluded1.UniqueCountPO, excluded2.UniqueCountPO)
	}
}

func TestConsignmentExcludesPO(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{})
	a := fullLine("PO-A", "1")
	a.RequisitionType = "Consignment"
	b := fullLine("PO-A", "2")

	lines := []*domain.Line{a, b}
	p.classifyLines(lines)
	p.markValueEligibility(lines)

	if a.Value != 1 || b.Value != 0 {
		t.Errorf("consignment PO values = %d,%d; want 1,0 after restoration", a.Value, b.Value)
	}
}

func TestTimeMetrics(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{})
	l := fullLine("PO-1", "1")
	l.UpdatedReqApprovedDate = day(2025, time.January, 12)

	lines := []*domain.Line{l}
	p.classifyLines(lines)
	p.markValueEligibility(lines)
	p.timeMetrics(lines)

	if l.PRPO == nil || *l.PRPO != 2 {
		t.Errorf("PR - PO = %v, want 2", l.PRPO)
	}
	if l.POSubPOApp == nil || *l.POSubPOApp != 2 {
		t.Errorf("PO SUB - PO APP = %v, want 2", l.POSubPOApp)
	}
	if l.PurchasingDuration == nil || *l.PurchasingDuration != 4 {
		t.Errorf("Purchasing_Duration = %v, want 4", l.PurchasingDuration)
	}
	// Joko is a site buyer with a 3-day target
	if l.StatusPurchasing == nil || *l.StatusPurchasing != "Late" {
		t.Errorf("STATUS_Purchasing = %v, want Late", l.StatusPurchasing)
	}
	if l.OnTimePctPurchasing == nil || *l.OnTimePctPurchasing != 0 {
		t.Errorf("ON_TIME%%_Purchasing = %v, want 0", l.OnTimePctPurchasing)
	}
}

func TestPRPOClipsNegative(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{})
	l := fullLine("PO-1", "1")
	l.UpdatedReqApprovedDate = day(2025, time.January, 20) // after PO submit

	lines := []*domain.Line{l}
	p.classifyLines(lines)
	p.markValueEligibility(lines)
	p.timeMetrics(lines)

	if l.PRPO == nil || *l.PRPO != 0 {
		t.Errorf("negative PR - PO should clip to 0, got %v", l.PRPO)
	}
}

func TestBudgetVariance(t *testing.T) {
	dec := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}

	budget, pct := budgetVariance(dec(1000), dec(800))
	if budget == nil || !budget.Equal(decimal.NewFromInt(200)) {
		t.Errorf("budget = %v, want 200", budget)
	}
	if pct == nil || !pct.Equal(decimal.NewFromFloat(0.8)) {
		t.Errorf("budget%% = %v, want 0.8", pct)
	}

	_, pct = budgetVariance(dec(1000), dec(2000))
	if pct == nil || !pct.Equal(decimal.NewFromInt(1)) {
		t.Errorf("overspend ratio should clip at 1, got %v", pct)
	}

	_, pct = budgetVariance(dec(0), dec(500))
	if pct == nil || !pct.Equal(decimal.NewFromInt(1)) {
		t.Errorf("zero requisition with spend should give 1, got %v", pct)
	}

	_, pct = budgetVariance(dec(0), dec(0))
	if pct != nil {
		t.Errorf("zero over zero should give nil, got %v", pct)
	}

	budget, pct = budgetVariance(nil, dec(500))
	if budget != nil || pct != nil {
		t.Errorf("missing requisition total should propagate nil, got %v %v", budget, pct)
	}
}

func TestStatusRecDistinguishesMissingFromExcluded(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{NotCounted: map[string]struct{}{"PO-X": {}}})

	missing := fullLine("PO-1", "1")
	missing.ReceivePODate = nil // no receive date -> REC missing
	excluded := fullLine("PO-X", "2")

	lines := []*domain.Line{missing, excluded}
	p.classifyLines(lines)
	p.markValueEligibility(lines)
	p.timeMetrics(lines)
	p.logisticsStatus(lines)
	p.applyOverrides(lines)

	if missing.StatusRec == nil || *missing.StatusRec != "" {
		t.Errorf("missing REC should keep an empty status, got %v", missing.StatusRec)
	}
	if excluded.StatusRec != nil {
		t.Errorf("not-counted PO should null the status, got %v", *excluded.StatusRec)
	}
	if excluded.OnTime != nil || excluded.Late != nil || excluded.OnTimePct != nil {
		t.Error("not-counted PO should null every on-time flag")
	}
}

func TestOnTimeOverrideTable(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{OnTimeNorm: map[string]struct{}{"PO-1": {}}})

	l := fullLine("PO-1", "1")
	l.ReceivePODate = day(2025, time.June, 1) // far past required -> Late

	lines := []*domain.Line{l}
	p.classifyLines(lines)
	p.markValueEligibility(lines)
	p.timeMetrics(lines)
	p.logisticsStatus(lines)

	if l.StatusRec == nil || *l.StatusRec != "Late" {
		t.Fatalf("precondition: status before override = %v, want Late", l.StatusRec)
	}

	p.applyOverrides(lines)
	if l.StatusRec == nil || *l.StatusRec != "On Time" {
		t.Errorf("override table should force On Time, got %v", l.StatusRec)
	}
	if l.OnTime == nil || *l.OnTime != 1 || l.Late != nil {
		t.Errorf("override flags = %v/%v, want 1/nil", l.OnTime, l.Late)
	}
}

func TestPOReceiveRollup(t *testing.T) {
	p := NewProcessor(&refdata.Bundle{})

	a1 := fullLine("PO-A", "1")
	a2 := fullLine("PO-A", "2")
	a2.QtyReceived = f(4) // short receipt

	b1 := fullLine("PO-B", "3")
	b2 := fullLine("PO-B", "4")

	lines := []*domain.Line{a1, a2, b1, b2}
	p.classifyLines(lines)
	p.markValueEligibility(lines)
	p.timeMetrics(lines)
	p.logisticsStatus(lines)
	p.rollupPOReceive(lines)

	if a1.POReceive != "" || a2.POReceive != "" {
		t.Errorf("partially received PO rollup = %q/%q, want empty", a1.POReceive, a2.POReceive)
	}
	if b1.POReceive != "Fully Received" || b2.POReceive != "Fully Received" {
		t.Errorf("fully received PO rollup = %q/%q", b1.POReceive, b2.POReceive)
	}
}

func TestCostSavingOverridesAndPatch(t *testing.T) {
	saving := decimal.NewFromInt(250000)
	p := NewProcessor(&refdata.Bundle{
		CostSaving: map[string]decimal.Decimal{
			refdata.CostKey("Bearing 6204", "PO-1"): saving,
		},
	})

	fromTable := fullLine("PO-1", "1")
	patched := fullLine("20/CB/012024", "18640.0")
	patched.PONumber = "20/CB/012024"
	patched.ItemID = "18640.0"

	p.applyCostSaving([]*domain.Line{fromTable, patched})

	if fromTable.CostSaving == nil || !fromTable.CostSaving.Equal(saving) {
		t.Errorf("cost saving from table = %v, want %v", fromTable.CostSaving, saving)
	}
	if patched.CostSaving == nil || !patched.CostSaving.Equal(decimal.NewFromInt(674957950)) {
		t.Errorf("patched cost saving = %v, want 674957950", patched.CostSaving)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	bundle := &refdata.Bundle{
		PICNorm: map[string]refdata.PICNorm{
			"REQ-PO-1": {UpdatedApproved: day(2025, time.January, 12)},
		},
		OnTimeNorm: map[string]struct{}{"PO-2": {}},
		TimeDate:   map[string]int{"PO-1": 20},
	}

	build := func() []*domain.Line {
		l1 := fullLine("PO-1", "1")
		l2 := fullLine("PO-2", "2")
		l2.ReceivePODate = day(2025, time.June, 1)
		return []*domain.Line{l1, l2}
	}

	p := NewProcessor(bundle)

	first := build()
	p.Process(first)
	once := Finalize(first)

	// Same records, processed twice over.
	again := build()
	p.Process(again)
	p.Process(again)
	twice := Finalize(again)

	if !reflect.DeepEqual(once, twice) {
		t.Error("processing twice changed the output")
	}
}

func TestFinalizeSchema(t *testing.T) {
	if len(outputSchema) != 123 {
		t.Fatalf("schema has %d columns, want 123", len(outputSchema))
	}
	if outputSchema[0].Name != "Requisition Type" {
		t.Errorf("first column = %q", outputSchema[0].Name)
	}
	if outputSchema[len(outputSchema)-1].Name != "_Routine" {
		t.Errorf("last column = %q", outputSchema[len(outputSchema)-1].Name)
	}

	seen := map[string]bool{}
	for _, col := range outputSchema {
		if seen[col.Name] {
			t.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
	}

	// Nil pointers project to nil cells.
	table := Finalize([]*domain.Line{{}})
	if len(table.Rows) != 1 || len(table.Rows[0]) != len(table.Columns) {
		t.Fatal("row shape does not match schema")
	}
	idx := -1
	for i, name := range table.Columns {
		if name == "LEAD TIME" {
			idx = i
		}
	}
	if idx < 0 || table.Rows[0][idx] != nil {
		t.Errorf("missing LEAD TIME should render nil, got %v", table.Rows[0][idx])
	}
}
