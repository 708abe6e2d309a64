// internal/pipeline/process.go
package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prasetyadi/po-logbook/internal/classify"
	"github.com/prasetyadi/po-logbook/internal/dates"
	"github.com/prasetyadi/po-logbook/internal/domain"
	"github.com/prasetyadi/po-logbook/internal/refdata"
	"github.com/prasetyadi/po-logbook/internal/rules"
	"github.com/prasetyadi/po-logbook/pkg/logger"
)

// Processor runs the full derivation over the PO line records. It holds no
// per-run state: running it twice over freshly loaded input yields the same
// output.
type Processor struct {
	refs *refdata.Bundle
	log  zerolog.Logger
}

func NewProcessor(refs *refdata.Bundle) *Processor {
	return &Processor{refs: refs, log: logger.Log.With().Str("component", "pipeline").Logger()}
}

// Process derives every computed column in order. Steps later in the chain
// read columns produced by earlier ones, so the order is load-bearing.
func (p *Processor) Process(lines []*domain.Line) {
	p.log.Info().Int("lines", len(lines)).Msg("running step 1: date normalization and classification")
	p.classifyLines(lines)
	p.markValueEligibility(lines)

	p.log.Info().Msg("running step 2: time-based calculations")
	p.timeMetrics(lines)

	p.log.Info().Msg("running step 3: logistics and receiving status")
	p.logisticsStatus(lines)

	p.log.Info().Msg("running step 4: fully received po rollup")
	p.rollupPOReceive(lines)

	p.log.Info().Msg("running step 5: service flag merge")
	p.mergeServiceFlags(lines)

	p.log.Info().Msg("running step 6: manual on-time normalizations")
	p.applyOverrides(lines)

	p.log.Info().Msg("running step 7: cost saving updates")
	p.applyCostSaving(lines)

	p.log.Info().Msg("running step 8: routine categorization")
	p.applyRoutine(lines)

	p.log.Info().Msg("processing complete")
}

// classifyLines covers the per-line work of step 1: the requisition date
// priority merge, location/urgency flags, supplier geography, and the plain
// string classifiers.
func (p *Processor) classifyLines(lines []*domain.Line) {
	for _, l := range lines {
		l.ExtractedApprovedDate = classify.FinalizationDate(l.ReqProgressStatus)

		if norm, ok := p.refs.PICNorm[l.RequisitionNumber]; ok {
			l.UpdatedReqApprovedDate = norm.UpdatedApproved
			l.UpdatedReqRequiredDate = norm.UpdatedRequired
			l.BackgroundUpdate = norm.BackgroundUpdate
		}

		// Priority: normalization table, then the date extracted from the
		// progress text, then the raw requisition date.
		l.UsedApprovedDate = coalesceDate(l.UpdatedReqApprovedDate, l.ExtractedApprovedDate, l.RequisitionApprovedDate)
		l.UsedRequiredDate = coalesceDate(l.UpdatedReqRequiredDate, l.RequisitionRequiredDate)

		l.LOC = classify.Location(l.Department)
		l.LeadTime = leadTimeDays(l.UsedApprovedDate, l.UsedRequiredDate)
		l.UrgentNormal = rules.UrgentNormal(l.RequisitionType, l.LOC, l.LeadTime)

		l.UrgentStar = nil
		if l.Urgent == "Normal" && l.UrgentNormal == "Urgent" {
			l.UrgentStar = ptr("Urgent*")
		}
		l.NormalFlag = nil
		l.Urgent2 = nil
		switch l.UrgentNormal {
		case "Normal":
			l.NormalFlag = ptr("Normal")
		case "Urgent":
			l.Urgent2 = ptr("Urgent")
		}
		if l.UrgentStar != nil {
			l.UrgentFinal = *l.UrgentStar
		} else {
			l.UrgentFinal = l.UrgentNormal
		}

		l.Wilayah = nil
		l.Pulau = nil
		supplierLoc := strings.ToLower(strings.TrimSpace(l.SupplierLocation))
		if region, ok := p.refs.Wilayah[supplierLoc]; ok {
			l.Wilayah = ptr(region)
			if island, ok := p.refs.Pulau[region]; ok {
				l.Pulau = ptr(island)
			}
		}

		l.DepartmentName = classify.Department(l.Department)
		l.Divisi = classify.Division(l.Department)
		l.SupplierType = classify.SupplierType(l.Supplier)
		l.TOP = classify.PaymentTerm(l.TermOfPayment)
		l.CategoryMerged = classify.MergedCategory(l.ItemCategory, l.Unit)
		l.FinalItemID = l.ItemID
	}
}

// Categories whose POs never count toward delivery performance.
var excludedValueCategories = map[string]struct{}{
	"Kontrak":             {},
	"Seragam":             {},
	"Jasa Logistik":       {},
	"Jasa/Service":        {},
	"ATK":                 {},
	"Cetak":               {},
	"Makanan dan Minuman": {},
	"Seragam Security":    {},
	"x Kebutuhan Kantin":  {},
	"x Kebutuhan Mess":    {},
	"x Medical dan Obat":  {},
}

var xcmgPickupKeywords = []string{"Pengambilan", "Berita acara pengeluaran", "BA", "Consignment"}

func categoryValueMark(l *domain.Line) int {
	category := strings.TrimSpace(l.ItemCategory)
	if _, ok := excludedValueCategories[category]; ok {
		return 1
	}
	if strings.TrimSpace(l.RequisitionType) == "Consignment" {
		return 1
	}
	if category == "APD" && strings.Contains(strings.ToLower(strings.TrimSpace(l.ItemName)), "sepatu") {
		return 1
	}
	return 0
}

func categoryValueXCMG(l *domain.Line) int {
	if l.RequisitionType == "Consignment" || !strings.Contains(l.ItemCategory, "XCMG") {
		return 0
	}
	for _, kw := range xcmgPickupKeywords {
		if strings.Contains(l.BackgroundNeeds, kw) {
			return 1
		}
	}
	return 0
}

// markValueEligibility zeroes VALUE for every line of a PO that carries an
// excluded category or the XCMG pickup exception, then restores the PO's
// first line so the PO still counts once. Also marks the first line of each
// PO for unique counting.
func (p *Processor) markValueEligibility(lines []*domain.Line) {
	poExcluded := make(map[string]bool)
	for _, l := range lines {
		l.CategoryValueMark = categoryValueMark(l)
		l.CategoryValueXCMG = categoryValueXCMG(l)
		if l.CategoryValueMark == 1 || l.CategoryValueXCMG == 1 {
			poExcluded[l.PONumber] = true
		}
	}

	valueSum := make(map[string]int)
	firstLine := make(map[string]*domain.Line)
	for _, l := range lines {
		l.Value = 1
		if poExcluded[l.PONumber] {
			l.Value = 0
		}
		valueSum[l.PONumber] += l.Value

		l.UniqueCountPO = 0
		if _, seen := firstLine[l.PONumber]; !seen {
			firstLine[l.PONumber] = l
			l.UniqueCountPO = 1
		}
	}

	for po, first := range firstLine {
		if valueSum[po] == 0 {
			first.Value = 1
		}
	}
}

// timeMetrics covers step 2: the TIME DATE baseline, the per-stage day
// counts, financial variance, and the purchasing on-time status.
func (p *Processor) timeMetrics(lines []*domain.Line) {
	for _, l := range lines {
		daysToAdd := dates.AllowanceDays(l.LOC, l.ItemCategory)
		if override, ok := p.refs.TimeDate[l.PONumber]; ok {
			daysToAdd = override
		}
		l.TimeDate = addDays(l.UsedApprovedDate, daysToAdd)

		calculable := l.Value == 1 &&
			l.RequisitionType != "Consignment" &&
			l.ItemCategory != "Jasa Logistik" &&
			l.ItemCategory != "Solar"

		l.PRPO, l.POSubPOApp, l.PRPOSubWD = nil, nil, nil
		l.PurchasingDuration = nil
		if calculable {
			// The purchasing stages start from the normalization-table date,
			// not the merged one; untouched requisitions get no PR - PO.
			l.PRPO = clipNonNegative(dates.DaysExcludingBlackout(l.UpdatedReqApprovedDate, l.POSubmitDate))
			l.POSubPOApp = dates.DaysExcludingBlackout(l.POSubmitDate, l.POApprovalDate)
			if l.UsedApprovedDate != nil && l.POSubmitDate != nil {
				wd := dates.BusinessDaySpan(*l.UsedApprovedDate, *l.POSubmitDate, p.refs.Holidays)
				l.PRPOSubWD = &wd
			}
			l.PurchasingDuration = dates.DaysExcludingBlackout(l.UpdatedReqApprovedDate, l.POApprovalDate)
		}

		l.PORPO, l.RRSite = nil, nil
		receivable := l.PRPO != nil && l.ReceivePODate != nil && l.ItemCategory != "Jasa/Service"
		if receivable {
			l.PORPO = dates.DaysExcludingBlackout(l.POApprovalDate, l.ReceivePODate)
		}
		if receivable && l.LocationTLReceived != "" && l.LOC != "HO" {
			l.RRSite = dates.DaysExcludingBlackout(l.ReceivePODate, l.ReceivedTLDate)
		}

		l.RequisitionTotal = requisitionTotal(l)
		l.POTotal = poTotal(l)
		l.Budget, l.BudgetPct = budgetVariance(l.RequisitionTotal, l.POTotal)

		l.RPOTLC, l.TLCShip, l.ShipRSite = nil, nil, nil
		if l.RRSite != nil {
			l.RPOTLC = calendarDays(l.ReceivePODate, l.CreatedTLDate)
			l.TLCShip = calendarDays(l.CreatedTLDate, l.ShippedDate)
			l.ShipRSite = calendarDays(l.ShippedDate, l.ReceivedTLDate)
		}

		l.StatusPurchasing = rules.PurchasingStatus(l.ProcurementName, l.PurchasingDuration)
		l.OnTimePurchasing, l.LatePurchasing, l.OnTimePctPurchasing = onTimeFlags(l.StatusPurchasing)
	}
}

// logisticsStatus covers step 3: freight typing, the receiving on-time
// status, and the transfer-list state machine.
func (p *Processor) logisticsStatus(lines []*domain.Line) {
	for _, l := range lines {
		l.LogisticFreight = ""
		if l.ItemCategory == "Jasa Logistik" {
			l.LogisticFreight = rules.Freight(l.Supplier, l.PONumber, p.refs.Freight, p.refs.RARA, p.refs.RYI)
		}

		l.FarthestRequiredDate = maxDate(l.PORequiredDate, l.RequisitionRequiredDate, l.TimeDate)
		l.UsedReceiveDate = coalesceDate(l.ReceivePODate, l.ReceivedTLDate)

		l.REC = nil
		if l.Value == 1 {
			l.REC = dates.DaysExcludingBlackout(l.FarthestRequiredDate, l.UsedReceiveDate)
		}

		switch {
		case l.REC == nil:
			l.StatusRec = ptr("")
		case l.RequisitionType == "Consignment":
			l.StatusRec = ptr("On Time")
		case *l.REC >= 1:
			l.StatusRec = ptr("Late")
		default:
			l.StatusRec = ptr("On Time")
		}

		// Service and fuel lines are delivered on paper, never tracked.
		if l.ItemCategory == "Jasa/Service" || l.ItemCategory == "Solar" {
			l.StatusRec = ptr("On Time")
		}
		l.OnTime, l.Late, l.OnTimePct = onTimeFlags(l.StatusRec)
		l.OnTimePctOriginalPurchasing = copyFloat(l.OnTimePct)

		l.LogisticalProcess = boolToInt(stringsDiffer(l.FinalDestinationLocation, l.POReceiveLocation))
		l.ReceiveIndicatorPO = boolToInt(floatsEqual(l.QtyOrder, l.QtyReceived))
		switch {
		case l.QtyReceived != nil && *l.QtyReceived == 0:
			l.ReceivePOStatus = "PO Not Received"
		case floatsEqual(l.QtyOrder, l.QtyReceived):
			l.ReceivePOStatus = "Fully Received"
		default:
			l.ReceivePOStatus = "Partial Received"
		}
		l.TLNumberFlag = boolToInt(l.TLNumber != "")

		l.ReceiveIndicatorLogistic = 0
		if l.LogisticalProcess == 1 {
			l.ReceiveIndicatorLogistic = boolToInt(
				floatsEqual(l.TLQtyReceived, l.QtyShipped) && floatsEqual(l.QtyOrder, l.QtyReceived))
		}

		l.TLReceiveInfo = rules.ReceiveState(rules.ReceiveFacts{
			LogisticalProcess:  l.LogisticalProcess,
			ReceivePOStatus:    l.ReceivePOStatus,
			TLNumber:           l.TLNumber,
			TLQtyReceived:      l.TLQtyReceived,
			QtyShipped:         l.QtyShipped,
			QtyOrder:           l.QtyOrder,
			QtyReceived:        l.QtyReceived,
			LocationTLReceived: l.LocationTLReceived,
			FinalDestination:   l.FinalDestinationLocation,
		})
		l.FullyReceiveInfo = boolToInt(rules.FullyReceived(
			l.RequisitionType, l.ItemCategory, l.LogisticalProcess, l.ReceiveIndicatorPO, l.TLReceiveInfo))

		l.Received, l.NotReceived = nil, nil
		if l.FullyReceiveInfo == 1 {
			l.Received = intPtr(1)
		} else {
			l.NotReceived = intPtr(1)
		}

		l.TransferItem = ""
		if l.LogisticalProcess == 0 && l.TLNumberFlag == 1 {
			l.TransferItem = "Transfer Item"
		}
		shipping := strings.ToLower(l.ShippingType)
		l.ShippingTypeLand = markIf(strings.Contains(shipping, "darat"), "Land")
		l.ShippingTypeSea = markIf(strings.Contains(shipping, "laut"), "Sea")
		l.ShippingTypeAir = markIf(strings.Contains(shipping, "udara"), "Air")
	}
}

// rollupPOReceive marks a PO as fully received only when every one of its
// lines is.
func (p *Processor) rollupPOReceive(lines []*domain.Line) {
	counts := make(map[string]int)
	received := make(map[string]int)
	for _, l := range lines {
		counts[l.PONumber]++
		if l.Received != nil {
			received[l.PONumber] += *l.Received
		}
	}
	for _, l := range lines {
		l.POReceive = ""
		if counts[l.PONumber] == received[l.PONumber] {
			l.POReceive = "Fully Received"
		}
	}
}

func (p *Processor) mergeServiceFlags(lines []*domain.Line) {
	for _, l := range lines {
		l.JSService = nil
		if flag, ok := p.refs.JasaService[refdata.ServiceKey(l.ItemID, l.PONumber)]; ok {
			l.JSService = ptr(flag)
		}
	}
}

// applyOverrides covers steps 6a-6c: the purchasing force-on for tracked
// logistics categories, the manual delivery on-time table, the not-counted
// exclusions, and the logistic on-time table.
func (p *Processor) applyOverrides(lines []*domain.Line) {
	for _, l := range lines {
		tracked := strings.Contains(l.ItemCategory, "Jasa Logistik") || strings.Contains(l.ItemCategory, "Solar")
		if tracked && l.Value == 1 {
			l.StatusPurchasing = ptr("On Time")
			l.OnTimePurchasing, l.LatePurchasing, l.OnTimePctPurchasing = onTimeFlags(l.StatusPurchasing)
		}

		po := strings.TrimSpace(l.PONumber)
		if _, ok := p.refs.OnTimeNorm[po]; ok && l.Value == 1 {
			l.StatusRec = ptr("On Time")
			l.OnTime, l.Late, l.OnTimePct = onTimeFlags(l.StatusRec)
		}
		if _, ok := p.refs.NotCounted[po]; ok {
			l.StatusRec = nil
			l.OnTime, l.Late, l.OnTimePct = nil, nil, nil
		}

		l.OnTimePctLogistic = nil
		if v, ok := p.refs.LogisticNorm[po]; ok {
			l.OnTimePctLogistic = &v
		}
	}
}

// costPatches are one-off corrections applied after the override table.
// Keep this list keyed by (Item ID, PO Number) and dated.
var costPatches = []struct {
	ItemID   string
	PONumber string
	Amount   decimal.Decimal
}{
	// 2024 logistic cost saving restatement
	{ItemID: "18640", PONumber: "20/CB/012024", Amount: decimal.NewFromInt(674957950)},
}

func (p *Processor) applyCostSaving(lines []*domain.Line) {
	for _, l := range lines {
		if v, ok := p.refs.CostSaving[refdata.CostKey(l.ItemName, l.PONumber)]; ok {
			saved := v
			l.CostSaving = &saved
		}
		for _, patch := range costPatches {
			if refdata.CleanID(l.ItemID) == patch.ItemID && l.PONumber == patch.PONumber {
				amount := patch.Amount
				l.CostSaving = &amount
			}
		}
	}
}

// applyRoutine covers steps 8-9 plus the unnormalized overall on-time copy:
// the routine cascade and the ON_TIME% before any manual table touched it.
func (p *Processor) applyRoutine(lines []*domain.Line) {
	for _, l := range lines {
		l.RoutineFinal = rules.ApplyRoutine(
			l.Routine,
			strings.ToLower(l.CategoryMerged),
			strings.ToLower(l.ItemName),
			strings.ToLower(strings.TrimSpace(l.ProcurementName)),
		)

		switch {
		case l.ItemCategory == "Jasa/Service" || l.ItemCategory == "Solar":
			l.OnTimePctOverallOriginal = fptr(1)
		case l.REC == nil:
			l.OnTimePctOverallOriginal = nil
		case *l.REC >= 1:
			l.OnTimePctOverallOriginal = fptr(0)
		default:
			l.OnTimePctOverallOriginal = fptr(1)
		}

		l.FinalItemID = l.ItemID
	}
}

// onTimeFlags expands a status into its marker trio: on-time flag, late
// flag, and the 1/0 percentage cell.
func onTimeFlags(status *string) (onTime, late *int, pct *float64) {
	if status == nil {
		return nil, nil, nil
	}
	switch *status {
	case "On Time":
		return intPtr(1), nil, fptr(1)
	case "Late":
		return nil, intPtr(1), fptr(0)
	}
	return nil, nil, nil
}

func requisitionTotal(l *domain.Line) *decimal.Decimal {
	if l.RequisitionSubTotal == nil || l.ExchangeRate == nil {
		return nil
	}
	total := decimal.NewFromFloat(*l.RequisitionSubTotal).
		Mul(decimal.NewFromFloat(*l.ExchangeRate)).
		Mul(decimal.NewFromFloat(1.11))
	return &total
}

func poTotal(l *domain.Line) *decimal.Decimal {
	if l.QtyOrder == nil || l.POPrice == nil || l.ExchangeRate == nil || l.JumlahPPN == nil {
		return nil
	}
	rate := decimal.NewFromFloat(*l.ExchangeRate)
	total := decimal.NewFromFloat(*l.QtyOrder).
		Mul(decimal.NewFromFloat(*l.POPrice)).
		Mul(rate).
		Add(decimal.NewFromFloat(*l.JumlahPPN).Mul(rate))
	return &total
}

// budgetVariance returns the rounded requisition-vs-PO difference and the
// spend ratio clipped at 1. A zero requisition total gives no ratio when the
// PO total is also zero and a full ratio otherwise.
func budgetVariance(reqTotal, poTot *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if reqTotal == nil || poTot == nil {
		return nil, nil
	}
	budget := reqTotal.Sub(*poTot).Round(2)

	var pct *decimal.Decimal
	one := decimal.NewFromInt(1)
	if reqTotal.IsZero() {
		if !poTot.IsZero() {
			pct = &one
		}
	} else {
		ratio := poTot.Div(*reqTotal)
		if ratio.GreaterThan(one) {
			ratio = one
		}
		pct = &ratio
	}
	return &budget, pct
}

func coalesceDate(candidates ...*time.Time) *time.Time {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func maxDate(candidates ...*time.Time) *time.Time {
	var max *time.Time
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if max == nil || c.After(*max) {
			max = c
		}
	}
	return max
}

func addDays(t *time.Time, days int) *time.Time {
	if t == nil {
		return nil
	}
	d := t.AddDate(0, 0, days)
	return &d
}

// calendarDays is the plain end-minus-start day count, no blackout applied.
func calendarDays(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	days := int(dates.DateOf(*end).Sub(dates.DateOf(*start)).Hours() / 24)
	return &days
}

func leadTimeDays(approved, required *time.Time) *float64 {
	if approved == nil || required == nil {
		return nil
	}
	days := math.Floor(required.Sub(*approved).Hours() / 24)
	return &days
}

func clipNonNegative(v *int) *int {
	if v != nil && *v < 0 {
		return intPtr(0)
	}
	return v
}

func floatsEqual(a, b *float64) bool {
	return a != nil && b != nil && *a == *b
}

// stringsDiffer treats a missing value as different from anything,
// including another missing value.
func stringsDiffer(a, b string) bool {
	return a == "" || b == "" || a != b
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func markIf(cond bool, label string) string {
	if cond {
		return label
	}
	return ""
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ptr(s string) *string    { return &s }
func intPtr(i int) *int       { return &i }
func fptr(f float64) *float64 { return &f }
