// internal/pipeline/finalize.go
package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasetyadi/po-logbook/internal/domain"
)

type column struct {
	Name  string
	Value func(l *domain.Line) interface{}
}

// outputSchema is the reporting column order. Downstream dashboards address
// columns by position, so the order is part of the contract; working-only
// fields (merge keys, VALUE candidate markers) stay out of it.
var outputSchema = []column{
	{"Requisition Type", func(l *domain.Line) interface{} { return l.RequisitionType }},
	{"Item ID", func(l *domain.Line) interface{} { return l.ItemID }},
	{"Item Name", func(l *domain.Line) interface{} { return l.ItemName }},
	{"Item Category", func(l *domain.Line) interface{} { return l.ItemCategory }},
	{"Department", func(l *domain.Line) interface{} { return l.Department }},
	{"Unit", func(l *domain.Line) interface{} { return l.Unit }},
	{"Currency", func(l *domain.Line) interface{} { return l.Currency }},
	{"Exchange Rate", func(l *domain.Line) interface{} { return floatCell(l.ExchangeRate) }},
	{"PO Price", func(l *domain.Line) interface{} { return floatCell(l.POPrice) }},
	{"Qty Order", func(l *domain.Line) interface{} { return floatCell(l.QtyOrder) }},
	{"PO Disc/Cost", func(l *domain.Line) interface{} { return floatCell(l.PODiscCost) }},
	{"PO Sub Total", func(l *domain.Line) interface{} { return floatCell(l.POSubTotal) }},
	{"Jumlah PPN", func(l *domain.Line) interface{} { return floatCell(l.JumlahPPN) }},
	{"Qty Received", func(l *domain.Line) interface{} { return floatCell(l.QtyReceived) }},
	{"PO Receive Location", func(l *domain.Line) interface{} { return l.POReceiveLocation }},
	{"PO Submit Date", func(l *domain.Line) interface{} { return dateCell(l.POSubmitDate) }},
	{"PO Required Date", func(l *domain.Line) interface{} { return dateCell(l.PORequiredDate) }},
	{"PO Approval Date", func(l *domain.Line) interface{} { return dateCell(l.POApprovalDate) }},
	{"Receive PO Estimation", func(l *domain.Line) interface{} { return dateCell(l.ReceivePOEstimation) }},
	{"Receive PO Date", func(l *domain.Line) interface{} { return dateCell(l.ReceivePODate) }},
	{"Qty Handover", func(l *domain.Line) interface{} { return floatCell(l.QtyHandover) }},
	{"Handover Date", func(l *domain.Line) interface{} { return dateCell(l.HandoverDate) }},
	{"PO Number", func(l *domain.Line) interface{} { return l.PONumber }},
	{"Supplier", func(l *domain.Line) interface{} { return l.Supplier }},
	{"Supplier Location", func(l *domain.Line) interface{} { return l.SupplierLocation }},
	{"Term of Payment", func(l *domain.Line) interface{} { return l.TermOfPayment }},
	{"PO Status", func(l *domain.Line) interface{} { return l.POStatus }},
	{"PO Progress Status", func(l *domain.Line) interface{} { return l.POProgressStatus }},
	{"Status Update Date", func(l *domain.Line) interface{} { return dateCell(l.StatusUpdateDate) }},
	{"Requisition Number", func(l *domain.Line) interface{} { return l.RequisitionNumber }},
	{"Requisition Date", func(l *domain.Line) interface{} { return dateCell(l.RequisitionDate) }},
	{"Requisition Submited Date", func(l *domain.Line) interface{} { return dateCell(l.RequisitionSubmittedDate) }},
	{"Requisition Approved Date", func(l *domain.Line) interface{} { return dateCell(l.RequisitionApprovedDate) }},
	{"Requisition Required Date", func(l *domain.Line) interface{} { return dateCell(l.RequisitionRequiredDate) }},
	{"Qty Requisition", func(l *domain.Line) interface{} { return floatCell(l.QtyRequisition) }},
	{"Requisition Unit Price", func(l *domain.Line) interface{} { return floatCell(l.RequisitionUnitPrice) }},
	{"Requisition SubTotal", func(l *domain.Line) interface{} { return floatCell(l.RequisitionSubTotal) }},
	{"Asset / Non Asset", func(l *domain.Line) interface{} { return l.AssetNonAsset }},
	{"Cost Saving", func(l *domain.Line) interface{} { return decimalCell(l.CostSaving) }},
	{"Routine", func(l *domain.Line) interface{} { return l.Routine }},
	{"Urgent", func(l *domain.Line) interface{} { return l.Urgent }},
	{"Background Needs", func(l *domain.Line) interface{} { return l.BackgroundNeeds }},
	{"Urgent Note", func(l *domain.Line) interface{} { return l.UrgentNote }},
	{"Urgent Cost", func(l *domain.Line) interface{} { return floatCell(l.UrgentCost) }},
	{"Procurement Name", func(l *domain.Line) interface{} { return l.ProcurementName }},
	{"Req Status", func(l *domain.Line) interface{} { return l.ReqStatus }},
	{"Req Progress Status", func(l *domain.Line) interface{} { return l.ReqProgressStatus }},
	{"TL Number", func(l *domain.Line) interface{} { return l.TLNumber }},
	{"Shipping Type", func(l *domain.Line) interface{} { return l.ShippingType }},
	{"Created TL Date", func(l *domain.Line) interface{} { return dateCell(l.CreatedTLDate) }},
	{"Qty Shipped", func(l *domain.Line) interface{} { return floatCell(l.QtyShipped) }},
	{"Shipped Date", func(l *domain.Line) interface{} { return dateCell(l.ShippedDate) }},
	{"ETA Date", func(l *domain.Line) interface{} { return dateCell(l.ETADate) }},
	{"TL Qty Received", func(l *domain.Line) interface{} { return floatCell(l.TLQtyReceived) }},
	{"Received TL Date", func(l *domain.Line) interface{} { return dateCell(l.ReceivedTLDate) }},
	{"Location TL Received", func(l *domain.Line) interface{} { return l.LocationTLReceived }},
	{"Final Destination Location", func(l *domain.Line) interface{} { return l.FinalDestinationLocation }},
	{"Remarks", func(l *domain.Line) interface{} { return l.Remarks }},
	{"VALUE", func(l *domain.Line) interface{} { return l.Value }},
	{"UNIQUE COUNT PO", func(l *domain.Line) interface{} { return l.UniqueCountPO }},
	{"CATEGORYMERGED", func(l *domain.Line) interface{} { return l.CategoryMerged }},
	{"LOC", func(l *domain.Line) interface{} { return l.LOC }},
	{"LEAD TIME", func(l *domain.Line) interface{} { return floatCell(l.LeadTime) }},
	{"URGENT_NORMAL", func(l *domain.Line) interface{} { return l.UrgentNormal }},
	{"NORMAL", func(l *domain.Line) interface{} { return stringCell(l.NormalFlag) }},
	{"URGENT2", func(l *domain.Line) interface{} { return stringCell(l.Urgent2) }},
	{"URGENT*", func(l *domain.Line) interface{} { return stringCell(l.UrgentStar) }},
	{"URGENT_FINALFORLOGBOOK", func(l *domain.Line) interface{} { return l.UrgentFinal }},
	{"WILAYAH", func(l *domain.Line) interface{} { return stringCell(l.Wilayah) }},
	{"PULAU", func(l *domain.Line) interface{} { return stringCell(l.Pulau) }},
	{"DEPARTMENT_", func(l *domain.Line) interface{} { return stringCell(l.DepartmentName) }},
	{"DIVISI", func(l *domain.Line) interface{} { return stringCell(l.Divisi) }},
	{"SUPPLIER_", func(l *domain.Line) interface{} { return stringCell(l.SupplierType) }},
	{"TOP", func(l *domain.Line) interface{} { return stringCell(l.TOP) }},
	{"Updated Requisition Approved Date", func(l *domain.Line) interface{} { return dateCell(l.UpdatedReqApprovedDate) }},
	{"Updated Requisition Required Date", func(l *domain.Line) interface{} { return dateCell(l.UpdatedReqRequiredDate) }},
	{"Background Update", func(l *domain.Line) interface{} { return l.BackgroundUpdate }},
	{"TIME DATE", func(l *domain.Line) interface{} { return dateCell(l.TimeDate) }},
	{"PR - PO", func(l *domain.Line) interface{} { return intCell(l.PRPO) }},
	{"PO SUB - PO APP", func(l *domain.Line) interface{} { return intCell(l.POSubPOApp) }},
	{"PO - R PO", func(l *domain.Line) interface{} { return intCell(l.PORPO) }},
	{"R-R SITE", func(l *domain.Line) interface{} { return intCell(l.RRSite) }},
	{"PR - PO SUB WD", func(l *domain.Line) interface{} { return intCell(l.PRPOSubWD) }},
	{"RPO-TLC", func(l *domain.Line) interface{} { return intCell(l.RPOTLC) }},
	{"TLC-SHIP", func(l *domain.Line) interface{} { return intCell(l.TLCShip) }},
	{"SHIP-RSITE", func(l *domain.Line) interface{} { return intCell(l.ShipRSite) }},
	{"REQUISITION_TOTAL", func(l *domain.Line) interface{} { return decimalCell(l.RequisitionTotal) }},
	{"PO_TOTAL", func(l *domain.Line) interface{} { return decimalCell(l.POTotal) }},
	{"BUDGET", func(l *domain.Line) interface{} { return decimalCell(l.Budget) }},
	{"BUDGET%", func(l *domain.Line) interface{} { return decimalCell(l.BudgetPct) }},
	{"FARTHEST REQUIRED DATE", func(l *domain.Line) interface{} { return dateCell(l.FarthestRequiredDate) }},
	{"USED RECEIVE DATE", func(l *domain.Line) interface{} { return dateCell(l.UsedReceiveDate) }},
	{"REC", func(l *domain.Line) interface{} { return intCell(l.REC) }},
	{"STATUS REC", func(l *domain.Line) interface{} { return stringCell(l.StatusRec) }},
	{"ON_TIME", func(l *domain.Line) interface{} { return intCell(l.OnTime) }},
	{"LATE", func(l *domain.Line) interface{} { return intCell(l.Late) }},
	{"ON_TIME%", func(l *domain.Line) interface{} { return floatCell(l.OnTimePct) }},
	{"LOGISTICAL_PROCESS", func(l *domain.Line) interface{} { return l.LogisticalProcess }},
	{"RECEIVE_INDICATOR_PO", func(l *domain.Line) interface{} { return l.ReceiveIndicatorPO }},
	{"RECEIVE_PO_STATUS", func(l *domain.Line) interface{} { return l.ReceivePOStatus }},
	{"TL_NUMBER_?", func(l *domain.Line) interface{} { return l.TLNumberFlag }},
	{"RECEIVE_INDICATOR_LOGISTIC", func(l *domain.Line) interface{} { return l.ReceiveIndicatorLogistic }},
	{"TL_RECEIVE_INFO", func(l *domain.Line) interface{} { return l.TLReceiveInfo }},
	{"FULLY_RECEIVE_INFO", func(l *domain.Line) interface{} { return l.FullyReceiveInfo }},
	{"TRANSFER_ITEM", func(l *domain.Line) interface{} { return l.TransferItem }},
	{"SHIPPING_TYPE_LAND", func(l *domain.Line) interface{} { return l.ShippingTypeLand }},
	{"SHIPPING_TYPE_SEA", func(l *domain.Line) interface{} { return l.ShippingTypeSea }},
	{"SHIPPING_TYPE_AIR", func(l *domain.Line) interface{} { return l.ShippingTypeAir }},
	{"LOGISTIC_FREIGHT", func(l *domain.Line) interface{} { return l.LogisticFreight }},
	{"RECEIVED", func(l *domain.Line) interface{} { return intCell(l.Received) }},
	{"NOT_RECEIVED", func(l *domain.Line) interface{} { return intCell(l.NotReceived) }},
	{"PO_RECEIVE", func(l *domain.Line) interface{} { return l.POReceive }},
	{"JS_SERVICE", func(l *domain.Line) interface{} { return stringCell(l.JSService) }},
	{"ON_TIME%_overall_original", func(l *domain.Line) interface{} { return floatCell(l.OnTimePctOverallOriginal) }},
	{"ON_TIME%_original_purchasing", func(l *domain.Line) interface{} { return floatCell(l.OnTimePctOriginalPurchasing) }},
	{"ON_TIME%_logistic", func(l *domain.Line) interface{} { return floatCell(l.OnTimePctLogistic) }},
	{"Final_ItemID", func(l *domain.Line) interface{} { return l.FinalItemID }},
	{"Purchasing_Duration", func(l *domain.Line) interface{} { return intCell(l.PurchasingDuration) }},
	{"STATUS_Purchasing", func(l *domain.Line) interface{} { return stringCell(l.StatusPurchasing) }},
	{"ON_TIME_Purchasing", func(l *domain.Line) interface{} { return intCell(l.OnTimePurchasing) }},
	{"LATE_Purchasing", func(l *domain.Line) interface{} { return intCell(l.LatePurchasing) }},
	{"ON_TIME%_Purchasing", func(l *domain.Line) interface{} { return floatCell(l.OnTimePctPurchasing) }},
	{"_Routine", func(l *domain.Line) interface{} { return l.RoutineFinal }},
}

// Finalize projects the processed lines onto the fixed reporting schema.
// Missing values surface as nil cells and render empty on export.
func Finalize(lines []*domain.Line) *domain.Table {
	t := &domain.Table{
		Columns: make([]string, len(outputSchema)),
		Rows:    make([][]interface{}, 0, len(lines)),
	}
	for i, col := range outputSchema {
		t.Columns[i] = col.Name
	}
	for _, l := range lines {
		row := make([]interface{}, len(outputSchema))
		for i, col := range outputSchema {
			row[i] = col.Value(l)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intCell(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func dateCell(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func stringCell(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func decimalCell(v *decimal.Decimal) interface{} {
	if v == nil {
		return nil
	}
	return v.InexactFloat64()
}
