// internal/loader/entry.go
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/prasetyadi/po-logbook/internal/dates"
	"github.com/prasetyadi/po-logbook/internal/domain"
)

// LoadLines reads the primary PO entry table from an XLSX file. Columns are
// located by header name, so column order in the workbook does not matter;
// unparseable dates and numbers load as nil cells.
func LoadLines(path string) ([]*domain.Line, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open po entry file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("po entry file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("po entry file %s is empty", path)
	}

	header := rows[0]
	colIndex := func(name string) int {
		target := normalizeColumnName(name)
		for i, h := range header {
			if normalizeColumnName(h) == target {
				return i
			}
		}
		return -1
	}
	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	cols := map[string]int{}
	for _, name := range entryColumns {
		cols[name] = colIndex(name)
	}

	lines := make([]*domain.Line, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		get := func(name string) string { return cell(row, cols[name]) }

		l := &domain.Line{
			RequisitionType:          get("Requisition Type"),
			ItemID:                   get("Item ID"),
			ItemName:                 get("Item Name"),
			ItemCategory:             get("Item Category"),
			Department:               get("Department"),
			Unit:                     get("Unit"),
			Currency:                 get("Currency"),
			ExchangeRate:             parseFloat(get("Exchange Rate")),
			POPrice:                  parseFloat(get("PO Price")),
			QtyOrder:                 parseFloat(get("Qty Order")),
			PODiscCost:               parseFloat(get("PO Disc/Cost")),
			POSubTotal:               parseFloat(get("PO Sub Total")),
			JumlahPPN:                parseFloat(get("Jumlah PPN")),
			QtyReceived:              parseFloat(get("Qty Received")),
			POReceiveLocation:        get("PO Receive Location"),
			POSubmitDate:             dates.Parse(get("PO Submit Date")),
			PORequiredDate:           dates.Parse(get("PO Required Date")),
			POApprovalDate:           dates.Parse(get("PO Approval Date")),
			ReceivePOEstimation:      dates.Parse(get("Receive PO Estimation")),
			ReceivePODate:            dates.Parse(get("Receive PO Date")),
			QtyHandover:              parseFloat(get("Qty Handover")),
			HandoverDate:             dates.Parse(get("Handover Date")),
			PONumber:                 get("PO Number"),
			Supplier:                 get("Supplier"),
			SupplierLocation:         get("Supplier Location"),
			TermOfPayment:            get("Term of Payment"),
			POStatus:                 get("PO Status"),
			POProgressStatus:         get("PO Progress Status"),
			StatusUpdateDate:         dates.Parse(get("Status Update Date")),
			RequisitionNumber:        get("Requisition Number"),
			RequisitionDate:          dates.Parse(get("Requisition Date")),
			RequisitionSubmittedDate: dates.Parse(get("Requisition Submited Date")),
			RequisitionApprovedDate:  dates.Parse(get("Requisition Approved Date")),
			RequisitionRequiredDate:  dates.Parse(get("Requisition Required Date")),
			QtyRequisition:           parseFloat(get("Qty Requisition")),
			RequisitionUnitPrice:     parseFloat(get("Requisition Unit Price")),
			RequisitionSubTotal:      parseFloat(get("Requisition SubTotal")),
			AssetNonAsset:            get("Asset / Non Asset"),
			CostSaving:               parseDecimal(get("Cost Saving")),
			Routine:                  get("Routine"),
			Urgent:                   get("Urgent"),
			BackgroundNeeds:          get("Background Needs"),
			UrgentNote:               get("Urgent Note"),
			UrgentCost:               parseFloat(get("Urgent Cost")),
			ProcurementName:          get("Procurement Name"),
			ReqStatus:                get("Req Status"),
			ReqProgressStatus:        get("Req Progress Status"),
			TLNumber:                 get("TL Number"),
			ShippingType:             get("Shipping Type"),
			CreatedTLDate:            dates.Parse(get("Created TL Date")),
			QtyShipped:               parseFloat(get("Qty Shipped")),
			ShippedDate:              dates.Parse(get("Shipped Date")),
			ETADate:                  dates.Parse(get("ETA Date")),
			TLQtyReceived:            parseFloat(get("TL Qty Received")),
			ReceivedTLDate:           dates.Parse(get("Received TL Date")),
			LocationTLReceived:       get("Location TL Received"),
			FinalDestinationLocation: get("Final Destination Location"),
			Remarks:                  get("Remarks"),
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// entryColumns are the headers the loader looks up in the PO entry sheet.
var entryColumns = []string{
	"Requisition Type", "Item ID", "Item Name", "Item Category", "Department",
	"Unit", "Currency", "Exchange Rate", "PO Price", "Qty Order",
	"PO Disc/Cost", "PO Sub Total", "Jumlah PPN", "Qty Received", "PO Receive Location",
	"PO Submit Date", "PO Required Date", "PO Approval Date", "Receive PO Estimation", "Receive PO Date",
	"Qty Handover", "Handover Date", "PO Number", "Supplier", "Supplier Location",
	"Term of Payment", "PO Status", "PO Progress Status", "Status Update Date", "Requisition Number",
	"Requisition Date", "Requisition Submited Date", "Requisition Approved Date", "Requisition Required Date", "Qty Requisition",
	"Requisition Unit Price", "Requisition SubTotal", "Asset / Non Asset", "Cost Saving", "Routine",
	"Urgent", "Background Needs", "Urgent Note", "Urgent Cost", "Procurement Name",
	"Req Status", "Req Progress Status", "TL Number", "Shipping Type", "Created TL Date",
	"Qty Shipped", "Shipped Date", "ETA Date", "TL Qty Received", "Received TL Date",
	"Location TL Received", "Final Destination Location", "Remarks",
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	return columnNameSanitizer.Replace(strings.TrimSpace(strings.ToLower(name)))
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &v
}
