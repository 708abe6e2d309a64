// internal/domain/record.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single PO line record: one row per (PO Number, Item ID) pair.
// A PO may have several lines; per-PO aggregate flags use the first line.
//
// Pointer fields are nullable: nil marks a value that was missing or failed
// to coerce on load. String fields use "" for missing text.
type Line struct {
	// Raw fields from the PO entry table
	RequisitionType          string
	ItemID                   string
	ItemName                 string
	ItemCategory             string
	Department               string
	Unit                     string
	Currency                 string
	ExchangeRate             *float64
	POPrice                  *float64
	QtyOrder                 *float64
	PODiscCost               *float64
	POSubTotal               *float64
	JumlahPPN                *float64
	QtyReceived              *float64
	POReceiveLocation        string
	POSubmitDate             *time.Time
	PORequiredDate           *time.Time
	POApprovalDate           *time.Time
	ReceivePOEstimation      *time.Time
	ReceivePODate            *time.Time
	QtyHandover              *float64
	HandoverDate             *time.Time
	PONumber                 string
	Supplier                 string
	SupplierLocation         string
	TermOfPayment            string
	POStatus                 string
	POProgressStatus         string
	StatusUpdateDate         *time.Time
	RequisitionNumber        string
	RequisitionDate          *time.Time
	RequisitionSubmittedDate *time.Time
	RequisitionApprovedDate  *time.Time
	RequisitionRequiredDate  *time.Time
	QtyRequisition           *float64
	RequisitionUnitPrice     *float64
	RequisitionSubTotal      *float64
	AssetNonAsset            string
	CostSaving               *decimal.Decimal
	Routine                  string
	Urgent                   string
	BackgroundNeeds          string
	UrgentNote               string
	UrgentCost               *float64
	ProcurementName          string
	ReqStatus                string
	ReqProgressStatus        string
	TLNumber                 string
	ShippingType             string
	CreatedTLDate            *time.Time
	QtyShipped               *float64
	ShippedDate              *time.Time
	ETADate                  *time.Time
	TLQtyReceived            *float64
	ReceivedTLDate           *time.Time
	LocationTLReceived       string
	FinalDestinationLocation string
	Remarks                  string

	// Requisition date normalization (priority: normalization table ->
	// finalization date extracted from progress text -> raw approved date)
	ExtractedApprovedDate  *time.Time
	UpdatedReqApprovedDate *time.Time
	UpdatedReqRequiredDate *time.Time
	BackgroundUpdate       string

	// Working dates after priority merge; not part of the output schema
	UsedApprovedDate *time.Time
	UsedRequiredDate *time.Time

	// Location / urgency classification
	LOC          string
	LeadTime     *float64
	UrgentNormal string
	NormalFlag   *string // NORMAL
	Urgent2      *string // URGENT2
	UrgentStar   *string // URGENT*
	UrgentFinal  string  // URGENT_FINALFORLOGBOOK

	// Supplier geography and string classifications
	Wilayah        *string
	Pulau          *string
	DepartmentName *string // DEPARTMENT_
	Divisi         *string
	SupplierType   *string // SUPPLIER_
	TOP            *string
	CategoryMerged string

	// VALUE eligibility; candidate markers are working-only
	CategoryValueMark int // 1 when the line's category excludes the PO from scoring
	CategoryValueXCMG int // 1 on the XCMG pickup/handover exception
	Value             int
	UniqueCountPO     int
	FinalItemID       string

	// Time-based metrics (day counts exclude the holiday blackout)
	TimeDate           *time.Time
	PRPO               *int // PR - PO
	POSubPOApp         *int // PO SUB - PO APP
	PORPO              *int // PO - R PO
	RRSite             *int // R-R SITE
	PRPOSubWD          *int // PR - PO SUB WD (business days)
	RPOTLC             *int
	TLCShip            *int
	ShipRSite          *int
	PurchasingDuration *int

	// Financials
	RequisitionTotal *decimal.Decimal
	POTotal          *decimal.Decimal
	Budget           *decimal.Decimal
	BudgetPct        *decimal.Decimal

	// Purchasing on-time status
	StatusPurchasing    *string
	OnTimePurchasing    *int
	LatePurchasing      *int
	OnTimePctPurchasing *float64

	// Receiving on-time status
	FarthestRequiredDate        *time.Time
	UsedReceiveDate             *time.Time
	REC                         *int
	StatusRec                   *string // "" when REC is missing; nil when excluded
	OnTime                      *int
	Late                        *int
	OnTimePct                   *float64
	OnTimePctOriginalPurchasing *float64
	OnTimePctOverallOriginal    *float64
	OnTimePctLogistic           *float64

	// Logistics / receiving state
	LogisticFreight          string
	LogisticalProcess        int
	ReceiveIndicatorPO       int
	ReceivePOStatus          string
	TLNumberFlag             int // TL_NUMBER_?
	ReceiveIndicatorLogistic int
	TLReceiveInfo            string
	FullyReceiveInfo         int
	Received                 *int
	NotReceived              *int
	TransferItem             string
	ShippingTypeLand         string
	ShippingTypeSea          string
	ShippingTypeAir          string
	POReceive                string // PO_RECEIVE (per-PO rollup)
	JSService                *string
	RoutineFinal             string // _Routine (after the categorization cascade)
}
