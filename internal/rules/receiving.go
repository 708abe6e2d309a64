// internal/rules/receiving.go
package rules

// Receiving / logistics states. CheckStatus is the explicit fallthrough.
const (
	StateWithoutLogistics = "Without Logistical Process"
	StatePONotReceived    = "PO Not Received"
	StateTLPreparation    = "Transfer List Preparation"
	StateOnTransit        = "On Transit"
	StateAtIntermediate   = "At Intermediate Location"
	StateFullyReceived    = "Fully Received"
	StatePartialReceived  = "Partial Received"
	StateCheckStatus      = "Check Status"
)

// ReceiveFacts carries the per-line inputs of the receiving state machine.
// Quantity pointers are nil when the source value is missing; missing
// quantities never satisfy an equality or zero check.
type ReceiveFacts struct {
	LogisticalProcess  int
	ReceivePOStatus    string
	TLNumber           string
	TLQtyReceived      *float64
	QtyShipped         *float64
	QtyOrder           *float64
	QtyReceived        *float64
	LocationTLReceived string
	FinalDestination   string
}

// numEq reports both values present and equal.
func numEq(a, b *float64) bool {
	return a != nil && b != nil && *a == *b
}

func numIsZero(a *float64) bool {
	return a != nil && *a == 0
}

func numPositive(a *float64) bool {
	return a != nil && *a > 0
}

// locEq reports both locations present and equal; locNE treats a missing
// location as unequal to anything, including another missing location.
func locEq(a, b string) bool {
	return a != "" && b != "" && a == b
}

func locNE(a, b string) bool {
	return a == "" || b == "" || a != b
}

// receiveRules is evaluated in order; the first matching predicate decides
// the state. The ordering is carried over verbatim from the reporting
// logbook: several predicates overlap (a line can satisfy both the TL-zero
// and intermediate-location checks) and the precedence between them is
// operational convention, not documented intent.
var receiveRules = []struct {
	State string
	Match func(f ReceiveFacts) bool
}{
	{StateWithoutLogistics, func(f ReceiveFacts) bool {
		return f.LogisticalProcess == 0
	}},
	{StatePONotReceived, func(f ReceiveFacts) bool {
		return f.LogisticalProcess == 1 && f.ReceivePOStatus == StatePONotReceived
	}},
	{StateTLPreparation, func(f ReceiveFacts) bool {
		return numIsZero(f.TLQtyReceived) && f.TLNumber == ""
	}},
	{StateOnTransit, func(f ReceiveFacts) bool {
		return numIsZero(f.TLQtyReceived) && f.TLNumber != ""
	}},
	{StateAtIntermediate, func(f ReceiveFacts) bool {
		return numPositive(f.TLQtyReceived) && locNE(f.LocationTLReceived, f.FinalDestination)
	}},
	{StateFullyReceived, func(f ReceiveFacts) bool {
		return locEq(f.LocationTLReceived, f.FinalDestination) &&
			numEq(f.TLQtyReceived, f.QtyShipped) &&
			numEq(f.QtyShipped, f.QtyOrder) &&
			numEq(f.QtyOrder, f.QtyReceived)
	}},
	{StatePartialReceived, func(f ReceiveFacts) bool {
		return locEq(f.LocationTLReceived, f.FinalDestination)
	}},
}

// ReceiveState runs the ordered predicate list and returns the first
// matching state, or CheckStatus when nothing matches.
func ReceiveState(f ReceiveFacts) string {
	for _, r := range receiveRules {
		if r.Match(f) {
			return r.State
		}
	}
	return StateCheckStatus
}

// FullyReceived reports whether a line counts as fully received:
// Consignment and logistics-service lines always do; otherwise the PO must
// be fully received, either without a logistics leg or with the transfer
// list fully received as well.
func FullyReceived(requisitionType, itemCategory string, logisticalProcess, receiveIndicatorPO int, state string) bool {
	if requisitionType == "Consignment" || itemCategory == "Jasa Logistik" {
		return true
	}
	if logisticalProcess == 0 && receiveIndicatorPO == 1 {
		return true
	}
	return state == StateFullyReceived && receiveIndicatorPO == 1
}
