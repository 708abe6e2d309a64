// internal/classify/classify.go
package classify

import (
	"regexp"
	"strings"
	"time"

	"github.com/prasetyadi/po-logbook/internal/dates"
)

// locationCodes is the fixed site code table. Order matters: the substring
// fallback scans it front to back and the first hit wins.
var locationCodes = []string{
	"PALU", "FLUK", "LAR", "LWK",
	"OBI", "KDI", "BARU", "MUNA",
	"LWI", "POM", "KNW", "WATU", "LAEYA",
}

var leadingToken = regexp.MustCompile(`[A-Z0-9]+`)

// normalizeDept strips the leading X marker and its separator, trims, and
// uppercases.
func normalizeDept(s string) string {
	if strings.HasPrefix(strings.ToUpper(s), "X") {
		s = strings.TrimLeft(s[1:], " -_")
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// Location classifies a department string as head office or local site,
// optionally suffixed with the resolved site code: "HO", "HO <site>",
// "LC <site>", or "LC". Missing input classifies as "Unknown".
func Location(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	norm := normalizeDept(s)

	if strings.HasSuffix(norm, "-HO") {
		return "HO"
	}

	locType := "LC"
	if strings.Contains(norm, "__") {
		locType = "HO"
	}

	// Resolve the site from the leading token, falling back to a substring
	// scan over the code table.
	token := leadingToken.FindString(norm)
	location := ""
	for _, code := range locationCodes {
		if code == token {
			location = code
			break
		}
	}
	if location == "" {
		for _, code := range locationCodes {
			if strings.Contains(norm, code) {
				location = code
				break
			}
		}
	}

	if location == "" {
		return locType
	}
	return locType + " " + location
}

// mmpSuffixes maps embedded site tokens to MMP sub-projects. Ordered: the
// first token found anywhere in the string wins. KDI is an alias historically
// folded into LAR.
var mmpSuffixes = []struct {
	Suffix string
	Name   string
}{
	{"SC", "SC"},
	{"HO", "HO"},
	{"LAR", "LAR"},
	{"WATU", "WATU"},
	{"OBI", "OBI"},
	{"POM", "POM"},
	{"LAEYA", "LAEYA"},
	{"KDI", "LAR"},
	{"BARU", "BARU"},
	{"LWI", "LWI"},
	{"SOL", "SOL"},
}

// Department extracts the department/project name: the token before the
// first separator, refined for the IMS/MPS/MMP entities by embedded tokens.
func Department(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	norm := normalizeDept(s)

	head := strings.SplitN(norm, "-", 2)[0]
	head = strings.SplitN(head, "_", 2)[0]

	switch head {
	case "IMS":
		switch {
		case strings.Contains(norm, "147"):
			return ptr("IMS 147")
		case strings.Contains(norm, "52"):
			return ptr("IMS 52")
		}
		return ptr("IMS")
	case "MPS":
		if strings.Contains(norm, "SC") {
			return ptr("MPS SC")
		}
		return ptr("MPS")
	case "MMP":
		for _, m := range mmpSuffixes {
			if strings.Contains(norm, m.Suffix) {
				return ptr("MMP " + m.Name)
			}
		}
		return ptr("MMP")
	}
	return ptr(head)
}

// Division extracts the division fragment: after the first '-', before the
// first '_'. The HRGA spelling variants normalize to "HRGA".
func Division(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.SplitN(normalizeDept(s), "-", 2)
	if len(parts) < 2 {
		return nil
	}
	first := strings.SplitN(parts[1], "_", 2)[0]
	if strings.Contains(first, "HRGA") {
		return ptr("HRGA")
	}
	return ptr(first)
}

// SupplierType classifies a supplier name by its legal-entity prefix.
func SupplierType(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	switch {
	case strings.HasPrefix(s, "PT"):
		return ptr("PT")
	case strings.HasPrefix(s, "CV"):
		return ptr("CV")
	}
	return ptr("Toko/Lainnya")
}

// Payment-term keyword sets, checked in priority order. The first set that
// matches decides the label.
var (
	progressiveKeywords = []string{
		"dp", "downpayment", "down payment", "pembayaran 1 ", "50% sebelum",
		"kredit", "tahap", "leasing", "installment",
	}
	tbdKeywords = []string{
		"pembayaran sebelum", "before delivery", "sebelum pengiriman", "cash",
		"uang muka", "100% sebelum", "tunai", "seelum", "sebeulm", "transfer",
		"pengiriman setelah pembayaran", "setelah pembayaran", "100% di muka",
	}
	tempoKeywords = []string{
		"hari setelah", "hari dari", "tempo", "invoice diterima",
		"penagihan dilakukan", "setelah pengiriman", "pembayaran setelah",
		"kontrak", "after delivery", "hari kerja", "telah diterima",
		"pembayaran per bulan", "ari", "0",
		"pekerjaan pengujian dilakukan setelah pembayaran dilakukan",
	}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// PaymentTerm buckets free-text payment terms into Progressive, TBD (paid
// before delivery), or Tempo (net terms).
func PaymentTerm(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case containsAny(lower, progressiveKeywords):
		return ptr("Progressive")
	case containsAny(lower, tbdKeywords):
		return ptr("TBD")
	case containsAny(lower, tempoKeywords):
		return ptr("Tempo")
	}
	return ptr("Not Applicable")
}

// MergedCategory folds brand-specific spare part categories into unified
// labels and splits dump-truck tires into Set vs non-Set by the order unit.
func MergedCategory(itemCategory, unit string) string {
	upper := strings.ToUpper(strings.TrimSpace(itemCategory))
	unitUpper := strings.ToUpper(strings.TrimSpace(unit))

	switch {
	case strings.Contains(upper, "XCMG"):
		return "Spare Part XCMG"
	case strings.Contains(upper, "SANY"):
		return "Spare Part SANY"
	case strings.Contains(upper, "ZS"):
		return "Spare Part ZS"
	case strings.Contains(upper, "TIRE DT"):
		if strings.Contains(unitUpper, "SET") {
			return "Tire DT - Set"
		}
		return "Tire DT - non Set"
	}
	return itemCategory
}

// Requisition progress text sometimes carries the real approval date after a
// "Finalisasi" marker; dd/mm/yyyy and dd Mmm yyyy forms both occur.
var finalizationPattern = regexp.MustCompile(`(?i)finalisasi.*?\s*(\d{1,2}[/ ][A-Za-z0-9]{2,3}[/ ]\d{4})`)

// FinalizationDate extracts the date following a "Finalisasi" marker in the
// requisition progress text, or nil when no parseable date is present.
func FinalizationDate(text string) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m := finalizationPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	raw := strings.ReplaceAll(strings.TrimSpace(m[1]), ".", "")
	return dates.Parse(raw)
}

func ptr(s string) *string { return &s }
