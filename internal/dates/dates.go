// internal/dates/dates.go
package dates

import (
	"strconv"
	"strings"
	"time"
)

// Lebaran blackout range. Extend the range list when the next year's holiday
// window is announced.
var blackout = buildBlackout(
	time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC),
	time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC),
)

func buildBlackout(start, end time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{})
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		set[DateOf(d)] = struct{}{}
	}
	return set
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysExcludingBlackout counts the calendar days strictly after the earlier
// date through the later date, skipping blackout dates. The result is nil if
// either input is missing, 0 if the dates are equal, and negative when end is
// before start.
func DaysExcludingBlackout(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	s := DateOf(*start)
	e := DateOf(*end)
	if s.Equal(e) {
		zero := 0
		return &zero
	}

	lo, hi := s, e
	negative := e.Before(s)
	if negative {
		lo, hi = e, s
	}

	count := 0
	for d := lo.AddDate(0, 0, 1); !d.After(hi); d = d.AddDate(0, 0, 1) {
		if _, skip := blackout[d]; !skip {
			count++
		}
	}
	if negative {
		count = -count
	}
	return &count
}

// BusinessDaySpan counts Mon-Fri days in [start, end), excluding the supplied
// holiday dates. When end is before start the count of [end, start) is
// returned negated.
func BusinessDaySpan(start, end time.Time, holidays map[time.Time]struct{}) int {
	s := DateOf(start)
	e := DateOf(end)
	sign := 1
	if e.Before(s) {
		s, e = e, s
		sign = -1
	}

	count := 0
	for d := s; d.Before(e); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if _, holiday := holidays[d]; holiday {
			continue
		}
		count++
	}
	return sign * count
}

var (
	halmaheraSites = []string{"OBI", "FLUK", "BARU", "LWI"}
	sulawesiSites  = []string{"LAR", "LWK", "PALU", "KDI", "MUNA", "TKE", "WATU", "LAEYA"}

	// Categories that local sites are expected to stock themselves; these get
	// the regional allowance instead of the 15-day default.
	localCategories = map[string]struct{}{
		"Consumable Workshop":     {},
		"Packaging":               {},
		"Alat dan Bahan Bangunan": {},
		"Bolt dan Nut":            {},
		"Elektrikal":              {},
		"Consumable Cleaning":     {},
		"Perabotan":               {},
		"Peralatan Geologi":       {},
		"Peralatan Dapur":         {},
	}
)

func containsSite(loc, prefix string, sites []string) bool {
	for _, site := range sites {
		if strings.Contains(loc, prefix+" "+site) {
			return true
		}
	}
	return false
}

// AllowanceDays returns the delivery lead-time allowance for a location and
// item category. Conditions are evaluated in priority order: the regional
// head-office groups outrank the plain HO/LC fallback.
func AllowanceDays(loc, itemCategory string) int {
	_, local := localCategories[itemCategory]
	switch {
	case containsSite(loc, "HO", halmaheraSites):
		return 43
	case containsSite(loc, "HO", sulawesiSites):
		return 36
	case containsSite(loc, "LC", halmaheraSites) && local:
		return 43
	case containsSite(loc, "LC", sulawesiSites) && local:
		return 36
	case strings.Contains(loc, "LC") || strings.Contains(loc, "HO"):
		return 15
	}
	return 0
}

// dateFormats are tried in order; day-first layouts come first because the
// source tables are day-first.
var dateFormats = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// Parse coerces free-form date text to a calendar date. It returns nil when
// the text cannot be parsed; unparseable dates are treated as missing, never
// as errors.
func Parse(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			d := DateOf(t)
			return &d
		}
	}
	// Spreadsheet cells may surface as day serial numbers.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 59 {
		d := FromSerial(serial)
		return &d
	}
	return nil
}

// FromSerial converts a spreadsheet day serial (1900 date system) to a date.
func FromSerial(serial float64) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	return DateOf(epoch.AddDate(0, 0, int(serial)))
}
