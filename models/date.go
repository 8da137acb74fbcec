package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// All record dates are calendar dates: midnight UTC, no time-of-day
// semantics. They are always built from calendar fields directly, never from
// a millisecond offset that could shift across timezones.

// SentinelDate marks a cell whose date could not be decoded. Rows carrying it
// are dropped by the record builders.
var SentinelDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// excelEpoch is day 0 of the spreadsheet serial calendar (1899-12-30, which
// absorbs the 1900 leap-year bug; serial-to-Unix offset is 25569 days).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial bounds the plausible serial range (year 9999).
const maxExcelSerial = 2958466

var isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

func dateOnly(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// validDate reports whether the given fields denote a real calendar day
// (time.Date normalizes 31/02 into March, which we must reject).
func validDate(year int, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := dateOnly(year, time.Month(month), day)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// DecodeCellDate turns a raw cell value into a calendar date. It accepts ISO
// strings ("2022-03-15", with or without a time suffix), 3-part delimited
// strings ("15/03/2022", "2022.03.15") and spreadsheet serial numbers
// ("44635", including fractional day parts). Anything else yields
// SentinelDate.
//
// For ambiguous 3-part strings the day-first reading wins whenever it is a
// valid date; month-first is used only when day-first is impossible. That is
// the historical behavior of this dataset and changing it would silently
// reassign rows, so it stays.
func DecodeCellDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SentinelDate
	}

	if m := isoDatePrefix.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return dateOnly(year, time.Month(month), day)
		}
		return SentinelDate
	}

	if t, ok := decodeDelimitedDate(raw); ok {
		return t
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return SerialToDate(serial)
	}

	return SentinelDate
}

func decodeDelimitedDate(raw string) (time.Time, bool) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '.' || r == '-'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	p0, p1, p2 := nums[0], nums[1], nums[2]

	switch {
	case p2 > 1900 && p2 < 2100:
		// Year last: dd/mm/yyyy preferred, mm/dd/yyyy fallback.
		if validDate(p2, p1, p0) {
			return dateOnly(p2, time.Month(p1), p0), true
		}
		if validDate(p2, p0, p1) {
			return dateOnly(p2, time.Month(p0), p1), true
		}
	case p0 > 1900 && p0 < 2100:
		// Year first: yyyy/mm/dd preferred, yyyy/dd/mm fallback.
		if validDate(p0, p1, p2) {
			return dateOnly(p0, time.Month(p1), p2), true
		}
		if validDate(p0, p2, p1) {
			return dateOnly(p0, time.Month(p2), p1), true
		}
	}
	return time.Time{}, false
}

// SerialToDate maps a spreadsheet day-count serial onto its calendar date.
// Fractional serials (time-of-day) are rounded to the nearest second before
// the day is taken.
func SerialToDate(serial float64) time.Time {
	if serial <= 0 || serial >= maxExcelSerial {
		return SentinelDate
	}
	seconds := math.Round(serial * 86400)
	t := excelEpoch.Add(time.Duration(seconds) * time.Second)
	return dateOnly(t.Year(), t.Month(), t.Day())
}

// DateToSerial is the inverse of SerialToDate for whole-day dates.
func DateToSerial(t time.Time) float64 {
	d := dateOnly(t.Year(), t.Month(), t.Day())
	return d.Sub(excelEpoch).Hours() / 24
}

// IsSentinel reports whether a decoded date is the rejection marker.
func IsSentinel(t time.Time) bool {
	return t.Equal(SentinelDate)
}
