package models_test

import (
	"testing"
	"time"

	"github.com/molekadoces/dashboard_backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecodeCellDateISO(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2022-03-15", date(2022, time.March, 15)},
		{"2022-03-15T10:30:00", date(2022, time.March, 15)},
		{"2022-12-31", date(2022, time.December, 31)},
		{"2021-01-01", date(2021, time.January, 1)},
	}
	for _, tc := range cases {
		got := models.DecodeCellDate(tc.raw)
		if !got.Equal(tc.want) {
			t.Errorf("DecodeCellDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		// Calendar fields must match the string regardless of host timezone.
		if got.Location() != time.UTC {
			t.Errorf("DecodeCellDate(%q) not in UTC", tc.raw)
		}
	}
}

func TestDecodeCellDateDelimited(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		// dd/mm/yyyy is the preferred reading.
		{"15/03/2022", date(2022, time.March, 15)},
		{"05/03/2022", date(2022, time.March, 5)},
		// Day > 12 forces mm/dd to be rejected either way.
		{"25/12/2021", date(2021, time.December, 25)},
		// Day-first impossible (month 13), month-first valid.
		{"12/13/2022", date(2022, time.December, 13)},
		// Dots and dashes delimit too.
		{"15.03.2022", date(2022, time.March, 15)},
		{"15-03-2022", date(2022, time.March, 15)},
		// Year first.
		{"2022/03/15", date(2022, time.March, 15)},
		{"2022/03/05", date(2022, time.March, 5)},
	}
	for _, tc := range cases {
		if got := models.DecodeCellDate(tc.raw); !got.Equal(tc.want) {
			t.Errorf("DecodeCellDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDecodeCellDateSerial(t *testing.T) {
	// 2022-03-15 is serial 44635 (epoch 1899-12-30).
	if got := models.DecodeCellDate("44635"); !got.Equal(date(2022, time.March, 15)) {
		t.Fatalf("serial 44635 = %v, want 2022-03-15", got)
	}
	// Fractional part is time-of-day and must not move the calendar day.
	if got := models.DecodeCellDate("44635.75"); !got.Equal(date(2022, time.March, 15)) {
		t.Fatalf("serial 44635.75 = %v, want 2022-03-15", got)
	}
}

func TestSerialRoundTrip(t *testing.T) {
	// 25569 itself maps onto the sentinel day (the Unix epoch) and is
	// indistinguishable from a rejected cell; that is inherited behavior.
	for _, serial := range []float64{1, 30000, 44635, 44926, 2958465} {
		d := models.SerialToDate(serial)
		if models.IsSentinel(d) {
			t.Fatalf("SerialToDate(%v) unexpectedly sentinel", serial)
		}
		if got := models.DateToSerial(d); got != serial {
			t.Errorf("round trip %v -> %v -> %v", serial, d, got)
		}
	}
}

func TestDecodeCellDateUnparseable(t *testing.T) {
	for _, raw := range []string{"", "abc", "2022-13-40", "31/02/2022", "15/03", "0", "-5", "2958466"} {
		if got := models.DecodeCellDate(raw); !models.IsSentinel(got) {
			t.Errorf("DecodeCellDate(%q) = %v, want sentinel", raw, got)
		}
	}
}
