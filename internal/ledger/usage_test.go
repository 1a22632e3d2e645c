package ledger

import (
	"testing"
	"time"
)

func TestMonthlyUsage(t *testing.T) {
	ts := func(year int, month time.Month, day int) int64 {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix()
	}

	entries := []UsageEntry{
		{At: ts(2026, time.March, 5), Amount: dec("10.00")},
		{At: ts(2026, time.January, 15), Amount: dec("33.34")},
		{At: ts(2026, time.March, 28), Amount: dec("2.50")},
		{At: ts(2026, time.January, 2), Amount: dec("16.66")},
	}

	totals := MonthlyUsage(entries)
	if len(totals) != 2 {
		t.Fatalf("got %d months, want 2", len(totals))
	}
	if totals[0].Month != "Jan 2026" || !totals[0].Total.Equal(dec("50.00")) {
		t.Errorf("totals[0] = %s %s, want Jan 2026 50.00", totals[0].Month, totals[0].Total)
	}
	if totals[1].Month != "Mar 2026" || !totals[1].Total.Equal(dec("12.50")) {
		t.Errorf("totals[1] = %s %s, want Mar 2026 12.50", totals[1].Month, totals[1].Total)
	}
}

func TestMonthlyUsageEmpty(t *testing.T) {
	if totals := MonthlyUsage(nil); len(totals) != 0 {
		t.Errorf("got %d months for empty history", len(totals))
	}
}

// Months are bucketed in UTC; a timestamp late on Jan 31 in a western zone
// is still January usage.
func TestMonthlyUsageUTCBoundary(t *testing.T) {
	entries := []UsageEntry{
		{At: time.Date(2026, time.January, 31, 23, 30, 0, 0, time.UTC).Unix(), Amount: dec("5.00")},
		{At: time.Date(2026, time.February, 1, 0, 30, 0, 0, time.UTC).Unix(), Amount: dec("7.00")},
	}
	totals := MonthlyUsage(entries)
	if len(totals) != 2 {
		t.Fatalf("got %d months, want 2", len(totals))
	}
	if totals[0].Month != "Jan 2026" || totals[1].Month != "Feb 2026" {
		t.Errorf("months = %s, %s", totals[0].Month, totals[1].Month)
	}
}
