package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UsageEntry is one owed share attributed to a point in time: a split's
// amount paired with its expense's creation timestamp.
type UsageEntry struct {
	At     int64
	Amount decimal.Decimal
}

// MonthlyTotal is the sum of a user's owed shares for one calendar month.
type MonthlyTotal struct {
	Month string // e.g. "Jan 2026"
	Total decimal.Decimal
}

// MonthlyUsage rolls entries up by calendar month (UTC) in chronological
// order. The rollup happens on decimals in Go rather than in SQL so no
// precision is lost summing stored values.
func MonthlyUsage(entries []UsageEntry) []MonthlyTotal {
	type bucket struct {
		key   string // sortable YYYY-MM
		label string
		total decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		ts := time.Unix(e.At, 0).UTC()
		key := ts.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, label: ts.Format("Jan 2006"), total: decimal.Zero}
			buckets[key] = b
		}
		b.total = b.total.Add(e.Amount)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]MonthlyTotal, len(ordered))
	for i, b := range ordered {
		out[i] = MonthlyTotal{Month: b.label, Total: b.total}
	}
	return out
}
