// Package reports computes the client-side sales report: range totals and a
// per-day breakdown over a list of confirmed invoice summaries. Everything
// here is pure and idempotent — re-running over the latest invoice list
// always yields a correct result, which is what lets callers discard stale
// in-flight fetches without coordination.
package reports

import (
	"sort"
	"time"

	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// Summary is the range-level rollup shown on the report header cards.
// Payment methods other than CASH and UPI count toward gross/discount/net
// and the bill count but toward neither method sum.
type Summary struct {
	GrossPaise    int64
	DiscountPaise int64
	NetPaise      int64
	BillCount     int
	CashNetPaise  int64
	UPINetPaise   int64
}

// Summarize accumulates the rollup in one linear pass. An empty slice
// yields the zero Summary, never an error.
func Summarize(invoices []entity.InvoiceSummary) Summary {
	var s Summary
	for _, inv := range invoices {
		s.GrossPaise += inv.SubtotalPaise
		s.DiscountPaise += inv.DiscountPaise
		s.NetPaise += inv.TotalPaise
		s.BillCount++
		switch inv.PaymentMethod {
		case entity.PaymentCash:
			s.CashNetPaise += inv.TotalPaise
		case entity.PaymentUPI:
			s.UPINetPaise += inv.TotalPaise
		}
	}
	return s
}

// DayBucket is one calendar day of the breakdown. Day is the zero-padded
// YYYY-MM-DD key in the viewer's zone. Derived data: recomputed on every
// render, never persisted.
type DayBucket struct {
	Day           string
	GrossPaise    int64
	DiscountPaise int64
	NetPaise      int64
	Bills         int
}

// BucketByLocalDay groups invoices by the calendar day their issue
// timestamp falls on in loc (nil means time.Local — the viewer's zone is
// authoritative, wherever the server lives). Buckets come back sorted by
// day key descending, most recent first.
func BucketByLocalDay(invoices []entity.InvoiceSummary, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}
	byDay := make(map[string]*DayBucket)
	for _, inv := range invoices {
		key := inv.IssuedAt.In(loc).Format("2006-01-02")
		b, ok := byDay[key]
		if !ok {
			b = &DayBucket{Day: key}
			byDay[key] = b
		}
		b.GrossPaise += inv.SubtotalPaise
		b.DiscountPaise += inv.DiscountPaise
		b.NetPaise += inv.TotalPaise
		b.Bills++
	}

	buckets := make([]DayBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day > buckets[j].Day })
	return buckets
}
