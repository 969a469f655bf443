package sandbox

import (
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// reportsHandler serves the pre-aggregated reports the client consumes
// as-is.
type reportsHandler struct {
	st *state
}

func (h *reportsHandler) Customers(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c.Query("start"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "start"), Msg: "Input should be a valid datetime"})
	}
	end, err := parseTimeQuery(c.Query("end"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "end"), Msg: "Input should be a valid datetime"})
	}
	dormantDays := intQuery(c, "dormant_days", 30)
	limit := intQuery(c, "limit", 10)
	includeNever := c.Query("include_never") == "true"

	shopID := currentShopID(c)
	invoices := h.st.snapshotInvoices(shopID)

	// Per-customer aggregates within the range, plus all-time last visit
	// and bill count for the dormancy report.
	type agg struct {
		row      dto.CustomerInsightRow
		lastEver *time.Time
		allTime  int
	}
	byCustomer := make(map[string]*agg)
	for _, si := range invoices {
		inv := si.Invoice
		if inv.CustomerID == "" {
			continue // walk-ins carry no customer history
		}
		a := byCustomer[inv.CustomerID]
		if a == nil {
			a = &agg{row: dto.CustomerInsightRow{CustomerID: inv.CustomerID, CustomerName: inv.CustomerName}}
			byCustomer[inv.CustomerID] = a
		}
		a.allTime++
		t := inv.IssuedAt
		if a.lastEver == nil || t.After(*a.lastEver) {
			a.lastEver = &t
		}
		if inRange(inv.IssuedAt, start, end) {
			a.row.BillCount++
			a.row.GrossPaise += inv.SubtotalPaise
			a.row.DiscountPaise += inv.DiscountPaise
			a.row.NetPaise += inv.TotalPaise
			a.row.LastInvoiceAt = a.lastEver
		}
	}

	var repeat, top []dto.CustomerInsightRow
	for _, a := range byCustomer {
		a.row.LastInvoiceAt = a.lastEver
		if a.row.BillCount >= 2 {
			repeat = append(repeat, a.row)
		}
		if a.row.BillCount > 0 {
			top = append(top, a.row)
		}
	}
	sort.Slice(repeat, func(i, j int) bool {
		if repeat[i].BillCount != repeat[j].BillCount {
			return repeat[i].BillCount > repeat[j].BillCount
		}
		return repeat[i].NetPaise > repeat[j].NetPaise
	})
	sort.Slice(top, func(i, j int) bool { return top[i].NetPaise > top[j].NetPaise })
	if len(top) > limit {
		top = top[:limit]
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -dormantDays)
	var dormant []entity.DormantCustomer
	for _, cust := range h.st.listCustomers(shopID, "") {
		a := byCustomer[cust.ID]
		if a == nil {
			if includeNever {
				dormant = append(dormant, entity.DormantCustomer{CustomerID: cust.ID, CustomerName: cust.Name})
			}
			continue
		}
		if a.lastEver.Before(cutoff) {
			dormant = append(dormant, entity.DormantCustomer{
				CustomerID:       cust.ID,
				CustomerName:     cust.Name,
				LastInvoiceAt:    a.lastEver,
				BillCountAllTime: a.allTime,
			})
		}
	}
	sort.Slice(dormant, func(i, j int) bool {
		li, lj := dormant[i].LastInvoiceAt, dormant[j].LastInvoiceAt
		switch {
		case li == nil:
			return lj != nil
		case lj == nil:
			return false
		default:
			return li.Before(*lj)
		}
	})

	return c.JSON(dto.CustomerInsights{
		Start:            start,
		End:              end,
		DormantDays:      dormantDays,
		RepeatCustomers:  emptyIfNil(repeat),
		TopCustomers:     emptyIfNil(top),
		DormantCustomers: emptyIfNil(dormant),
	})
}

func (h *reportsHandler) Services(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c.Query("start"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "start"), Msg: "Input should be a valid datetime"})
	}
	end, err := parseTimeQuery(c.Query("end"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "end"), Msg: "Input should be a valid datetime"})
	}
	limit := intQuery(c, "limit", 10)

	byService := make(map[string]*dto.ServicePerformanceRow)
	for _, si := range h.st.snapshotInvoices(currentShopID(c)) {
		inv := si.Invoice
		if !inRange(inv.IssuedAt, start, end) {
			continue
		}
		for _, it := range inv.Items {
			r := byService[it.ServiceID]
			if r == nil {
				r = &dto.ServicePerformanceRow{ServiceID: it.ServiceID, ServiceName: it.Description}
				byService[it.ServiceID] = r
			}
			r.Qty += it.Qty
			r.RevenuePaise += it.TotalPaise
			r.InvoiceCount++
		}
	}

	rows := make([]dto.ServicePerformanceRow, 0, len(byService))
	for _, r := range byService {
		rows = append(rows, *r)
	}

	byRevenue := append([]dto.ServicePerformanceRow(nil), rows...)
	sort.Slice(byRevenue, func(i, j int) bool { return byRevenue[i].RevenuePaise > byRevenue[j].RevenuePaise })
	byQty := append([]dto.ServicePerformanceRow(nil), rows...)
	sort.Slice(byQty, func(i, j int) bool { return byQty[i].Qty > byQty[j].Qty })
	if len(byRevenue) > limit {
		byRevenue = byRevenue[:limit]
	}
	if len(byQty) > limit {
		byQty = byQty[:limit]
	}

	return c.JSON(dto.ServicePerformance{
		Start:         start,
		End:           end,
		Limit:         limit,
		TopByRevenue:  emptyIfNil(byRevenue),
		TopByQuantity: emptyIfNil(byQty),
	})
}

// inRange applies the half-open [start, end) convention; zero bounds are
// open.
func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && !t.Before(end) {
		return false
	}
	return true
}

func intQuery(c *fiber.Ctx, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// emptyIfNil keeps JSON arrays as [] rather than null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
