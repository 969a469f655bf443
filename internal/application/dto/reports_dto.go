package dto

import (
	"time"

	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// CustomerInsightRow is one customer aggregated over the report range.
type CustomerInsightRow struct {
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	BillCount     int        `json:"bill_count"`
	GrossPaise    int64      `json:"gross_paise"`
	DiscountPaise int64      `json:"discount_paise"`
	NetPaise      int64      `json:"net_paise"`
	LastInvoiceAt *time.Time `json:"last_invoice_at"`
}

// CustomerInsights is GET /api/reports/customers. Pre-aggregated on the
// server; consumed as-is, never recomputed client-side.
type CustomerInsights struct {
	Start            time.Time                `json:"start"`
	End              time.Time                `json:"end"`
	DormantDays      int                      `json:"dormant_days"`
	RepeatCustomers  []CustomerInsightRow     `json:"repeat_customers"`
	TopCustomers     []CustomerInsightRow     `json:"top_customers"`
	DormantCustomers []entity.DormantCustomer `json:"dormant_customers"`
}

// ServicePerformanceRow is one service aggregated over the report range.
type ServicePerformanceRow struct {
	ServiceID    string `json:"service_id"`
	ServiceName  string `json:"service_name"`
	Qty          int    `json:"qty"`
	RevenuePaise int64  `json:"revenue_paise"`
	InvoiceCount int    `json:"invoice_count"`
}

// ServicePerformance is GET /api/reports/services.
type ServicePerformance struct {
	Start         time.Time               `json:"start"`
	End           time.Time               `json:"end"`
	Limit         int                     `json:"limit"`
	TopByRevenue  []ServicePerformanceRow `json:"top_by_revenue"`
	TopByQuantity []ServicePerformanceRow `json:"top_by_quantity"`
}
