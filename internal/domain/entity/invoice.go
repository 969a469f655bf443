package entity

import "time"

// PaymentMethod is how a bill was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentUPI  PaymentMethod = "UPI"
)

// InvoiceItem is a confirmed invoice line. Description and unit price are
// snapshots of the service at billing time.
type InvoiceItem struct {
	ID             string `json:"id"`
	ServiceID      string `json:"service_id,omitempty"`
	Description    string `json:"description"`
	Qty            int    `json:"qty"`
	UnitPricePaise int64  `json:"unit_price_paise"`
	TotalPaise     int64  `json:"total_paise"`
}

// Payment is one settlement record attached to an invoice.
type Payment struct {
	ID          string `json:"id"`
	Method      string `json:"method"`
	AmountPaise int64  `json:"amount_paise"`
	Reference   string `json:"reference,omitempty"`
}

// Invoice is the server-confirmed, authoritative record of a completed
// bill. Invariants held by the backend and re-checked in the sandbox:
//
//	SubtotalPaise = sum(item.UnitPricePaise * item.Qty)
//	TotalPaise    = max(0, SubtotalPaise - DiscountPaise)
type Invoice struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	IssuedAt      time.Time     `json:"issued_at"`
	Status        string        `json:"status"`
	SubtotalPaise int64         `json:"subtotal_paise"`
	DiscountPaise int64         `json:"discount_paise"`
	TotalPaise    int64         `json:"total_paise"`
	Items         []InvoiceItem `json:"items"`
	Payments      []Payment     `json:"payments"`
}

// InvoiceSummary is the list-endpoint row used by reports. The backend
// guarantees a parseable IssuedAt; aggregation does not re-validate it.
type InvoiceSummary struct {
	ID            string        `json:"id"`
	IssuedAt      time.Time     `json:"issued_at"`
	CustomerName  string        `json:"customer_name,omitempty"`
	SubtotalPaise int64         `json:"subtotal_paise"`
	DiscountPaise int64         `json:"discount_paise"`
	TotalPaise    int64         `json:"total_paise"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
