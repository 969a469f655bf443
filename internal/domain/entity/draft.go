package entity

import "time"

// LineItem is one editable row of a bill being composed. Qty is always >= 1;
// a row decremented to zero is removed, never kept around.
type LineItem struct {
	ServiceID  string `json:"service_id"`
	Name       string `json:"name"`
	PricePaise int64  `json:"price_paise"`
	Qty        int    `json:"qty"`
}

// DraftCustomer is the optional customer attached to a draft. Only a
// reference; the authoritative record lives on the server.
type DraftCustomer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DraftBill is a client-held, not-yet-confirmed bill. It is persisted to
// session-scoped storage on every save so a crash or restart does not lose
// in-progress work, and it is superseded (never synced back) once the
// server returns a confirmed invoice.
type DraftBill struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	ShopName      string         `json:"shop_name,omitempty"`
	Customer      *DraftCustomer `json:"customer,omitempty"`
	Items         []LineItem     `json:"items"`
	DiscountPaise int64          `json:"discount_paise,omitempty"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	UPIRef        string         `json:"upi_ref,omitempty"`
}
