package entity

import "time"

// Customer is a shop customer. Phone is optional but unique per shop when
// present; the backend rejects duplicates.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Shop identity returned by GET /api/users/me.
type Me struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	ShopID   string `json:"shop_id"`
	ShopName string `json:"shop_name"`
}

// DormantCustomer is a customer with no invoice inside a trailing window
// (or never billed at all). Computed server-side, consumed as-is.
type DormantCustomer struct {
	CustomerID       string     `json:"customer_id"`
	CustomerName     string     `json:"customer_name"`
	LastInvoiceAt    *time.Time `json:"last_invoice_at"`
	BillCountAllTime int        `json:"bill_count_all_time"`
}
