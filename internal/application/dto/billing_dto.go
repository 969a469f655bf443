package dto

import (
	"time"

	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// CreateServiceRequest body for POST /api/services.
type CreateServiceRequest struct {
	Name       string `json:"name"`
	PricePaise int64  `json:"price_paise"`
}

// UpdateServiceRequest body for PATCH /api/services/{id}. Nil fields are
// left untouched.
type UpdateServiceRequest struct {
	Name       *string `json:"name,omitempty"`
	PricePaise *int64  `json:"price_paise,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// UpdateCustomerRequest body for PATCH /api/customers/{id}.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// InvoiceQuery filters GET /api/invoices. Zero values mean "no filter";
// Start is inclusive, End exclusive.
type InvoiceQuery struct {
	CustomerID string
	Start      time.Time
	End        time.Time
}

// CreateInvoiceItem is one billed line: the service and how many times it
// was performed. Prices are not sent; the backend snapshots its own.
type CreateInvoiceItem struct {
	ServiceID string `json:"service_id"`
	Qty       int    `json:"qty"`
}

// CreateInvoiceRequest body for POST /api/invoices/. CustomerID is null for
// walk-ins; UPIRef is null unless the payment method is UPI.
type CreateInvoiceRequest struct {
	CustomerID    *string              `json:"customer_id"`
	IssuedAt      *time.Time           `json:"issued_at,omitempty"`
	Items         []CreateInvoiceItem  `json:"items"`
	DiscountPaise int64                `json:"discount_paise"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	UPIRef        *string              `json:"upi_ref"`
}
