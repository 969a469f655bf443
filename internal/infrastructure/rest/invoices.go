package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// CreateInvoice submits a composed bill and returns the confirmed invoice,
// the authoritative record from here on.
func (c *Client) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	var out entity.Invoice
	if err := c.do(ctx, http.MethodPost, "/api/invoices/", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvoices fetches invoice summaries for a date range and/or customer.
func (c *Client) ListInvoices(ctx context.Context, q dto.InvoiceQuery) ([]entity.InvoiceSummary, error) {
	params := map[string]string{}
	if q.CustomerID != "" {
		params["customer_id"] = q.CustomerID
	}
	if !q.Start.IsZero() {
		params["start"] = q.Start.UTC().Format(time.RFC3339)
	}
	if !q.End.IsZero() {
		params["end"] = q.End.UTC().Format(time.RFC3339)
	}

	var out []entity.InvoiceSummary
	if err := c.do(ctx, http.MethodGet, "/api/invoices", nil, &out, params); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoice fetches one confirmed invoice with items and payments.
func (c *Client) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	var out entity.Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices/"+id, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
