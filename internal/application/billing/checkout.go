package billing

import (
	"context"
	"fmt"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// CheckoutUseCase submits a composed draft to the backend and, on success,
// supersedes the local draft with the confirmed invoice id.
type CheckoutUseCase struct {
	api    InvoiceAPI
	drafts *DraftStore
}

// NewCheckoutUseCase builds the use case.
func NewCheckoutUseCase(api InvoiceAPI, drafts *DraftStore) *CheckoutUseCase {
	return &CheckoutUseCase{api: api, drafts: drafts}
}

// Submit posts the draft as POST /api/invoices/. The draft survives any
// failure so the user can retry; only a confirmed invoice discards it.
func (uc *CheckoutUseCase) Submit(ctx context.Context, bill *entity.DraftBill) (*entity.Invoice, error) {
	if len(bill.Items) == 0 {
		return nil, domain.ErrEmptyBill
	}

	req := dto.CreateInvoiceRequest{
		Items:         make([]dto.CreateInvoiceItem, 0, len(bill.Items)),
		DiscountPaise: bill.DiscountPaise,
		PaymentMethod: bill.PaymentMethod,
	}
	if bill.Customer != nil && bill.Customer.ID != "" {
		id := bill.Customer.ID
		req.CustomerID = &id
	}
	if bill.UPIRef != "" {
		ref := bill.UPIRef
		req.UPIRef = &ref
	}
	for _, it := range bill.Items {
		req.Items = append(req.Items, dto.CreateInvoiceItem{ServiceID: it.ServiceID, Qty: it.Qty})
	}

	inv, err := uc.api.CreateInvoice(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submit bill %s: %w", bill.ID, err)
	}

	if uc.drafts != nil {
		uc.drafts.Supersede(ctx, bill.ID)
	}
	return inv, nil
}
