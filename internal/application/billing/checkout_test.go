package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naayikhata/khata-go/internal/application/billing"
	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain"
	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/internal/infrastructure/kvstore"
	"github.com/naayikhata/khata-go/pkg/logger"
)

type fakeInvoiceAPI struct {
	lastReq dto.CreateInvoiceRequest
	resp    *entity.Invoice
	err     error
}

func (f *fakeInvoiceAPI) CreateInvoice(_ context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	f.lastReq = in
	return f.resp, f.err
}

func TestCheckout_EmptyBillRejectedLocally(t *testing.T) {
	uc := billing.NewCheckoutUseCase(&fakeInvoiceAPI{}, nil)
	_, err := uc.Submit(context.Background(), &entity.DraftBill{ID: "d1"})
	assert.ErrorIs(t, err, domain.ErrEmptyBill)
}

func TestCheckout_SubmitBuildsRequestAndSupersedesDraft(t *testing.T) {
	ctx := context.Background()
	drafts := billing.NewDraftStore(kvstore.NewMemoryStore(), logger.Nop())
	api := &fakeInvoiceAPI{resp: &entity.Invoice{ID: "inv-1", TotalPaise: 21000}}
	uc := billing.NewCheckoutUseCase(api, drafts)

	bill := draft("d1")
	bill.Customer = &entity.DraftCustomer{ID: "cust-1", Name: "Asha"}
	bill.PaymentMethod = entity.PaymentUPI
	bill.UPIRef = "txn-99"
	bill.DiscountPaise = 1000
	drafts.Save(ctx, bill)

	inv, err := uc.Submit(ctx, bill)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)

	// request carries only service ids and quantities; prices are the server's
	require.Len(t, api.lastReq.Items, 1)
	assert.Equal(t, dto.CreateInvoiceItem{ServiceID: "svc", Qty: 1}, api.lastReq.Items[0])
	require.NotNil(t, api.lastReq.CustomerID)
	assert.Equal(t, "cust-1", *api.lastReq.CustomerID)
	assert.Equal(t, int64(1000), api.lastReq.DiscountPaise)
	require.NotNil(t, api.lastReq.UPIRef)
	assert.Equal(t, "txn-99", *api.lastReq.UPIRef)

	assert.Nil(t, drafts.Load(ctx, "d1"), "confirmed invoice supersedes the draft")
}

func TestCheckout_FailedSubmitKeepsDraft(t *testing.T) {
	ctx := context.Background()
	drafts := billing.NewDraftStore(kvstore.NewMemoryStore(), logger.Nop())
	api := &fakeInvoiceAPI{err: errors.New("boom")}
	uc := billing.NewCheckoutUseCase(api, drafts)

	bill := draft("d1")
	drafts.Save(ctx, bill)

	_, err := uc.Submit(ctx, bill)
	require.Error(t, err)
	assert.NotNil(t, drafts.Load(ctx, "d1"), "draft survives a failed submit for retry")
}

func TestCheckout_WalkInHasNullCustomer(t *testing.T) {
	api := &fakeInvoiceAPI{resp: &entity.Invoice{ID: "inv-2"}}
	uc := billing.NewCheckoutUseCase(api, nil)

	_, err := uc.Submit(context.Background(), draft("d2"))
	require.NoError(t, err)
	assert.Nil(t, api.lastReq.CustomerID, "walk-in bill sends customer_id: null")
	assert.Nil(t, api.lastReq.UPIRef)
}
