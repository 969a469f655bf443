package billing

import (
	"context"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// InvoiceAPI is the slice of the backend this package needs: turning a
// composed bill into a confirmed invoice. Implemented by the REST client;
// tests plug in fakes.
type InvoiceAPI interface {
	CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error)
}

// ServiceCatalog lists the shop's price list for composing bills.
type ServiceCatalog interface {
	ListServices(ctx context.Context) ([]entity.Service, error)
}

// ReceiptPDFGenerator renders a confirmed invoice as a printable receipt.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, invoice *entity.Invoice, shopName string, customer *entity.Customer) ([]byte, error)
}
