package sandbox

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// invoicesHandler confirms composed bills into invoices. Prices always come
// from the shop's own price list at confirmation time, never from the
// request.
type invoicesHandler struct {
	st *state
}

func (h *invoicesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	shopID := currentShopID(c)

	var fields []fieldError
	if len(in.Items) == 0 {
		fields = append(fields, fieldError{Loc: loc("body", "items"), Msg: "List should have at least 1 item"})
	}
	for i, it := range in.Items {
		if it.Qty < 1 {
			fields = append(fields, fieldError{Loc: loc("body", "items", i, "qty"), Msg: "Input should be greater than or equal to 1"})
		}
	}
	if in.DiscountPaise < 0 {
		fields = append(fields, fieldError{Loc: loc("body", "discount_paise"), Msg: "Input should be greater than or equal to 0"})
	}
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentUPI {
		fields = append(fields, fieldError{Loc: loc("body", "payment_method"), Msg: "Input should be 'CASH' or 'UPI'"})
	}
	if len(fields) > 0 {
		return validationDetail(c, fields...)
	}

	var cust entity.Customer
	if in.CustomerID != nil && *in.CustomerID != "" {
		var ok bool
		cust, ok = h.st.customerByID(shopID, *in.CustomerID)
		if !ok {
			return detail(c, fiber.StatusNotFound, "Customer not found")
		}
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	var subtotal int64
	for i, it := range in.Items {
		svc, ok := h.st.serviceByID(shopID, it.ServiceID)
		if !ok {
			return validationDetail(c, fieldError{Loc: loc("body", "items", i, "service_id"), Msg: "Unknown service"})
		}
		lineTotal := svc.PricePaise * int64(it.Qty)
		items = append(items, entity.InvoiceItem{
			ID:             uuid.NewString(),
			ServiceID:      svc.ID,
			Description:    svc.Name,
			Qty:            it.Qty,
			UnitPricePaise: svc.PricePaise,
			TotalPaise:     lineTotal,
		})
		subtotal += lineTotal
	}

	total := subtotal - in.DiscountPaise
	if total < 0 {
		total = 0
	}

	issuedAt := time.Now().UTC()
	if in.IssuedAt != nil && !in.IssuedAt.IsZero() {
		issuedAt = in.IssuedAt.UTC()
	}

	ref := ""
	if in.UPIRef != nil {
		ref = *in.UPIRef
	}
	inv := entity.Invoice{
		ID:            uuid.NewString(),
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		IssuedAt:      issuedAt,
		Status:        "PAID",
		SubtotalPaise: subtotal,
		DiscountPaise: in.DiscountPaise,
		TotalPaise:    total,
		Items:         items,
		Payments: []entity.Payment{{
			ID:          uuid.NewString(),
			Method:      string(in.PaymentMethod),
			AmountPaise: total,
			Reference:   ref,
		}},
	}
	h.st.addInvoice(shopID, inv, in.PaymentMethod)
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *invoicesHandler) List(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c.Query("start"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "start"), Msg: "Input should be a valid datetime"})
	}
	end, err := parseTimeQuery(c.Query("end"))
	if err != nil {
		return validationDetail(c, fieldError{Loc: loc("query", "end"), Msg: "Input should be a valid datetime"})
	}
	out := h.st.listInvoices(currentShopID(c), c.Query("customer_id"), start, end)
	return c.JSON(out)
}

func (h *invoicesHandler) GetByID(c *fiber.Ctx) error {
	inv, ok := h.st.invoiceByID(currentShopID(c), c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusNotFound, "Invoice not found")
	}
	return c.JSON(inv)
}

// parseTimeQuery reads an RFC3339 query param; empty means unset.
func parseTimeQuery(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
