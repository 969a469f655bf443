// Package billing holds the client-side bill lifecycle: composing line
// items, caching the draft locally, and submitting it for server
// confirmation.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// SubtotalPaise sums price*qty over the line items. Zero for an empty list.
func SubtotalPaise(items []entity.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.PricePaise * int64(it.Qty)
	}
	return sum
}

// BillTotalPaise is the payable amount: subtotal minus discount, floored
// at zero so an over-generous discount never produces a negative bill.
func BillTotalPaise(items []entity.LineItem, discountPaise int64) int64 {
	total := SubtotalPaise(items) - discountPaise
	if total < 0 {
		return 0
	}
	return total
}

// Composer maintains the editable line-item list of one not-yet-submitted
// bill. Every mutation writes the draft through to the store, so a crash
// mid-composition loses at most nothing.
type Composer struct {
	store *DraftStore
	bill  *entity.DraftBill
}

// NewComposer starts a fresh draft. Cash is the default payment method,
// matching how most salon bills settle.
func NewComposer(store *DraftStore, shopName string) *Composer {
	return &Composer{
		store: store,
		bill: &entity.DraftBill{
			ID:            uuid.New().String(),
			CreatedAt:     time.Now(),
			ShopName:      shopName,
			PaymentMethod: entity.PaymentCash,
		},
	}
}

// Resume continues composing a previously saved draft.
func Resume(store *DraftStore, bill *entity.DraftBill) *Composer {
	return &Composer{store: store, bill: bill}
}

// Bill exposes the draft being composed.
func (c *Composer) Bill() *entity.DraftBill { return c.bill }

// AddService adds one unit of the service. If a line for it already exists
// its quantity goes up by one and the line keeps its position; otherwise a
// new line is appended with the service's current name and price
// snapshotted.
func (c *Composer) AddService(ctx context.Context, svc entity.Service) {
	for i := range c.bill.Items {
		if c.bill.Items[i].ServiceID == svc.ID {
			c.bill.Items[i].Qty++
			c.save(ctx)
			return
		}
	}
	c.bill.Items = append(c.bill.Items, entity.LineItem{
		ServiceID:  svc.ID,
		Name:       svc.Name,
		PricePaise: svc.PricePaise,
		Qty:        1,
	})
	c.save(ctx)
}

// IncrementQty bumps the line for serviceID by one. No-op when absent.
func (c *Composer) IncrementQty(ctx context.Context, serviceID string) {
	for i := range c.bill.Items {
		if c.bill.Items[i].ServiceID == serviceID {
			c.bill.Items[i].Qty++
			c.save(ctx)
			return
		}
	}
}

// DecrementQty lowers the line for serviceID by one. A line at qty 1 is
// removed outright; zero-quantity rows never exist. No-op when absent.
func (c *Composer) DecrementQty(ctx context.Context, serviceID string) {
	for i := range c.bill.Items {
		if c.bill.Items[i].ServiceID != serviceID {
			continue
		}
		if c.bill.Items[i].Qty <= 1 {
			c.bill.Items = append(c.bill.Items[:i], c.bill.Items[i+1:]...)
		} else {
			c.bill.Items[i].Qty--
		}
		c.save(ctx)
		return
	}
}

// SetCustomer attaches (or with nil detaches) the optional customer.
func (c *Composer) SetCustomer(ctx context.Context, customer *entity.DraftCustomer) {
	c.bill.Customer = customer
	c.save(ctx)
}

// SetDiscountPaise replaces the flat discount. Negative input is clamped
// to zero; discounts are subtractions, not surcharges.
func (c *Composer) SetDiscountPaise(ctx context.Context, paise int64) {
	if paise < 0 {
		paise = 0
	}
	c.bill.DiscountPaise = paise
	c.save(ctx)
}

// SetPayment records how the bill will settle. The UPI reference is only
// meaningful for UPI and is cleared otherwise.
func (c *Composer) SetPayment(ctx context.Context, method entity.PaymentMethod, upiRef string) {
	c.bill.PaymentMethod = method
	if method != entity.PaymentUPI {
		upiRef = ""
	}
	c.bill.UPIRef = upiRef
	c.save(ctx)
}

// SubtotalPaise is the pre-discount sum of the current lines.
func (c *Composer) SubtotalPaise() int64 { return SubtotalPaise(c.bill.Items) }

// TotalPaise is the payable amount for the current lines and discount.
func (c *Composer) TotalPaise() int64 {
	return BillTotalPaise(c.bill.Items, c.bill.DiscountPaise)
}

func (c *Composer) save(ctx context.Context) {
	if c.store != nil {
		c.store.Save(ctx, c.bill)
	}
}
