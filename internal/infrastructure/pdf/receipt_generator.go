// Package pdf renders printable invoice receipts with Maroto v2.
//
// A5 layout:
//
//	┌───────────────────────────────────────┐
//	│  HEADER: Shop name  │  Invoice # + date │
//	│  ─────────────────────────────────────  │
//	│  CUSTOMER: name + phone                 │
//	│  ─────────────────────────────────────  │
//	│  TABLE: Qty | Service | Price | Amount  │
//	│  ─────────────────────────────────────  │
//	│  TOTALS: Subtotal / Discount / TOTAL    │
//	│  FOOTER: payment method + QR            │
//	└───────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/pkg/money"
)

var (
	colorAccent = &props.Color{Red: 13, Green: 110, Blue: 93}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implements billing.ReceiptPDFGenerator using Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator builds the generator.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF renders the receipt and returns its bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	invoice *entity.Invoice,
	shopName string,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Receipt "+invoice.ID, true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	if customer != nil {
		m.AddRows(customerRow(customer))
	} else {
		m.AddRows(walkInRow())
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))
	m.AddRows(paymentRow(invoice))

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: shop name (left), invoice id + issue date (right).
func headerRow(invoice *entity.Invoice, shopName string) core.Row {
	issued := invoice.IssuedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorAccent, Top: 1,
			}),
			text.New("Receipt", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(invoice.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(issued, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(nonEmpty(customer.Phone, "—"), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		),
	)
}

func walkInRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Walk-in customer", props.Text{
				Style: fontstyle.Italic, Size: 9, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorAccent, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Service", 6, align.Left),
		h("Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// itemRows: one row per invoice line.
func itemRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(it.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				rupees(it.UnitPricePaise),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				rupees(it.TotalPaise),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned subtotal / discount / grand total block.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorAccent, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorAccent, Right: 1,
		})
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value(rupees(invoice.SubtotalPaise))}
	if invoice.DiscountPaise > 0 {
		labels = append(labels, label("Discount:"))
		values = append(values, value("-"+rupees(invoice.DiscountPaise)))
	}
	labels = append(labels, grandLabel("TOTAL:"))
	values = append(values, grandValue(rupees(invoice.TotalPaise)))

	return row.New(24).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

func paymentRow(invoice *entity.Invoice) core.Row {
	label := "Payment pending"
	if len(invoice.Payments) > 0 {
		p := invoice.Payments[0]
		label = "Paid by " + p.Method
		if p.Reference != "" {
			label += "  (ref " + p.Reference + ")"
		}
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// footerRow: QR of the invoice id plus thank-you line.
func footerRow(invoice *entity.Invoice) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(invoice.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Scan to look up this bill.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Thank you, visit again!", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14,
				Left: 3, Color: colorAccent,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// rupees renders a paise amount as "Rs. 1,23,456". The built-in helvetica
// font has no rupee glyph, so the PDF uses "Rs." instead of the symbol.
func rupees(paise int64) string {
	return money.FormatPaiseRs(paise)
}
