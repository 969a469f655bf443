package billing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/pkg/money"
)

const receiptWidth = 32 // narrow enough for a 58mm thermal roll

// ReceiptText renders a confirmed invoice as a plain-text receipt. The PDF
// rendition lives in infrastructure/pdf; this one feeds terminals and
// thermal printers.
func ReceiptText(inv *entity.Invoice, shopName string) string {
	var b strings.Builder
	line := strings.Repeat("-", receiptWidth)

	// widths in runes, not bytes: "₹" is multibyte
	center := func(s string) {
		if pad := (receiptWidth - utf8.RuneCountInString(s)) / 2; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	row := func(left, right string) {
		gap := receiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
		if gap < 1 {
			gap = 1
		}
		fmt.Fprintf(&b, "%s%s%s\n", left, strings.Repeat(" ", gap), right)
	}

	if shopName != "" {
		center(shopName)
	}
	center(inv.IssuedAt.Local().Format("02 Jan 2006 3:04 PM"))
	if inv.CustomerName != "" {
		center("For: " + inv.CustomerName)
	}
	b.WriteString(line + "\n")

	for _, it := range inv.Items {
		row(fmt.Sprintf("%s x%d", it.Description, it.Qty), money.FormatPaise(it.TotalPaise))
	}
	b.WriteString(line + "\n")

	row("Subtotal", money.FormatPaise(inv.SubtotalPaise))
	if inv.DiscountPaise > 0 {
		row("Discount", "-"+money.FormatPaise(inv.DiscountPaise))
	}
	row("Total", money.FormatPaise(inv.TotalPaise))
	for _, p := range inv.Payments {
		label := "Paid (" + p.Method + ")"
		if p.Reference != "" {
			label += " " + p.Reference
		}
		row(label, money.FormatPaise(p.AmountPaise))
	}
	b.WriteString(line + "\n")
	center("Thank you, visit again!")

	return b.String()
}
