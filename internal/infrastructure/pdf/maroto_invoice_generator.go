// Package pdf renders the printable documents of the back office with
// Maroto v2: the GST tax invoice and the stock ledger report.
//
// Tax invoice layout, A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Business name + GSTIN  │  Invoice no. + Date        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: Address / Phone / Email                             │
//	│  BILL TO: Customer name + GSTIN + contact                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | HSN | Qty | Rate | GST% | CGST | SGST | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Taxable value / CGST / SGST / GRAND TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: UPI payment QR + declaration                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/url"

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
	"github.com/shopspring/decimal"

	appbilling "github.com/nivaanlabs/gstbill-api/internal/application/billing"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF renders the invoice and returns its bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	business *entity.Business,
	customer *entity.Customer,
	items []appbilling.InvoiceItemForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice", true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(business))
	m.AddRows(billToRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice, business) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: business name + GSTIN on the left, invoice number + date right.
func headerRow(invoice *entity.Invoice, business *entity.Business) core.Row {
	number := invoice.Prefix + invoice.Number
	date := invoice.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+business.GSTIN, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sellerRow(business *entity.Business) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Phone: %s   |   Email: %s",
				nonEmpty(business.Address, "-"),
				nonEmpty(business.Phone, "-"),
				nonEmpty(business.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func billToRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   Phone: %s   |   %s",
				nonEmpty(customer.GSTIN, "unregistered"),
				nonEmpty(customer.Phone, "-"),
				nonEmpty(customer.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("GST%", 1, align.Center),
		h("CGST", 1, align.Right),
		h("SGST", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

// tableItemRows: one row per invoice line. Quantities keep their unit
// abbreviation, amounts use Indian digit grouping.
func tableItemRows(items []appbilling.InvoiceItemForPDF) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := it.Quantity.String()
		if it.UnitAbbrev != "" {
			qty += " " + it.UnitAbbrev
		}
		gstPct := it.GSTRate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(it.HSNCode, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(FormatINR(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(gstPct, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(FormatINR(it.CGST), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(FormatINR(it.SGST), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(FormatINR(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

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
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(3),
		col.New(3).Add(
			label("Taxable value:"),
			label("CGST:"),
			label("SGST:"),
			grandLabel("GRAND TOTAL:"),
		),
		col.New(3).Add(
			value("Rs. "+FormatINR(invoice.Subtotal)),
			value("Rs. "+FormatINR(invoice.CGSTTotal)),
			value("Rs. "+FormatINR(invoice.SGSTTotal)),
			grandValue("Rs. "+FormatINR(invoice.GrandTotal)),
		),
		col.New(3),
	)
}

// footerRows: UPI payment QR (when the business has a VPA) + declaration.
func footerRows(invoice *entity.Invoice, business *entity.Business) []core.Row {
	var rows []core.Row

	if business.UPIAddress != "" {
		rows = append(rows, row.New(45).Add(
			col.New(4).Add(code.NewQr(upiPayURI(invoice, business), props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Scan to pay via UPI", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary,
				}),
				text.New(business.UPIAddress, props.Text{
					Size: 8, Top: 14, Left: 3, Color: colorGray,
				}),
				text.New("Amount: Rs. "+FormatINR(invoice.GrandTotal), props.Text{
					Size: 8, Top: 20, Left: 3, Color: colorGray,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Declaration: we declare that this invoice shows the actual price of "+
				"the goods described and that all particulars are true and correct.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// upiPayURI builds the upi://pay deep link encoded into the payment QR.
func upiPayURI(invoice *entity.Invoice, business *entity.Business) string {
	q := url.Values{}
	q.Set("pa", business.UPIAddress)
	q.Set("pn", business.Name)
	q.Set("am", invoice.GrandTotal.StringFixed(2))
	q.Set("cu", "INR")
	q.Set("tn", invoice.Prefix+invoice.Number)
	return "upi://pay?" + q.Encode()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
