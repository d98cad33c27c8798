package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/stockledger"
)

// MarotoLedgerGenerator implements reports.LedgerPDFGenerator with Maroto v2.
type MarotoLedgerGenerator struct{}

// NewMarotoLedgerGenerator builds the generator.
func NewMarotoLedgerGenerator() *MarotoLedgerGenerator { return &MarotoLedgerGenerator{} }

// GenerateLedgerPDF renders the reconstructed movement report of one product.
func (g *MarotoLedgerGenerator) GenerateLedgerPDF(
	_ context.Context,
	business *entity.Business,
	product *entity.Product,
	unitAbbrev string,
	ledger stockledger.Ledger,
	opts stockledger.Options,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock Ledger", true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(ledgerHeaderRow(business, product, unitAbbrev, opts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(ledgerSummaryRow(ledger, unitAbbrev))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(ledgerTableHeaderRow())
	for _, r := range ledgerTableRows(ledger.Rows) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate ledger: %w", err)
	}
	return doc.GetBytes(), nil
}

func ledgerHeaderRow(business *entity.Business, product *entity.Product, unitAbbrev string, opts stockledger.Options) core.Row {
	window := "full history"
	if !opts.From.IsZero() || !opts.To.IsZero() {
		from, to := "...", "..."
		if !opts.From.IsZero() {
			from = opts.From.Format("02/01/2006")
		}
		if !opts.To.IsZero() {
			to = opts.To.Format("02/01/2006")
		}
		window = from + " to " + to
	}
	item := product.Name + " (" + product.SKU + ")"
	if unitAbbrev != "" {
		item += " in " + unitAbbrev
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(item, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("STOCK LEDGER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(window, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// ledgerSummaryRow: the derived figures above the table. Initial stock is
// shown so a mismatch with recorded history is visible to the reader.
func ledgerSummaryRow(ledger stockledger.Ledger, unitAbbrev string) core.Row {
	qty := func(s string) string {
		if unitAbbrev != "" {
			return s + " " + unitAbbrev
		}
		return s
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Initial stock: %s   |   Opening at window start: %s",
				qty(ledger.InitialStock.String()),
				qty(ledger.Opening.String()),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func ledgerTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Reference", 4, align.Left),
		h("Opening", 1, align.Right),
		h("In", 1, align.Right),
		h("Out", 1, align.Right),
		h("Closing", 3, align.Right),
	)
}

func ledgerTableRows(rows []stockledger.Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		ref := ""
		for i, s := range r.References {
			if i > 0 {
				ref += ", "
			}
			ref += s
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.Date.Format("02/01/2006"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(ref, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.Opening.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(r.Purchased.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(r.Sold.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(r.Closing.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}
