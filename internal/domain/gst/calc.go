// Package gst computes GST line taxes and invoice totals for intra-state
// supplies (CGST + SGST split). All arithmetic stays in decimal with no
// intermediate rounding; rounding belongs to the presentation layer so that
// error does not compound across line items.
package gst

import "github.com/shopspring/decimal"

// Line holds the computed amounts for one invoice line.
type Line struct {
	UnitPrice     decimal.Decimal // pre-tax
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	LineTotal     decimal.Decimal
}

// Totals are invoice-level sums across lines.
type Totals struct {
	Subtotal   decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

var two = decimal.NewFromInt(2)

// UnitPriceFromInclusive converts a tax-inclusive rate, as entered by a
// user, to the pre-tax unit price: inclusive / (1 + rate).
func UnitPriceFromInclusive(inclusiveRate, taxRate decimal.Decimal) decimal.Decimal {
	return inclusiveRate.Div(decimal.NewFromInt(1).Add(taxRate))
}

// ComputeLine computes a line from a pre-tax unit price. taxRate is a
// fraction (0.18 for 18%). The tax splits evenly into CGST and SGST.
func ComputeLine(quantity, unitPrice, taxRate decimal.Decimal) Line {
	taxable := quantity.Mul(unitPrice)
	tax := taxable.Mul(taxRate)
	half := tax.Div(two)
	return Line{
		UnitPrice:     unitPrice,
		TaxableAmount: taxable,
		TaxAmount:     tax,
		CGST:          half,
		SGST:          half,
		LineTotal:     taxable.Add(tax),
	}
}

// ComputeLineInclusive computes a line from a tax-inclusive rate.
func ComputeLineInclusive(quantity, inclusiveRate, taxRate decimal.Decimal) Line {
	return ComputeLine(quantity, UnitPriceFromInclusive(inclusiveRate, taxRate), taxRate)
}

// Sum folds per-line values into invoice totals.
func Sum(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.TaxableAmount)
		t.CGST = t.CGST.Add(l.CGST)
		t.SGST = t.SGST.Add(l.SGST)
		t.Tax = t.Tax.Add(l.TaxAmount)
		t.GrandTotal = t.GrandTotal.Add(l.LineTotal)
	}
	return t
}
