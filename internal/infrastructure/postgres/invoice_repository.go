package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, business_id, customer_id, prefix, number, date, subtotal, cgst_total, sgst_total, grand_total, notes, created_at, updated_at`

// InvoiceRepo implements the InvoiceRepository port over PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the persistence adapter. Pass pool or tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// NextNumber returns the next sequential number for business+prefix.
// The upsert locks the sequence row, so concurrent invoice creations for
// the same business serialize here. Only valid inside a tx.
func (r *InvoiceRepo) NextNumber(businessID, prefix string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (business_id, prefix, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (business_id, prefix)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, businessID, prefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

// Create persists the invoice header and its items.
func (r *InvoiceRepo) Create(invoice *entity.Invoice, items []*entity.InvoiceItem) error {
	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), headerQuery,
		invoice.ID, invoice.BusinessID, invoice.CustomerID, invoice.Prefix, invoice.Number,
		invoice.Date, invoice.Subtotal, invoice.CGSTTotal, invoice.SGSTTotal,
		invoice.GrandTotal, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s%s already taken: %w", invoice.Prefix, invoice.Number, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, product_id, quantity, unit_price, gst_rate, taxable_amount, cgst, sgst, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.InvoiceID, item.ProductID, item.Quantity, item.UnitPrice,
			item.GSTRate, item.TaxableAmount, item.CGST, item.SGST, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID fetches an invoice header by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.BusinessID, &inv.CustomerID, &inv.Prefix, &inv.Number,
		&inv.Date, &inv.Subtotal, &inv.CGSTTotal, &inv.SGSTTotal, &inv.GrandTotal,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID fetches the items of an invoice.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, gst_rate, taxable_amount, cgst, sgst, line_total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.GSTRate, &it.TaxableAmount, &it.CGST, &it.SGST, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByBusiness lists invoice headers for a business, newest first.
func (r *InvoiceRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE business_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.BusinessID, &inv.CustomerID, &inv.Prefix, &inv.Number,
			&inv.Date, &inv.Subtotal, &inv.CGSTTotal, &inv.SGSTTotal, &inv.GrandTotal,
			&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// ListSalesByProduct returns every sale of the product across all invoices,
// joined to the parent invoice for the date and number.
func (r *InvoiceRepo) ListSalesByProduct(productID string) ([]repository.SaleEvent, error) {
	query := `
		SELECT i.id, i.prefix || i.number, i.date, it.quantity
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		WHERE it.product_id = $1
		ORDER BY i.date, i.created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sales by product: %w", err)
	}
	defer rows.Close()
	var events []repository.SaleEvent
	for rows.Next() {
		var e repository.SaleEvent
		if err := rows.Scan(&e.InvoiceID, &e.InvoiceNumber, &e.Date, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes an invoice; items cascade at the database level.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
