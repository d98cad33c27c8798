package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implements the read-only dashboard queries over PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the persistence adapter. Pass pool or tx.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary aggregates invoices for a business over [from, to].
func (r *ReportRepo) SalesSummary(businessID string, from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(cgst_total + sgst_total), 0),
		       COALESCE(SUM(grand_total), 0)
		FROM invoices
		WHERE business_id = $1 AND date >= $2 AND date <= $3`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, businessID, from, to).Scan(
		&s.InvoiceCount, &s.Subtotal, &s.Tax, &s.GrandTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}

// LowStockProducts returns products at or below their low-stock threshold,
// lowest stock first.
func (r *ReportRepo) LowStockProducts(businessID string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + selectProductColumns + `
		FROM products
		WHERE business_id = $1 AND quantity <= low_stock_level
		ORDER BY quantity
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Description, &p.HSNCode,
			&p.CategoryID, &p.UnitID, &p.SalePrice, &p.GSTRate, &p.Quantity,
			&p.LowStockLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CustomerCount counts the customers of a business.
func (r *ReportRepo) CustomerCount(businessID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM customers WHERE business_id = $1`, businessID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("customer count: %w", err)
	}
	return n, nil
}

// ProductCount counts the products of a business.
func (r *ReportRepo) ProductCount(businessID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("product count: %w", err)
	}
	return n, nil
}
