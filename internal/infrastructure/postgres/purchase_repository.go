package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, business_id, product_id, date, quantity, unit_cost, reference, notes, created_at, updated_at`

// PurchaseRepo implements the PurchaseRepository port over PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository builds the persistence adapter. Pass pool or tx.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persists a purchase event.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.BusinessID, purchase.ProductID, purchase.Date,
		purchase.Quantity, purchase.UnitCost, purchase.Reference, purchase.Notes,
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID fetches a purchase by ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(),
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id,
	).Scan(&p.ID, &p.BusinessID, &p.ProductID, &p.Date, &p.Quantity, &p.UnitCost,
		&p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// Update updates a purchase. The product and business are immutable.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	query := `
		UPDATE purchases
		SET date = $2, quantity = $3, unit_cost = $4, reference = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.Date, purchase.Quantity, purchase.UnitCost,
		purchase.Reference, purchase.Notes, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// ListByBusiness lists purchases with optional product/date filters.
func (r *PurchaseRepo) ListByBusiness(businessID string, f repository.PurchaseFilter, limit, offset int) ([]*entity.Purchase, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + purchaseColumns + ` FROM purchases WHERE business_id = $1`)
	args := []any{businessID}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		fmt.Fprintf(&sb, " AND product_id = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, " ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.list(sb.String(), args...)
}

// ListByProduct returns the complete purchase history for ledger reconstruction.
func (r *PurchaseRepo) ListByProduct(productID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE product_id = $1 ORDER BY date, created_at`
	return r.list(query, productID)
}

func (r *PurchaseRepo) list(query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.ProductID, &p.Date, &p.Quantity,
			&p.UnitCost, &p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete removes a purchase by ID.
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
