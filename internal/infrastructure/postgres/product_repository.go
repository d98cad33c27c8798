package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, sku, name, description, hsn_code, category_id, unit_id, sale_price, gst_rate, quantity, low_stock_level, created_at, updated_at`

// ProductRepo implements the ProductRepository port over PostgreSQL
// (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter. Pass pool or tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BusinessID, product.SKU, product.Name, product.Description,
		product.HSNCode, product.CategoryID, product.UnitID, product.SalePrice,
		product.GSTRate, product.Quantity, product.LowStockLevel,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+selectProductColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU fetches a product by business and SKU.
func (r *ProductRepo) GetBySKU(businessID, sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+selectProductColumns+` FROM products WHERE business_id = $1 AND sku = $2`, businessID, sku)
}

// GetForUpdate locks and fetches the product row. Only valid inside a tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+selectProductColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

const selectProductColumns = `id, business_id, sku, name, description, hsn_code, COALESCE(category_id, ''), COALESCE(unit_id, ''), sale_price, gst_rate, quantity, low_stock_level, created_at, updated_at`

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Description, &p.HSNCode,
		&p.CategoryID, &p.UnitID, &p.SalePrice, &p.GSTRate, &p.Quantity,
		&p.LowStockLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update updates a product. Quantity is excluded on purpose: it only moves
// through AdjustQuantity inside stock transactions.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, hsn_code = $4, category_id = NULLIF($5, ''), unit_id = NULLIF($6, ''),
		    sale_price = $7, gst_rate = $8, low_stock_level = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.HSNCode,
		product.CategoryID, product.UnitID, product.SalePrice, product.GSTRate,
		product.LowStockLevel, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustQuantity adds delta (negative to debit) to the on-hand quantity.
func (r *ProductRepo) AdjustQuantity(id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByBusiness lists products for a business with pagination.
func (r *ProductRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE business_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, businessID, limit, offset)
}

// ListAllByBusiness lists the entire catalog, SKU order, for CSV export.
func (r *ProductRepo) ListAllByBusiness(businessID string) ([]*entity.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE business_id = $1 ORDER BY sku`
	return r.list(query, businessID)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
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

// CountByBusiness counts the products of a business.
func (r *ProductRepo) CountByBusiness(businessID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
