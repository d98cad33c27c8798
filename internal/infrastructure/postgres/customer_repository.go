package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, business_id, name, gstin, email, phone, address, created_at, updated_at`

// CustomerRepo implements the CustomerRepository port over PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the persistence adapter. Pass pool or tx.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persists a new customer.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.BusinessID, customer.Name, customer.GSTIN,
		customer.Email, customer.Phone, customer.Address,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.getOne(`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetByBusinessAndPhone fetches a customer by its phone within a business.
func (r *CustomerRepo) GetByBusinessAndPhone(businessID, phone string) (*entity.Customer, error) {
	return r.getOne(`SELECT `+customerColumns+` FROM customers WHERE business_id = $1 AND phone = $2`, businessID, phone)
}

func (r *CustomerRepo) getOne(query string, args ...any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.BusinessID, &c.Name, &c.GSTIN, &c.Email, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update updates a customer.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, gstin = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.GSTIN, customer.Email,
		customer.Phone, customer.Address, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ListByBusiness lists customers for a business with pagination.
func (r *CustomerRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, businessID, limit, offset)
}

// ListAllByBusiness lists every customer of a business, for CSV export.
func (r *CustomerRepo) ListAllByBusiness(businessID string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 ORDER BY name`
	return r.list(query, businessID)
}

func (r *CustomerRepo) list(query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.GSTIN, &c.Email,
			&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete removes a customer by ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
