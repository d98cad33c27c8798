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

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

const businessColumns = `id, name, gstin, address, phone, email, upi_address, status, created_at, updated_at`

// BusinessRepo implements the BusinessRepository port over PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository builds the persistence adapter. Pass pool or tx.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persists a new business.
func (r *BusinessRepo) Create(business *entity.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.GSTIN, business.Address,
		business.Phone, business.Email, business.UPIAddress, business.Status,
		business.CreatedAt, business.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID fetches a business by ID.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	var b entity.Business
	err := r.q.QueryRow(context.Background(),
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.GSTIN, &b.Address, &b.Phone, &b.Email,
		&b.UPIAddress, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update updates a business profile.
func (r *BusinessRepo) Update(business *entity.Business) error {
	query := `
		UPDATE businesses
		SET name = $2, gstin = $3, address = $4, phone = $5, email = $6, upi_address = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.GSTIN, business.Address,
		business.Phone, business.Email, business.UPIAddress, business.Status,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}
