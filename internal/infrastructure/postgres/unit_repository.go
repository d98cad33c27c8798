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

var _ repository.UnitRepository = (*UnitRepo)(nil)

const unitColumns = `id, business_id, name, abbreviation, created_at, updated_at`

// UnitRepo implements the UnitRepository port over PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository builds the persistence adapter. Pass pool or tx.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persists a new unit of measure.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.BusinessID, unit.Name, unit.Abbreviation,
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID fetches a unit by ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(),
		`SELECT `+unitColumns+` FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.BusinessID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update updates a unit.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	query := `
		UPDATE units
		SET name = $2, abbreviation = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Abbreviation, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// ListByBusiness lists units for a business with pagination.
func (r *UnitRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE business_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.BusinessID, &u.Name, &u.Abbreviation,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete removes a unit by ID.
func (r *UnitRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
