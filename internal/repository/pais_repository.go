package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeredeldo/car-sales-api/internal/domain"
)

// PaisRepository defines the interface for country registry data access
type PaisRepository interface {
	Create(ctx context.Context, pais *domain.Pais) error
	FindByID(ctx context.Context, id int64) (*domain.Pais, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Pais, error)
	Update(ctx context.Context, pais *domain.Pais) error
	Delete(ctx context.Context, id int64) error
}

type paisRepository struct {
	db *sql.DB
}

// NewPaisRepository creates a new instance of PaisRepository
func NewPaisRepository(db *sql.DB) PaisRepository {
	return &paisRepository{db: db}
}

// Create inserts a new country and fills in its storage-assigned ID
func (r *paisRepository) Create(ctx context.Context, pais *domain.Pais) error {
	query := `
		INSERT INTO paises (nombre)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, pais.Nombre).Scan(&pais.ID)
	if err != nil {
		if isUniqueViolation(err, "paises_nombre_key") {
			return ErrPaisAlreadyExists
		}
		return fmt.Errorf("failed to create pais: %w", err)
	}

	return nil
}

// FindByID retrieves a country by ID
func (r *paisRepository) FindByID(ctx context.Context, id int64) (*domain.Pais, error) {
	query := `SELECT id, nombre FROM paises WHERE id = $1`

	pais := &domain.Pais{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&pais.ID, &pais.Nombre)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaisNotFound
		}
		return nil, fmt.Errorf("failed to find pais by ID: %w", err)
	}

	return pais, nil
}

// List retrieves countries with offset/limit pagination
func (r *paisRepository) List(ctx context.Context, offset, limit int) ([]*domain.Pais, error) {
	query := `
		SELECT id, nombre
		FROM paises
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list paises: %w", err)
	}
	defer rows.Close()

	paises := []*domain.Pais{}
	for rows.Next() {
		pais := &domain.Pais{}
		if err := rows.Scan(&pais.ID, &pais.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan pais: %w", err)
		}
		paises = append(paises, pais)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paises: %w", err)
	}

	return paises, nil
}

// Update rewrites a country row
func (r *paisRepository) Update(ctx context.Context, pais *domain.Pais) error {
	query := `UPDATE paises SET nombre = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, pais.ID, pais.Nombre)
	if err != nil {
		if isUniqueViolation(err, "paises_nombre_key") {
			return ErrPaisAlreadyExists
		}
		return fmt.Errorf("failed to update pais: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPaisNotFound
	}

	return nil
}

// Delete removes a country. Personas referencing it keep existing with a
// null pais_id via the ON DELETE SET NULL constraint.
func (r *paisRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM paises WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete pais: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPaisNotFound
	}

	return nil
}
