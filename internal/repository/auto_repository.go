package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeredeldo/car-sales-api/internal/domain"
)

// AutoRepository defines the interface for vehicle data access
type AutoRepository interface {
	Create(ctx context.Context, auto *domain.Auto) error
	CreateBatch(ctx context.Context, autos []*domain.Auto) error
	FindByID(ctx context.Context, id int64) (*domain.Auto, error)
	FindByChasis(ctx context.Context, numeroChasis string) (*domain.Auto, error)
	List(ctx context.Context, marca, modelo string, offset, limit int) ([]*domain.Auto, error)
	Update(ctx context.Context, auto *domain.Auto) error
	Delete(ctx context.Context, id int64) error
}

type autoRepository struct {
	db *sql.DB
}

// NewAutoRepository creates a new instance of AutoRepository
func NewAutoRepository(db *sql.DB) AutoRepository {
	return &autoRepository{db: db}
}

// Create inserts a new vehicle and fills in its storage-assigned ID
func (r *autoRepository) Create(ctx context.Context, auto *domain.Auto) error {
	query := `
		INSERT INTO autos (marca, modelo, anio, numero_chasis)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		auto.Marca,
		auto.Modelo,
		auto.Anio,
		auto.NumeroChasis,
	).Scan(&auto.ID)

	if err != nil {
		if isUniqueViolation(err, "autos_numero_chasis_key") {
			return ErrChasisTaken
		}
		return fmt.Errorf("failed to create auto: %w", err)
	}

	return nil
}

// CreateBatch inserts all vehicles inside a single transaction. Either every
// row is written or none is.
func (r *autoRepository) CreateBatch(ctx context.Context, autos []*domain.Auto) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO autos (marca, modelo, anio, numero_chasis)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for _, auto := range autos {
		err := tx.QueryRowContext(
			ctx,
			query,
			auto.Marca,
			auto.Modelo,
			auto.Anio,
			auto.NumeroChasis,
		).Scan(&auto.ID)
		if err != nil {
			if isUniqueViolation(err, "autos_numero_chasis_key") {
				return ErrChasisTaken
			}
			return fmt.Errorf("failed to create auto in batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit auto batch: %w", err)
	}

	return nil
}

// FindByID retrieves a vehicle by ID using parameterized queries
func (r *autoRepository) FindByID(ctx context.Context, id int64) (*domain.Auto, error) {
	query := `
		SELECT id, marca, modelo, anio, numero_chasis
		FROM autos
		WHERE id = $1
	`

	auto := &domain.Auto{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&auto.ID,
		&auto.Marca,
		&auto.Modelo,
		&auto.Anio,
		&auto.NumeroChasis,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAutoNotFound
		}
		return nil, fmt.Errorf("failed to find auto by ID: %w", err)
	}

	return auto, nil
}

// FindByChasis retrieves a vehicle by its chassis number
func (r *autoRepository) FindByChasis(ctx context.Context, numeroChasis string) (*domain.Auto, error) {
	query := `
		SELECT id, marca, modelo, anio, numero_chasis
		FROM autos
		WHERE numero_chasis = $1
	`

	auto := &domain.Auto{}
	err := r.db.QueryRowContext(ctx, query, numeroChasis).Scan(
		&auto.ID,
		&auto.Marca,
		&auto.Modelo,
		&auto.Anio,
		&auto.NumeroChasis,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAutoNotFound
		}
		return nil, fmt.Errorf("failed to find auto by chassis: %w", err)
	}

	return auto, nil
}

// List retrieves vehicles with optional case-insensitive substring filters on
// marca and modelo, plus offset/limit pagination
func (r *autoRepository) List(ctx context.Context, marca, modelo string, offset, limit int) ([]*domain.Auto, error) {
	query := `
		SELECT id, marca, modelo, anio, numero_chasis
		FROM autos
		WHERE ($1 = '' OR marca ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR modelo ILIKE '%' || $2 || '%')
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, marca, modelo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list autos: %w", err)
	}
	defer rows.Close()

	autos := []*domain.Auto{}
	for rows.Next() {
		auto := &domain.Auto{}
		err := rows.Scan(
			&auto.ID,
			&auto.Marca,
			&auto.Modelo,
			&auto.Anio,
			&auto.NumeroChasis,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto: %w", err)
		}
		autos = append(autos, auto)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating autos: %w", err)
	}

	return autos, nil
}

// Update rewrites a vehicle row. The chassis number is immutable and is not
// part of the statement.
func (r *autoRepository) Update(ctx context.Context, auto *domain.Auto) error {
	query := `
		UPDATE autos
		SET marca = $2, modelo = $3, anio = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, auto.ID, auto.Marca, auto.Modelo, auto.Anio)
	if err != nil {
		return fmt.Errorf("failed to update auto: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAutoNotFound
	}

	return nil
}

// Delete removes a vehicle. Its sales are removed by the ON DELETE CASCADE
// constraint on ventas.auto_id.
func (r *autoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM autos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete auto: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAutoNotFound
	}

	return nil
}
