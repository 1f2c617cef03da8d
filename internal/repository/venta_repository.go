package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeredeldo/car-sales-api/internal/domain"
)

// VentaRepository defines the interface for sales record data access
type VentaRepository interface {
	Create(ctx context.Context, venta *domain.Venta) error
	CreateBatch(ctx context.Context, ventas []*domain.Venta) error
	FindByID(ctx context.Context, id int64) (*domain.Venta, error)
	List(ctx context.Context, comprador string, offset, limit int) ([]*domain.Venta, error)
	FindByAutoID(ctx context.Context, autoID int64) ([]*domain.Venta, error)
	CountByModelo(ctx context.Context, modelo string) (int, error)
	Update(ctx context.Context, venta *domain.Venta) error
	Delete(ctx context.Context, id int64) error
}

type ventaRepository struct {
	db *sql.DB
}

// NewVentaRepository creates a new instance of VentaRepository
func NewVentaRepository(db *sql.DB) VentaRepository {
	return &ventaRepository{db: db}
}

// Create inserts a new sales record and fills in its storage-assigned ID
func (r *ventaRepository) Create(ctx context.Context, venta *domain.Venta) error {
	query := `
		INSERT INTO ventas (nombre_comprador, precio, fecha_venta, auto_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		venta.NombreComprador,
		venta.Precio,
		venta.FechaVenta,
		venta.AutoID,
	).Scan(&venta.ID)

	if err != nil {
		return fmt.Errorf("failed to create venta: %w", err)
	}

	return nil
}

// CreateBatch inserts all sales records inside a single transaction. Callers
// must have verified every referenced auto before calling.
func (r *ventaRepository) CreateBatch(ctx context.Context, ventas []*domain.Venta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO ventas (nombre_comprador, precio, fecha_venta, auto_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for _, venta := range ventas {
		err := tx.QueryRowContext(
			ctx,
			query,
			venta.NombreComprador,
			venta.Precio,
			venta.FechaVenta,
			venta.AutoID,
		).Scan(&venta.ID)
		if err != nil {
			return fmt.Errorf("failed to create venta in batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit venta batch: %w", err)
	}

	return nil
}

// FindByID retrieves a sales record by ID using parameterized queries
func (r *ventaRepository) FindByID(ctx context.Context, id int64) (*domain.Venta, error) {
	query := `
		SELECT id, nombre_comprador, precio, fecha_venta, auto_id
		FROM ventas
		WHERE id = $1
	`

	venta := &domain.Venta{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venta.ID,
		&venta.NombreComprador,
		&venta.Precio,
		&venta.FechaVenta,
		&venta.AutoID,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVentaNotFound
		}
		return nil, fmt.Errorf("failed to find venta by ID: %w", err)
	}

	return venta, nil
}

// List retrieves sales records with an optional case-insensitive substring
// filter on the buyer name, plus offset/limit pagination
func (r *ventaRepository) List(ctx context.Context, comprador string, offset, limit int) ([]*domain.Venta, error) {
	query := `
		SELECT id, nombre_comprador, precio, fecha_venta, auto_id
		FROM ventas
		WHERE ($1 = '' OR nombre_comprador ILIKE '%' || $1 || '%')
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, comprador, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ventas: %w", err)
	}
	defer rows.Close()

	return scanVentas(rows)
}

// FindByAutoID retrieves all sales for a specific vehicle
func (r *ventaRepository) FindByAutoID(ctx context.Context, autoID int64) ([]*domain.Venta, error) {
	query := `
		SELECT id, nombre_comprador, precio, fecha_venta, auto_id
		FROM ventas
		WHERE auto_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, autoID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ventas by auto: %w", err)
	}
	defer rows.Close()

	return scanVentas(rows)
}

// CountByModelo counts sales whose vehicle's modelo equals the given string.
// Exact equality, not a substring match. Returns 0 when nothing matches.
func (r *ventaRepository) CountByModelo(ctx context.Context, modelo string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM ventas v
		JOIN autos a ON a.id = v.auto_id
		WHERE a.modelo = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, modelo).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ventas by modelo: %w", err)
	}

	return count, nil
}

// Update rewrites a sales record row
func (r *ventaRepository) Update(ctx context.Context, venta *domain.Venta) error {
	query := `
		UPDATE ventas
		SET nombre_comprador = $2, precio = $3, fecha_venta = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		venta.ID,
		venta.NombreComprador,
		venta.Precio,
		venta.FechaVenta,
	)
	if err != nil {
		return fmt.Errorf("failed to update venta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrVentaNotFound
	}

	return nil
}

// Delete removes a sales record
func (r *ventaRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ventas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete venta: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrVentaNotFound
	}

	return nil
}

func scanVentas(rows *sql.Rows) ([]*domain.Venta, error) {
	ventas := []*domain.Venta{}
	for rows.Next() {
		venta := &domain.Venta{}
		err := rows.Scan(
			&venta.ID,
			&venta.NombreComprador,
			&venta.Precio,
			&venta.FechaVenta,
			&venta.AutoID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venta: %w", err)
		}
		ventas = append(ventas, venta)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ventas: %w", err)
	}

	return ventas, nil
}
