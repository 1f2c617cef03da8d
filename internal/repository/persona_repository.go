package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeredeldo/car-sales-api/internal/domain"
)

// PersonaRepository defines the interface for person registry data access
type PersonaRepository interface {
	Create(ctx context.Context, persona *domain.Persona) error
	FindByID(ctx context.Context, id int64) (*domain.Persona, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Persona, error)
	Update(ctx context.Context, persona *domain.Persona) error
	Delete(ctx context.Context, id int64) error
}

type personaRepository struct {
	db *sql.DB
}

// NewPersonaRepository creates a new instance of PersonaRepository
func NewPersonaRepository(db *sql.DB) PersonaRepository {
	return &personaRepository{db: db}
}

// Create inserts a new person and fills in its storage-assigned ID
func (r *personaRepository) Create(ctx context.Context, persona *domain.Persona) error {
	query := `
		INSERT INTO personas (nombre, apellido, edad, pais_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		persona.Nombre,
		persona.Apellido,
		persona.Edad,
		persona.PaisID,
	).Scan(&persona.ID)

	if err != nil {
		return fmt.Errorf("failed to create persona: %w", err)
	}

	return nil
}

// FindByID retrieves a person by ID
func (r *personaRepository) FindByID(ctx context.Context, id int64) (*domain.Persona, error) {
	query := `
		SELECT id, nombre, apellido, edad, pais_id
		FROM personas
		WHERE id = $1
	`

	persona := &domain.Persona{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&persona.ID,
		&persona.Nombre,
		&persona.Apellido,
		&persona.Edad,
		&persona.PaisID,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to find persona by ID: %w", err)
	}

	return persona, nil
}

// List retrieves persons with offset/limit pagination
func (r *personaRepository) List(ctx context.Context, offset, limit int) ([]*domain.Persona, error) {
	query := `
		SELECT id, nombre, apellido, edad, pais_id
		FROM personas
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	personas := []*domain.Persona{}
	for rows.Next() {
		persona := &domain.Persona{}
		err := rows.Scan(
			&persona.ID,
			&persona.Nombre,
			&persona.Apellido,
			&persona.Edad,
			&persona.PaisID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, persona)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personas: %w", err)
	}

	return personas, nil
}

// Update rewrites a person row
func (r *personaRepository) Update(ctx context.Context, persona *domain.Persona) error {
	query := `
		UPDATE personas
		SET nombre = $2, apellido = $3, edad = $4, pais_id = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		persona.ID,
		persona.Nombre,
		persona.Apellido,
		persona.Edad,
		persona.PaisID,
	)
	if err != nil {
		return fmt.Errorf("failed to update persona: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPersonaNotFound
	}

	return nil
}

// Delete removes a person
func (r *personaRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM personas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPersonaNotFound
	}

	return nil
}
