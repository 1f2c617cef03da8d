package service

import (
	"context"

	"github.com/jeredeldo/car-sales-api/internal/domain"
	"github.com/jeredeldo/car-sales-api/internal/repository"
)

// DefaultRegistroLimit is the page size for the person/country registry
const DefaultRegistroLimit = 100

// PaisInput carries the fields for creating a country
type PaisInput struct {
	Nombre string
}

// PaisUpdate carries a partial country update
type PaisUpdate struct {
	Nombre *string
}

// PaisService defines the interface for country registry logic
type PaisService interface {
	Create(ctx context.Context, input PaisInput) (*domain.Pais, error)
	GetByID(ctx context.Context, id int64) (*domain.Pais, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Pais, error)
	Update(ctx context.Context, id int64, update PaisUpdate) (*domain.Pais, error)
	Delete(ctx context.Context, id int64) error
}

type paisService struct {
	paises repository.PaisRepository
}

// NewPaisService creates a new instance of PaisService
func NewPaisService(paises repository.PaisRepository) PaisService {
	return &paisService{paises: paises}
}

func (s *paisService) Create(ctx context.Context, input PaisInput) (*domain.Pais, error) {
	pais := &domain.Pais{Nombre: input.Nombre}
	if err := s.paises.Create(ctx, pais); err != nil {
		return nil, err
	}
	return pais, nil
}

func (s *paisService) GetByID(ctx context.Context, id int64) (*domain.Pais, error) {
	return s.paises.FindByID(ctx, id)
}

func (s *paisService) List(ctx context.Context, skip, limit int) ([]*domain.Pais, error) {
	skip, limit = normalizePage(skip, limit, DefaultRegistroLimit)
	return s.paises.List(ctx, skip, limit)
}

func (s *paisService) Update(ctx context.Context, id int64, update PaisUpdate) (*domain.Pais, error) {
	pais, err := s.paises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Nombre != nil {
		pais.Nombre = *update.Nombre
	}

	if err := s.paises.Update(ctx, pais); err != nil {
		return nil, err
	}

	return pais, nil
}

func (s *paisService) Delete(ctx context.Context, id int64) error {
	return s.paises.Delete(ctx, id)
}

// PersonaInput carries the fields for creating a person. PaisID is optional.
type PersonaInput struct {
	Nombre   string
	Apellido string
	Edad     int
	PaisID   *int64
}

// PersonaUpdate carries a partial person update. Nil fields are left
// untouched; clearing an existing pais_id is not supported through updates.
type PersonaUpdate struct {
	Nombre   *string
	Apellido *string
	Edad     *int
	PaisID   *int64
}

// PersonaService defines the interface for person registry logic
type PersonaService interface {
	Create(ctx context.Context, input PersonaInput) (*domain.Persona, error)
	GetByID(ctx context.Context, id int64) (*domain.Persona, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Persona, error)
	Update(ctx context.Context, id int64, update PersonaUpdate) (*domain.Persona, error)
	Delete(ctx context.Context, id int64) error
}

type personaService struct {
	personas repository.PersonaRepository
	paises   repository.PaisRepository
}

// NewPersonaService creates a new instance of PersonaService
func NewPersonaService(personas repository.PersonaRepository, paises repository.PaisRepository) PersonaService {
	return &personaService{personas: personas, paises: paises}
}

// Create persists a person after verifying any referenced country exists
func (s *personaService) Create(ctx context.Context, input PersonaInput) (*domain.Persona, error) {
	if input.PaisID != nil {
		if _, err := s.paises.FindByID(ctx, *input.PaisID); err != nil {
			return nil, err
		}
	}

	persona := &domain.Persona{
		Nombre:   input.Nombre,
		Apellido: input.Apellido,
		Edad:     input.Edad,
		PaisID:   input.PaisID,
	}

	if err := s.personas.Create(ctx, persona); err != nil {
		return nil, err
	}

	return persona, nil
}

func (s *personaService) GetByID(ctx context.Context, id int64) (*domain.Persona, error) {
	return s.personas.FindByID(ctx, id)
}

func (s *personaService) List(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	skip, limit = normalizePage(skip, limit, DefaultRegistroLimit)
	return s.personas.List(ctx, skip, limit)
}

// Update merges only the supplied fields, re-checking the country reference
// when it changes
func (s *personaService) Update(ctx context.Context, id int64, update PersonaUpdate) (*domain.Persona, error) {
	persona, err := s.personas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Nombre != nil {
		persona.Nombre = *update.Nombre
	}
	if update.Apellido != nil {
		persona.Apellido = *update.Apellido
	}
	if update.Edad != nil {
		persona.Edad = *update.Edad
	}
	if update.PaisID != nil {
		if _, err := s.paises.FindByID(ctx, *update.PaisID); err != nil {
			return nil, err
		}
		persona.PaisID = update.PaisID
	}

	if err := s.personas.Update(ctx, persona); err != nil {
		return nil, err
	}

	return persona, nil
}

func (s *personaService) Delete(ctx context.Context, id int64) error {
	return s.personas.Delete(ctx, id)
}
