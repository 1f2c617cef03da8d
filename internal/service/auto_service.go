package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeredeldo/car-sales-api/internal/domain"
	"github.com/jeredeldo/car-sales-api/internal/repository"
	"github.com/jeredeldo/car-sales-api/internal/validation"
	"github.com/jeredeldo/car-sales-api/internal/vin"
)

const (
	// MaxChasisAttempts caps the chassis generation retry loop. A collision in
	// the 33^17 keyspace is astronomically unlikely, so hitting this cap means
	// something is broken; the unique constraint on autos.numero_chasis is the
	// authoritative guarantee either way.
	MaxChasisAttempts = 1000

	// DefaultListLimit is the page size when the caller does not supply one
	DefaultListLimit = 10
)

// ErrChasisExhausted is returned when chassis generation keeps colliding past
// MaxChasisAttempts. Surfaced as an internal error, never as a client fault.
var ErrChasisExhausted = errors.New("could not generate a unique chassis number")

// AutoInput carries the caller-supplied fields for creating a vehicle. The
// chassis number is always assigned by the service.
type AutoInput struct {
	Marca  string
	Modelo string
	Anio   int
}

// AutoUpdate carries a partial update. Nil fields are left untouched.
type AutoUpdate struct {
	Marca  *string
	Modelo *string
	Anio   *int
}

// AutoService defines the interface for vehicle business logic
type AutoService interface {
	Create(ctx context.Context, input AutoInput) (*domain.Auto, error)
	CreateBatch(ctx context.Context, inputs []AutoInput) ([]*domain.Auto, error)
	GetByID(ctx context.Context, id int64) (*domain.Auto, error)
	GetByChasis(ctx context.Context, numeroChasis string) (*domain.Auto, error)
	List(ctx context.Context, marca, modelo string, skip, limit int) ([]*domain.Auto, error)
	Update(ctx context.Context, id int64, update AutoUpdate) (*domain.Auto, error)
	Delete(ctx context.Context, id int64) error
}

type autoService struct {
	autos    repository.AutoRepository
	generate vin.Generator
}

// NewAutoService creates a new instance of AutoService. A nil generator falls
// back to the random chassis generator; tests inject deterministic ones.
func NewAutoService(autos repository.AutoRepository, generate vin.Generator) AutoService {
	if generate == nil {
		generate = vin.New
	}
	return &autoService{autos: autos, generate: generate}
}

// Create validates the year, assigns a unique chassis number and persists the
// vehicle. Candidate chassis numbers are checked against storage before the
// insert; an insert that still hits the unique constraint re-enters the loop.
func (s *autoService) Create(ctx context.Context, input AutoInput) (*domain.Auto, error) {
	if err := validation.Anio(input.Anio); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < MaxChasisAttempts; attempt++ {
		numeroChasis, err := s.freeChasis(ctx)
		if err != nil {
			return nil, err
		}

		auto := &domain.Auto{
			Marca:        input.Marca,
			Modelo:       input.Modelo,
			Anio:         input.Anio,
			NumeroChasis: numeroChasis,
		}

		err = s.autos.Create(ctx, auto)
		if errors.Is(err, repository.ErrChasisTaken) {
			// Lost a race with a concurrent creator; generate a fresh number.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create auto: %w", err)
		}

		return auto, nil
	}

	return nil, ErrChasisExhausted
}

// CreateBatch validates every item, assigns chassis numbers for all of them,
// and inserts them in a single transaction. Nothing is written if any item is
// invalid or any insert fails.
func (s *autoService) CreateBatch(ctx context.Context, inputs []AutoInput) ([]*domain.Auto, error) {
	for _, input := range inputs {
		if err := validation.Anio(input.Anio); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < MaxChasisAttempts; attempt++ {
		autos := make([]*domain.Auto, 0, len(inputs))
		assigned := make(map[string]bool, len(inputs))

		for _, input := range inputs {
			numeroChasis, err := s.freeChasis(ctx)
			if err != nil {
				return nil, err
			}
			if assigned[numeroChasis] {
				// Collision within the batch itself; restart the assignment.
				break
			}
			assigned[numeroChasis] = true
			autos = append(autos, &domain.Auto{
				Marca:        input.Marca,
				Modelo:       input.Modelo,
				Anio:         input.Anio,
				NumeroChasis: numeroChasis,
			})
		}
		if len(autos) != len(inputs) {
			continue
		}

		err := s.autos.CreateBatch(ctx, autos)
		if errors.Is(err, repository.ErrChasisTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create auto batch: %w", err)
		}

		return autos, nil
	}

	return nil, ErrChasisExhausted
}

// GetByID retrieves a vehicle by its numeric identifier
func (s *autoService) GetByID(ctx context.Context, id int64) (*domain.Auto, error) {
	return s.autos.FindByID(ctx, id)
}

// GetByChasis retrieves a vehicle by its chassis number
func (s *autoService) GetByChasis(ctx context.Context, numeroChasis string) (*domain.Auto, error) {
	return s.autos.FindByChasis(ctx, numeroChasis)
}

// List retrieves vehicles with optional marca/modelo substring filters
func (s *autoService) List(ctx context.Context, marca, modelo string, skip, limit int) ([]*domain.Auto, error) {
	skip, limit = normalizePage(skip, limit, DefaultListLimit)
	return s.autos.List(ctx, marca, modelo, skip, limit)
}

// Update merges only the supplied fields into the stored vehicle. The year is
// revalidated when present; the chassis number can never change.
func (s *autoService) Update(ctx context.Context, id int64, update AutoUpdate) (*domain.Auto, error) {
	auto, err := s.autos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Marca != nil {
		auto.Marca = *update.Marca
	}
	if update.Modelo != nil {
		auto.Modelo = *update.Modelo
	}
	if update.Anio != nil {
		if err := validation.Anio(*update.Anio); err != nil {
			return nil, err
		}
		auto.Anio = *update.Anio
	}

	if err := s.autos.Update(ctx, auto); err != nil {
		return nil, err
	}

	return auto, nil
}

// Delete removes a vehicle and, through the cascade constraint, its sales
func (s *autoService) Delete(ctx context.Context, id int64) error {
	return s.autos.Delete(ctx, id)
}

// freeChasis generates candidates until one has no match in storage
func (s *autoService) freeChasis(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxChasisAttempts; attempt++ {
		candidate := s.generate()

		_, err := s.autos.FindByChasis(ctx, candidate)
		if errors.Is(err, repository.ErrAutoNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check chassis uniqueness: %w", err)
		}
	}
	return "", ErrChasisExhausted
}

func normalizePage(skip, limit, defaultLimit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}
