package service

import (
	"context"
	"time"

	"github.com/jeredeldo/car-sales-api/internal/domain"
	"github.com/jeredeldo/car-sales-api/internal/repository"
	"github.com/jeredeldo/car-sales-api/internal/validation"
)

// VentaInput carries the caller-supplied fields for creating a sales record
type VentaInput struct {
	NombreComprador string
	Precio          float64
	FechaVenta      time.Time
	AutoID          int64
}

// VentaUpdate carries a partial update. Nil fields are left untouched. The
// auto reference of an existing sale is immutable.
type VentaUpdate struct {
	NombreComprador *string
	Precio          *float64
	FechaVenta      *time.Time
}

// VentaService defines the interface for sales record business logic
type VentaService interface {
	Create(ctx context.Context, input VentaInput) (*domain.Venta, error)
	CreateBatch(ctx context.Context, inputs []VentaInput) ([]*domain.Venta, error)
	GetByID(ctx context.Context, id int64) (*domain.Venta, error)
	List(ctx context.Context, comprador string, skip, limit int) ([]*domain.Venta, error)
	ListByAuto(ctx context.Context, autoID int64) ([]*domain.Venta, error)
	CountByModelo(ctx context.Context, modelo string) (int, error)
	Update(ctx context.Context, id int64, update VentaUpdate) (*domain.Venta, error)
	Delete(ctx context.Context, id int64) error
}

type ventaService struct {
	ventas repository.VentaRepository
	autos  repository.AutoRepository
}

// NewVentaService creates a new instance of VentaService
func NewVentaService(ventas repository.VentaRepository, autos repository.AutoRepository) VentaService {
	return &ventaService{ventas: ventas, autos: autos}
}

// Create validates the sale fields, verifies the referenced vehicle exists
// and persists the record. A missing vehicle fails with ErrAutoNotFound and
// writes nothing.
func (s *ventaService) Create(ctx context.Context, input VentaInput) (*domain.Venta, error) {
	if err := validateVenta(input); err != nil {
		return nil, err
	}

	if _, err := s.autos.FindByID(ctx, input.AutoID); err != nil {
		return nil, err
	}

	venta := &domain.Venta{
		NombreComprador: input.NombreComprador,
		Precio:          input.Precio,
		FechaVenta:      input.FechaVenta,
		AutoID:          input.AutoID,
	}

	if err := s.ventas.Create(ctx, venta); err != nil {
		return nil, err
	}

	return venta, nil
}

// CreateBatch validates every item and every referenced vehicle before any
// insert, then writes the whole batch in one transaction.
func (s *ventaService) CreateBatch(ctx context.Context, inputs []VentaInput) ([]*domain.Venta, error) {
	for _, input := range inputs {
		if err := validateVenta(input); err != nil {
			return nil, err
		}
	}

	checked := make(map[int64]bool, len(inputs))
	for _, input := range inputs {
		if checked[input.AutoID] {
			continue
		}
		if _, err := s.autos.FindByID(ctx, input.AutoID); err != nil {
			return nil, err
		}
		checked[input.AutoID] = true
	}

	ventas := make([]*domain.Venta, 0, len(inputs))
	for _, input := range inputs {
		ventas = append(ventas, &domain.Venta{
			NombreComprador: input.NombreComprador,
			Precio:          input.Precio,
			FechaVenta:      input.FechaVenta,
			AutoID:          input.AutoID,
		})
	}

	if err := s.ventas.CreateBatch(ctx, ventas); err != nil {
		return nil, err
	}

	return ventas, nil
}

// GetByID retrieves a sales record by its numeric identifier
func (s *ventaService) GetByID(ctx context.Context, id int64) (*domain.Venta, error) {
	return s.ventas.FindByID(ctx, id)
}

// List retrieves sales records with an optional buyer-name substring filter
func (s *ventaService) List(ctx context.Context, comprador string, skip, limit int) ([]*domain.Venta, error) {
	skip, limit = normalizePage(skip, limit, DefaultListLimit)
	return s.ventas.List(ctx, comprador, skip, limit)
}

// ListByAuto retrieves all sales for a vehicle, failing with ErrAutoNotFound
// when the vehicle itself does not exist
func (s *ventaService) ListByAuto(ctx context.Context, autoID int64) ([]*domain.Venta, error) {
	if _, err := s.autos.FindByID(ctx, autoID); err != nil {
		return nil, err
	}
	return s.ventas.FindByAutoID(ctx, autoID)
}

// CountByModelo counts sales of vehicles whose modelo equals the given string
func (s *ventaService) CountByModelo(ctx context.Context, modelo string) (int, error) {
	return s.ventas.CountByModelo(ctx, modelo)
}

// Update merges only the supplied fields into the stored sale, revalidating
// each one it touches
func (s *ventaService) Update(ctx context.Context, id int64, update VentaUpdate) (*domain.Venta, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.NombreComprador != nil {
		if err := validation.NombreComprador(*update.NombreComprador); err != nil {
			return nil, err
		}
		venta.NombreComprador = *update.NombreComprador
	}
	if update.Precio != nil {
		if err := validation.Precio(*update.Precio); err != nil {
			return nil, err
		}
		venta.Precio = *update.Precio
	}
	if update.FechaVenta != nil {
		if err := validation.FechaVenta(*update.FechaVenta); err != nil {
			return nil, err
		}
		venta.FechaVenta = *update.FechaVenta
	}

	if err := s.ventas.Update(ctx, venta); err != nil {
		return nil, err
	}

	return venta, nil
}

// Delete removes a sales record
func (s *ventaService) Delete(ctx context.Context, id int64) error {
	return s.ventas.Delete(ctx, id)
}

func validateVenta(input VentaInput) error {
	if err := validation.NombreComprador(input.NombreComprador); err != nil {
		return err
	}
	if err := validation.Precio(input.Precio); err != nil {
		return err
	}
	return validation.FechaVenta(input.FechaVenta)
}
