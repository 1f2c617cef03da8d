package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jeredeldo/car-sales-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestVenta(t *testing.T, repo VentaRepository, comprador string, precio float64, autoID int64) *domain.Venta {
	t.Helper()
	venta := &domain.Venta{
		NombreComprador: comprador,
		Precio:          precio,
		FechaVenta:      time.Now().UTC().Truncate(time.Second),
		AutoID:          autoID,
	}
	require.NoError(t, repo.Create(context.Background(), venta))
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM ventas WHERE id = $1", venta.ID)
	})
	return venta
}

func TestVentaRepositoryCreateAndFind(t *testing.T) {
	autos := NewAutoRepository(testDB)
	ventas := NewVentaRepository(testDB)
	ctx := context.Background()

	auto := insertTestAuto(t, autos, "Toyota", "Corolla", 2020)
	venta := insertTestVenta(t, ventas, "Jane Doe", 15000.50, auto.ID)
	require.NotZero(t, venta.ID)

	stored, err := ventas.FindByID(ctx, venta.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.NombreComprador)
	assert.Equal(t, 15000.50, stored.Precio)
	assert.Equal(t, auto.ID, stored.AutoID)
	assert.True(t, venta.FechaVenta.Equal(stored.FechaVenta))
}

func TestVentaRepositoryListByBuyer(t *testing.T) {
	autos := NewAutoRepository(testDB)
	ventas := NewVentaRepository(testDB)
	ctx := context.Background()

	auto := insertTestAuto(t, autos, "Toyota", "Corolla", 2020)
	insertTestVenta(t, ventas, "Marcela Quiroga", 15000, auto.ID)
	insertTestVenta(t, ventas, "Pedro Quiroga", 12000, auto.ID)
	insertTestVenta(t, ventas, "John Roe", 9000, auto.ID)

	matches, err := ventas.List(ctx, "quiroga", 0, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestVentaRepositoryFindByAutoID(t *testing.T) {
	autos := NewAutoRepository(testDB)
	ventas := NewVentaRepository(testDB)
	ctx := context.Background()

	primero := insertTestAuto(t, autos, "Toyota", "Corolla", 2020)
	segundo := insertTestAuto(t, autos, "Ford", "Focus", 2019)

	insertTestVenta(t, ventas, "Jane Doe", 15000, primero.ID)
	insertTestVenta(t, ventas, "John Roe", 9000, segundo.ID)

	matches, err := ventas.FindByAutoID(ctx, primero.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Jane Doe", matches[0].NombreComprador)

	// No sales is an empty slice, not an error
	none, err := ventas.FindByAutoID(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVentaRepositoryCountByModelo(t *testing.T) {
	autos := NewAutoRepository(testDB)
	ventas := NewVentaRepository(testDB)
	ctx := context.Background()

	count, err := ventas.CountByModelo(ctx, "Quantum")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	auto := insertTestAuto(t, autos, "VW", "Quantum", 1995)
	otro := insertTestAuto(t, autos, "VW", "Quantum GL", 1996)

	insertTestVenta(t, ventas, "Jane Doe", 5000, auto.ID)
	insertTestVenta(t, ventas, "John Roe", 5500, auto.ID)
	insertTestVenta(t, ventas, "Ana García", 6000, otro.ID)

	// Exact equality on modelo, so "Quantum GL" does not count
	count, err = ventas.CountByModelo(ctx, "Quantum")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestVentaRepositoryUpdate(t *testing.T) {
	autos := NewAutoRepository(testDB)
	ventas := NewVentaRepository(testDB)
	ctx := context.Background()

	auto := insertTestAuto(t, autos, "Toyota", "Corolla", 2020)
	venta := insertTestVenta(t, ventas, "Jane Doe", 15000, auto.ID)

	venta.Precio = 14000
	require.NoError(t, ventas.Update(ctx, venta))

	stored, err := ventas.FindByID(ctx, venta.ID)
	require.NoError(t, err)
	assert.Equal(t, 14000.0, stored.Precio)
	assert.Equal(t, "Jane Doe", stored.NombreComprador)
}

func TestVentaRepositoryDeleteMissing(t *testing.T) {
	ventas := NewVentaRepository(testDB)
	assert.ErrorIs(t, ventas.Delete(context.Background(), -1), ErrVentaNotFound)
}
