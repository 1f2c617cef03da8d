package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jeredeldo/car-sales-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAuto(t *testing.T, env *testEnv) domain.Auto {
	t.Helper()

	w := doJSON(t, env, http.MethodPost, "/autos/", AutoRequest{Marca: "Toyota", Modelo: "Corolla", Anio: 2020})
	require.Equal(t, http.StatusCreated, w.Code)

	var auto domain.Auto
	require.NoError(t, json.NewDecoder(w.Body).Decode(&auto))
	return auto
}

func TestVentaHandlerCreate(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)

	w := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe",
		Precio:          15000.50,
		FechaVenta:      time.Now().UTC().Add(-time.Hour),
		AutoID:          auto.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var venta domain.Venta
	require.NoError(t, json.NewDecoder(w.Body).Decode(&venta))
	assert.NotZero(t, venta.ID)
	assert.Equal(t, auto.ID, venta.AutoID)
}

func TestVentaHandlerCreateMissingAuto(t *testing.T) {
	env := newTestEnv()

	w := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe",
		Precio:          15000,
		FechaVenta:      time.Now().UTC(),
		AutoID:          99999,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.ventas.ventas)
}

func TestVentaHandlerCreateInvalidFields(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)
	now := time.Now().UTC()

	tests := []struct {
		name string
		req  VentaRequest
	}{
		{"blank buyer", VentaRequest{NombreComprador: "   ", Precio: 100, FechaVenta: now, AutoID: auto.ID}},
		{"negative price", VentaRequest{NombreComprador: "Jane", Precio: -50, FechaVenta: now, AutoID: auto.ID}},
		{"future date", VentaRequest{NombreComprador: "Jane", Precio: 100, FechaVenta: now.Add(48 * time.Hour), AutoID: auto.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, env, http.MethodPost, "/ventas/", tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Contains(t, response, "error")
		})
	}

	assert.Empty(t, env.ventas.ventas)
}

// An explicit zero price must surface the price rule, not a missing-field
// complaint from the request tags.
func TestVentaHandlerCreateZeroPrecioReportsPriceRule(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)

	w := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe",
		Precio:          0,
		FechaVenta:      time.Now().UTC(),
		AutoID:          auto.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	raw, ok := response.Error.Details["validation_errors"].([]any)
	require.True(t, ok, "expected validation_errors in details")
	require.Len(t, raw, 1)

	entry, ok := raw[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "precio", entry["field"])
	assert.Equal(t, "price must be greater than 0", entry["message"])
	assert.Empty(t, env.ventas.ventas)
}

func TestVentaHandlerCreateBatchMissingAuto(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)
	now := time.Now().UTC()

	w := doJSON(t, env, http.MethodPost, "/ventas/batch/", []VentaRequest{
		{NombreComprador: "Jane Doe", Precio: 15000, FechaVenta: now, AutoID: auto.ID},
		{NombreComprador: "John Roe", Precio: 9000, FechaVenta: now, AutoID: 99999},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.ventas.ventas, "batch must be all-or-nothing")
}

func TestVentaHandlerListByAuto(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)
	now := time.Now().UTC()

	w := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe", Precio: 15000, FechaVenta: now, AutoID: auto.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env, http.MethodGet, fmt.Sprintf("/ventas/auto/%d", auto.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ventas []domain.Venta
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ventas))
	assert.Len(t, ventas, 1)

	w = doJSON(t, env, http.MethodGet, "/ventas/auto/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVentaHandlerCountByModelo(t *testing.T) {
	env := newTestEnv()
	env.ventas.countsByModelo["Corolla"] = 3

	w := doJSON(t, env, http.MethodGet, "/ventas/modelo/Corolla/count", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response ModeloCountResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Corolla", response.Modelo)
	assert.Equal(t, 3, response.Count)

	// Unknown models count as zero, not as an error
	w = doJSON(t, env, http.MethodGet, "/ventas/modelo/Quantum/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 0, response.Count)
}

func TestVentaHandlerUpdatePartial(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)

	created := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe", Precio: 15000, FechaVenta: time.Now().UTC(), AutoID: auto.ID,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var venta domain.Venta
	require.NoError(t, json.NewDecoder(created.Body).Decode(&venta))

	precio := 14000.0
	w := doJSON(t, env, http.MethodPut, fmt.Sprintf("/ventas/%d", venta.ID), VentaUpdateRequest{Precio: &precio})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Venta
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 14000.0, updated.Precio)
	assert.Equal(t, "Jane Doe", updated.NombreComprador)
	assert.Equal(t, auto.ID, updated.AutoID)
}

func TestVentaHandlerDelete(t *testing.T) {
	env := newTestEnv()
	auto := createTestAuto(t, env)

	created := doJSON(t, env, http.MethodPost, "/ventas/", VentaRequest{
		NombreComprador: "Jane Doe", Precio: 15000, FechaVenta: time.Now().UTC(), AutoID: auto.ID,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var venta domain.Venta
	require.NoError(t, json.NewDecoder(created.Body).Decode(&venta))

	w := doJSON(t, env, http.MethodDelete, fmt.Sprintf("/ventas/%d", venta.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, env, http.MethodGet, fmt.Sprintf("/ventas/%d", venta.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
