package transport

import (
	"context"
	"strings"

	"github.com/jeredeldo/car-sales-api/internal/domain"
	"github.com/jeredeldo/car-sales-api/internal/repository"
	"github.com/jeredeldo/car-sales-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Mock repositories for testing

type mockAutoRepository struct {
	autos  map[int64]*domain.Auto
	nextID int64
}

func newMockAutoRepository() *mockAutoRepository {
	return &mockAutoRepository{autos: make(map[int64]*domain.Auto)}
}

func (m *mockAutoRepository) Create(ctx context.Context, auto *domain.Auto) error {
	for _, existing := range m.autos {
		if existing.NumeroChasis == auto.NumeroChasis {
			return repository.ErrChasisTaken
		}
	}
	m.nextID++
	auto.ID = m.nextID
	stored := *auto
	m.autos[auto.ID] = &stored
	return nil
}

func (m *mockAutoRepository) CreateBatch(ctx context.Context, autos []*domain.Auto) error {
	for _, auto := range autos {
		if err := m.Create(ctx, auto); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAutoRepository) FindByID(ctx context.Context, id int64) (*domain.Auto, error) {
	auto, exists := m.autos[id]
	if !exists {
		return nil, repository.ErrAutoNotFound
	}
	copied := *auto
	return &copied, nil
}

func (m *mockAutoRepository) FindByChasis(ctx context.Context, numeroChasis string) (*domain.Auto, error) {
	for _, auto := range m.autos {
		if auto.NumeroChasis == numeroChasis {
			copied := *auto
			return &copied, nil
		}
	}
	return nil, repository.ErrAutoNotFound
}

func (m *mockAutoRepository) List(ctx context.Context, marca, modelo string, offset, limit int) ([]*domain.Auto, error) {
	autos := []*domain.Auto{}
	for _, auto := range m.autos {
		if marca != "" && !strings.Contains(strings.ToLower(auto.Marca), strings.ToLower(marca)) {
			continue
		}
		if modelo != "" && !strings.Contains(strings.ToLower(auto.Modelo), strings.ToLower(modelo)) {
			continue
		}
		copied := *auto
		autos = append(autos, &copied)
	}
	return autos, nil
}

func (m *mockAutoRepository) Update(ctx context.Context, auto *domain.Auto) error {
	if _, exists := m.autos[auto.ID]; !exists {
		return repository.ErrAutoNotFound
	}
	stored := *auto
	m.autos[auto.ID] = &stored
	return nil
}

func (m *mockAutoRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.autos[id]; !exists {
		return repository.ErrAutoNotFound
	}
	delete(m.autos, id)
	return nil
}

type mockVentaRepository struct {
	ventas map[int64]*domain.Venta
	nextID int64

	countsByModelo map[string]int
}

func newMockVentaRepository() *mockVentaRepository {
	return &mockVentaRepository{
		ventas:         make(map[int64]*domain.Venta),
		countsByModelo: make(map[string]int),
	}
}

func (m *mockVentaRepository) Create(ctx context.Context, venta *domain.Venta) error {
	m.nextID++
	venta.ID = m.nextID
	stored := *venta
	m.ventas[venta.ID] = &stored
	return nil
}

func (m *mockVentaRepository) CreateBatch(ctx context.Context, ventas []*domain.Venta) error {
	for _, venta := range ventas {
		if err := m.Create(ctx, venta); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockVentaRepository) FindByID(ctx context.Context, id int64) (*domain.Venta, error) {
	venta, exists := m.ventas[id]
	if !exists {
		return nil, repository.ErrVentaNotFound
	}
	copied := *venta
	return &copied, nil
}

func (m *mockVentaRepository) List(ctx context.Context, comprador string, offset, limit int) ([]*domain.Venta, error) {
	ventas := []*domain.Venta{}
	for _, venta := range m.ventas {
		if comprador != "" && !strings.Contains(strings.ToLower(venta.NombreComprador), strings.ToLower(comprador)) {
			continue
		}
		copied := *venta
		ventas = append(ventas, &copied)
	}
	return ventas, nil
}

func (m *mockVentaRepository) FindByAutoID(ctx context.Context, autoID int64) ([]*domain.Venta, error) {
	ventas := []*domain.Venta{}
	for _, venta := range m.ventas {
		if venta.AutoID == autoID {
			copied := *venta
			ventas = append(ventas, &copied)
		}
	}
	return ventas, nil
}

func (m *mockVentaRepository) CountByModelo(ctx context.Context, modelo string) (int, error) {
	return m.countsByModelo[modelo], nil
}

func (m *mockVentaRepository) Update(ctx context.Context, venta *domain.Venta) error {
	if _, exists := m.ventas[venta.ID]; !exists {
		return repository.ErrVentaNotFound
	}
	stored := *venta
	m.ventas[venta.ID] = &stored
	return nil
}

func (m *mockVentaRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.ventas[id]; !exists {
		return repository.ErrVentaNotFound
	}
	delete(m.ventas, id)
	return nil
}

type mockPaisRepository struct {
	paises map[int64]*domain.Pais
	nextID int64
}

func newMockPaisRepository() *mockPaisRepository {
	return &mockPaisRepository{paises: make(map[int64]*domain.Pais)}
}

func (m *mockPaisRepository) Create(ctx context.Context, pais *domain.Pais) error {
	for _, existing := range m.paises {
		if existing.Nombre == pais.Nombre {
			return repository.ErrPaisAlreadyExists
		}
	}
	m.nextID++
	pais.ID = m.nextID
	stored := *pais
	m.paises[pais.ID] = &stored
	return nil
}

func (m *mockPaisRepository) FindByID(ctx context.Context, id int64) (*domain.Pais, error) {
	pais, exists := m.paises[id]
	if !exists {
		return nil, repository.ErrPaisNotFound
	}
	copied := *pais
	return &copied, nil
}

func (m *mockPaisRepository) List(ctx context.Context, offset, limit int) ([]*domain.Pais, error) {
	paises := []*domain.Pais{}
	for _, pais := range m.paises {
		copied := *pais
		paises = append(paises, &copied)
	}
	return paises, nil
}

func (m *mockPaisRepository) Update(ctx context.Context, pais *domain.Pais) error {
	if _, exists := m.paises[pais.ID]; !exists {
		return repository.ErrPaisNotFound
	}
	stored := *pais
	m.paises[pais.ID] = &stored
	return nil
}

func (m *mockPaisRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.paises[id]; !exists {
		return repository.ErrPaisNotFound
	}
	delete(m.paises, id)
	return nil
}

type mockPersonaRepository struct {
	personas map[int64]*domain.Persona
	nextID   int64
}

func newMockPersonaRepository() *mockPersonaRepository {
	return &mockPersonaRepository{personas: make(map[int64]*domain.Persona)}
}

func (m *mockPersonaRepository) Create(ctx context.Context, persona *domain.Persona) error {
	m.nextID++
	persona.ID = m.nextID
	stored := *persona
	m.personas[persona.ID] = &stored
	return nil
}

func (m *mockPersonaRepository) FindByID(ctx context.Context, id int64) (*domain.Persona, error) {
	persona, exists := m.personas[id]
	if !exists {
		return nil, repository.ErrPersonaNotFound
	}
	copied := *persona
	return &copied, nil
}

func (m *mockPersonaRepository) List(ctx context.Context, offset, limit int) ([]*domain.Persona, error) {
	personas := []*domain.Persona{}
	for _, persona := range m.personas {
		copied := *persona
		personas = append(personas, &copied)
	}
	return personas, nil
}

func (m *mockPersonaRepository) Update(ctx context.Context, persona *domain.Persona) error {
	if _, exists := m.personas[persona.ID]; !exists {
		return repository.ErrPersonaNotFound
	}
	stored := *persona
	m.personas[persona.ID] = &stored
	return nil
}

func (m *mockPersonaRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.personas[id]; !exists {
		return repository.ErrPersonaNotFound
	}
	delete(m.personas, id)
	return nil
}

// testEnv wires mock repositories through real services into the handlers and
// mounts every route on a chi router
type testEnv struct {
	router   chi.Router
	autos    *mockAutoRepository
	ventas   *mockVentaRepository
	paises   *mockPaisRepository
	personas *mockPersonaRepository
}

func newTestEnv() *testEnv {
	env := &testEnv{
		autos:    newMockAutoRepository(),
		ventas:   newMockVentaRepository(),
		paises:   newMockPaisRepository(),
		personas: newMockPersonaRepository(),
	}

	logger := zap.NewNop()

	autoService := service.NewAutoService(env.autos, nil)
	ventaService := service.NewVentaService(env.ventas, env.autos)
	paisService := service.NewPaisService(env.paises)
	personaService := service.NewPersonaService(env.personas, env.paises)

	router := chi.NewRouter()
	NewAutoHandler(autoService, logger).RegisterRoutes(router)
	NewVentaHandler(ventaService, logger).RegisterRoutes(router)
	NewRegistroHandler(paisService, personaService, logger).RegisterRoutes(router)

	env.router = router
	return env
}
