package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jeredeldo/car-sales-api/internal/middleware"
	"github.com/jeredeldo/car-sales-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VentaRequest represents the sales record creation payload. Precio carries
// no tag so a zero or negative price is reported by the price rule itself
// rather than as a missing field.
type VentaRequest struct {
	NombreComprador string    `json:"nombre_comprador" validate:"required"`
	Precio          float64   `json:"precio"`
	FechaVenta      time.Time `json:"fecha_venta" validate:"required"`
	AutoID          int64     `json:"auto_id" validate:"required"`
}

// VentaUpdateRequest represents a partial sales record update
type VentaUpdateRequest struct {
	NombreComprador *string    `json:"nombre_comprador"`
	Precio          *float64   `json:"precio"`
	FechaVenta      *time.Time `json:"fecha_venta"`
}

// ModeloCountResponse is the aggregate payload for sales-per-model counts
type ModeloCountResponse struct {
	Modelo string `json:"modelo"`
	Count  int    `json:"count"`
}

// VentaHandler handles HTTP requests for sales record operations
type VentaHandler struct {
	ventaService service.VentaService
	logger       *zap.Logger
}

// NewVentaHandler creates a new VentaHandler
func NewVentaHandler(ventaService service.VentaService, logger *zap.Logger) *VentaHandler {
	return &VentaHandler{
		ventaService: ventaService,
		logger:       logger,
	}
}

// RegisterRoutes registers all sales record routes
func (h *VentaHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ventas", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/batch/", h.CreateBatch)
		r.Get("/", h.List)
		r.Get("/auto/{autoID}", h.ListByAuto)
		r.Get("/modelo/{modelo}/count", h.CountByModelo)
		r.Get("/{ventaID}", h.GetByID)
		r.Put("/{ventaID}", h.Update)
		r.Delete("/{ventaID}", h.Delete)
	})
}

// Create handles sales record creation. A missing referenced vehicle fails
// with 404 and writes nothing.
func (h *VentaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req VentaRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Venta creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	venta, err := h.ventaService.Create(r.Context(), service.VentaInput{
		NombreComprador: req.NombreComprador,
		Precio:          req.Precio,
		FechaVenta:      req.FechaVenta,
		AutoID:          req.AutoID,
	})
	if err != nil {
		h.logger.Debug("Venta creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Venta created",
		zap.Int64("venta_id", venta.ID),
		zap.Int64("auto_id", venta.AutoID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, venta)
}

// CreateBatch handles all-or-nothing batch creation. Every referenced vehicle
// is verified before any record is written.
func (h *VentaHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []VentaRequest

	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, req := range reqs {
		if err := middleware.ValidateRequest(req); err != nil {
			if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
				middleware.RespondWithValidationErrors(w, validationErrors)
				return
			}
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	inputs := make([]service.VentaInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.VentaInput{
			NombreComprador: req.NombreComprador,
			Precio:          req.Precio,
			FechaVenta:      req.FechaVenta,
			AutoID:          req.AutoID,
		})
	}

	ventas, err := h.ventaService.CreateBatch(r.Context(), inputs)
	if err != nil {
		h.logger.Debug("Venta batch creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Venta batch created", zap.Int("count", len(ventas)))
	middleware.RespondWithJSON(w, http.StatusCreated, ventas)
}

// List handles sales record listing with a buyer-name filter and pagination
func (h *VentaHandler) List(w http.ResponseWriter, r *http.Request) {
	comprador := r.URL.Query().Get("comprador")
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	ventas, err := h.ventaService.List(r.Context(), comprador, skip, limit)
	if err != nil {
		h.logger.Error("Venta listing failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ventas)
}

// ListByAuto handles listing all sales for one vehicle
func (h *VentaHandler) ListByAuto(w http.ResponseWriter, r *http.Request) {
	autoID, err := parseID(chi.URLParam(r, "autoID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	ventas, err := h.ventaService.ListByAuto(r.Context(), autoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ventas)
}

// CountByModelo handles the sales-per-model aggregate. Zero matches is a
// regular 200 with count 0.
func (h *VentaHandler) CountByModelo(w http.ResponseWriter, r *http.Request) {
	modelo := chi.URLParam(r, "modelo")

	count, err := h.ventaService.CountByModelo(r.Context(), modelo)
	if err != nil {
		h.logger.Error("Venta count by modelo failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ModeloCountResponse{
		Modelo: modelo,
		Count:  count,
	})
}

// GetByID handles sales record lookup by numeric identifier
func (h *VentaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "ventaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sales record ID")
		return
	}

	venta, err := h.ventaService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, venta)
}

// Update handles partial sales record updates
func (h *VentaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "ventaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sales record ID")
		return
	}

	var req VentaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	venta, err := h.ventaService.Update(r.Context(), id, service.VentaUpdate{
		NombreComprador: req.NombreComprador,
		Precio:          req.Precio,
		FechaVenta:      req.FechaVenta,
	})
	if err != nil {
		h.logger.Debug("Venta update failed", zap.Int64("venta_id", id), zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, venta)
}

// Delete handles sales record deletion
func (h *VentaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "ventaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sales record ID")
		return
	}

	if err := h.ventaService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Venta deleted", zap.Int64("venta_id", id))
	w.WriteHeader(http.StatusNoContent)
}
