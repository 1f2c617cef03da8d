package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jeredeldo/car-sales-api/internal/middleware"
	"github.com/jeredeldo/car-sales-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AutoRequest represents the vehicle creation payload. The chassis number is
// never accepted from the caller. Anio carries no tag so an absent or zero
// year is reported by the year-range rule rather than as a missing field.
type AutoRequest struct {
	Marca  string `json:"marca" validate:"required"`
	Modelo string `json:"modelo" validate:"required"`
	Anio   int    `json:"anio"`
}

// AutoUpdateRequest represents a partial vehicle update. Absent fields stay
// nil and are not applied.
type AutoUpdateRequest struct {
	Marca  *string `json:"marca"`
	Modelo *string `json:"modelo"`
	Anio   *int    `json:"anio"`
}

// AutoHandler handles HTTP requests for vehicle operations
type AutoHandler struct {
	autoService service.AutoService
	logger      *zap.Logger
}

// NewAutoHandler creates a new AutoHandler
func NewAutoHandler(autoService service.AutoService, logger *zap.Logger) *AutoHandler {
	return &AutoHandler{
		autoService: autoService,
		logger:      logger,
	}
}

// RegisterRoutes registers all vehicle routes
func (h *AutoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/autos", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/batch/", h.CreateBatch)
		r.Get("/", h.List)
		r.Get("/chasis/{numeroChasis}", h.GetByChasis)
		r.Get("/{autoID}", h.GetByID)
		r.Put("/{autoID}", h.Update)
		r.Delete("/{autoID}", h.Delete)
	})
}

// Create handles vehicle creation
func (h *AutoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AutoRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Auto creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	auto, err := h.autoService.Create(r.Context(), service.AutoInput{
		Marca:  req.Marca,
		Modelo: req.Modelo,
		Anio:   req.Anio,
	})
	if err != nil {
		h.logger.Error("Auto creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Auto created",
		zap.Int64("auto_id", auto.ID),
		zap.String("numero_chasis", auto.NumeroChasis),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, auto)
}

// CreateBatch handles all-or-nothing batch vehicle creation
func (h *AutoHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []AutoRequest

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

	inputs := make([]service.AutoInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.AutoInput{
			Marca:  req.Marca,
			Modelo: req.Modelo,
			Anio:   req.Anio,
		})
	}

	autos, err := h.autoService.CreateBatch(r.Context(), inputs)
	if err != nil {
		h.logger.Error("Auto batch creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Auto batch created", zap.Int("count", len(autos)))
	middleware.RespondWithJSON(w, http.StatusCreated, autos)
}

// List handles vehicle listing with marca/modelo filters and pagination
func (h *AutoHandler) List(w http.ResponseWriter, r *http.Request) {
	marca := r.URL.Query().Get("marca")
	modelo := r.URL.Query().Get("modelo")
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	autos, err := h.autoService.List(r.Context(), marca, modelo, skip, limit)
	if err != nil {
		h.logger.Error("Auto listing failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, autos)
}

// GetByChasis handles vehicle lookup by chassis number
func (h *AutoHandler) GetByChasis(w http.ResponseWriter, r *http.Request) {
	numeroChasis := chi.URLParam(r, "numeroChasis")

	auto, err := h.autoService.GetByChasis(r.Context(), numeroChasis)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, auto)
}

// GetByID handles vehicle lookup by numeric identifier
func (h *AutoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "autoID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	auto, err := h.autoService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, auto)
}

// Update handles partial vehicle updates
func (h *AutoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "autoID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var req AutoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	auto, err := h.autoService.Update(r.Context(), id, service.AutoUpdate{
		Marca:  req.Marca,
		Modelo: req.Modelo,
		Anio:   req.Anio,
	})
	if err != nil {
		h.logger.Debug("Auto update failed", zap.Int64("auto_id", id), zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, auto)
}

// Delete handles vehicle deletion
func (h *AutoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "autoID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	if err := h.autoService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	h.logger.Info("Auto deleted", zap.Int64("auto_id", id))
	w.WriteHeader(http.StatusNoContent)
}
