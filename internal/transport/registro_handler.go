package transport

import (
	"encoding/json"
	"net/http"

	"github.com/jeredeldo/car-sales-api/internal/middleware"
	"github.com/jeredeldo/car-sales-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaisRequest represents the country creation payload
type PaisRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// PaisUpdateRequest represents a partial country update
type PaisUpdateRequest struct {
	Nombre *string `json:"nombre"`
}

// PersonaRequest represents the person creation payload
type PersonaRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=100"`
	Apellido string `json:"apellido" validate:"required,max=100"`
	Edad     int    `json:"edad" validate:"gte=0,lte=150"`
	PaisID   *int64 `json:"pais_id"`
}

// PersonaUpdateRequest represents a partial person update
type PersonaUpdateRequest struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Edad     *int    `json:"edad"`
	PaisID   *int64  `json:"pais_id"`
}

// RegistroHandler handles HTTP requests for the person/country registry
type RegistroHandler struct {
	paisService    service.PaisService
	personaService service.PersonaService
	logger         *zap.Logger
}

// NewRegistroHandler creates a new RegistroHandler
func NewRegistroHandler(paisService service.PaisService, personaService service.PersonaService, logger *zap.Logger) *RegistroHandler {
	return &RegistroHandler{
		paisService:    paisService,
		personaService: personaService,
		logger:         logger,
	}
}

// RegisterRoutes registers the registry routes
func (h *RegistroHandler) RegisterRoutes(r chi.Router) {
	r.Route("/paises", func(r chi.Router) {
		r.Post("/", h.CreatePais)
		r.Get("/", h.ListPaises)
		r.Get("/{paisID}", h.GetPais)
		r.Put("/{paisID}", h.UpdatePais)
		r.Delete("/{paisID}", h.DeletePais)
	})
	r.Route("/personas", func(r chi.Router) {
		r.Post("/", h.CreatePersona)
		r.Get("/", h.ListPersonas)
		r.Get("/{personaID}", h.GetPersona)
		r.Put("/{personaID}", h.UpdatePersona)
		r.Delete("/{personaID}", h.DeletePersona)
	})
}

// CreatePais handles country creation
func (h *RegistroHandler) CreatePais(w http.ResponseWriter, r *http.Request) {
	var req PaisRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pais, err := h.paisService.Create(r.Context(), service.PaisInput{Nombre: req.Nombre})
	if err != nil {
		h.logger.Debug("Pais creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, pais)
}

// ListPaises handles country listing with pagination
func (h *RegistroHandler) ListPaises(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	paises, err := h.paisService.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Pais listing failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, paises)
}

// GetPais handles country lookup by numeric identifier
func (h *RegistroHandler) GetPais(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "paisID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid country ID")
		return
	}

	pais, err := h.paisService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pais)
}

// UpdatePais handles partial country updates
func (h *RegistroHandler) UpdatePais(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "paisID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid country ID")
		return
	}

	var req PaisUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pais, err := h.paisService.Update(r.Context(), id, service.PaisUpdate{Nombre: req.Nombre})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pais)
}

// DeletePais handles country deletion
func (h *RegistroHandler) DeletePais(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "paisID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid country ID")
		return
	}

	if err := h.paisService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreatePersona handles person creation
func (h *RegistroHandler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req PersonaRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persona, err := h.personaService.Create(r.Context(), service.PersonaInput{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Edad:     req.Edad,
		PaisID:   req.PaisID,
	})
	if err != nil {
		h.logger.Debug("Persona creation failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, persona)
}

// ListPersonas handles person listing with pagination
func (h *RegistroHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	personas, err := h.personaService.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Persona listing failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, personas)
}

// GetPersona handles person lookup by numeric identifier
func (h *RegistroHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "personaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid person ID")
		return
	}

	persona, err := h.personaService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, persona)
}

// UpdatePersona handles partial person updates
func (h *RegistroHandler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "personaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid person ID")
		return
	}

	var req PersonaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persona, err := h.personaService.Update(r.Context(), id, service.PersonaUpdate{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Edad:     req.Edad,
		PaisID:   req.PaisID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, persona)
}

// DeletePersona handles person deletion
func (h *RegistroHandler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "personaID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid person ID")
		return
	}

	if err := h.personaService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
