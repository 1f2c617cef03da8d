package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jeredeldo/car-sales-api/internal/middleware"
	"github.com/jeredeldo/car-sales-api/internal/repository"
	"github.com/jeredeldo/car-sales-api/internal/validation"
)

// respondServiceError translates service and repository errors into the
// shared HTTP error envelope. Field rule violations become 400, not-found and
// referential misses become 404, duplicate country names become 409.
func respondServiceError(w http.ResponseWriter, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		middleware.RespondWithFieldError(w, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, repository.ErrAutoNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "vehicle not found")
	case errors.Is(err, repository.ErrVentaNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "sales record not found")
	case errors.Is(err, repository.ErrPaisNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "country not found")
	case errors.Is(err, repository.ErrPersonaNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "person not found")
	case errors.Is(err, repository.ErrPaisAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, "country with this name already exists")
	default:
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseID parses a numeric path parameter
func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// queryInt reads an integer query parameter, falling back to a default when
// the parameter is absent or malformed
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
