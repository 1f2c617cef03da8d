package validation

import (
	"fmt"
	"strings"
	"time"
)

// MinAnio is the oldest year of manufacture accepted for a vehicle
const MinAnio = 1900

// FieldError reports a single field-level validation failure. Handlers map it
// to a 400 response with the offending field name.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Anio validates that a year of manufacture is between MinAnio and the
// current calendar year, evaluated at call time.
func Anio(anio int) error {
	current := time.Now().Year()
	if anio < MinAnio || anio > current {
		return &FieldError{
			Field:   "anio",
			Message: fmt.Sprintf("year must be between %d and %d", MinAnio, current),
		}
	}
	return nil
}

// Precio validates that a sale price is strictly positive
func Precio(precio float64) error {
	if precio <= 0 {
		return &FieldError{Field: "precio", Message: "price must be greater than 0"}
	}
	return nil
}

// FechaVenta validates that a sale date is not in the future. Both the input
// and "now" are normalized to their calendar day in UTC before comparing, so
// a sale recorded today with a later time-of-day than now is still accepted.
func FechaVenta(fecha time.Time) error {
	today := dateOnly(time.Now().UTC())
	day := dateOnly(fecha.UTC())
	if day.After(today) {
		return &FieldError{Field: "fecha_venta", Message: "sale date cannot be in the future"}
	}
	return nil
}

// NombreComprador validates that a buyer name has content after trimming
func NombreComprador(nombre string) error {
	if strings.TrimSpace(nombre) == "" {
		return &FieldError{Field: "nombre_comprador", Message: "buyer name cannot be empty"}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
