package handler

import (
	"errors"
	"net/http"

	"fraisreels/internal/deduction"

	"gorm.io/gorm"
)

// errorStatus maps service errors onto HTTP status codes. Missing rows are
// 404, validation failures from the deduction engine are 422, and anything
// else falls through to 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, deduction.ErrInvalidAmount),
		errors.Is(err, deduction.ErrInvalidPeriod),
		errors.Is(err, deduction.ErrUnknownFiscalPower),
		errors.Is(err, deduction.ErrInvalidScale):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
