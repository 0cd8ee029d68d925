package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/facturation/internal/httpx"
	"github.com/diewo77/facturation/internal/services"
)

// writeDomainError maps domain errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	if ve := services.AsValidation(err); ve != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Violations)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrDuplicateClientCode):
		httpx.JSONError(w, http.StatusConflict, "duplicate_client_code", nil)
	case errors.Is(err, services.ErrNumberingConflict):
		httpx.JSONError(w, http.StatusConflict, "numbering_conflict", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
