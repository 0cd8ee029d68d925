package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/facturation/internal/validation"
)

// Domain errors. Handlers map these to HTTP statuses; callers should treat
// ErrNotFound as "does not exist", not as a system fault.
var (
	ErrNotFound            = errors.New("enregistrement introuvable")
	ErrDuplicateClientCode = errors.New("code client déjà utilisé")
	// ErrNumberingConflict is returned when number assignment keeps
	// colliding after the bounded retry loop.
	ErrNumberingConflict = errors.New("conflit de numérotation de facture")
)

// ValidationError carries per-field violations. The rejected operation
// performs no mutation; the caller is expected to re-prompt.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, reason := range e.Violations {
		fields = append(fields, f+": "+reason)
	}
	return fmt.Sprintf("validation: %s", strings.Join(fields, ", "))
}

// AsValidation extracts a ValidationError from err, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// isDuplicateErr detects a uniqueness-constraint violation from either the
// SQLite or the PostgreSQL driver.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key")
}
