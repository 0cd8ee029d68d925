package services

import (
	"sync"

	"github.com/diewo77/facturation/internal/models"
)

// Draft accumulates candidate line items for one invoice-creation session.
// It lives purely in memory and is discarded when abandoned; only Commit
// touches the store. A Draft belongs to a single operator session and is
// not safe for concurrent use; cross-session isolation comes from the
// DraftRegistry handing each session its own instance.
type Draft struct {
	lines []LineInput
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// AddLine validates and appends a line, preserving insertion order. On
// validation failure the draft is left untouched and the error reports the
// offending fields.
func (d *Draft) AddLine(description string, unitType models.UnitType, quantity, unitPrice float64) error {
	if v := validateLine(description, unitType, quantity, unitPrice); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	d.lines = append(d.lines, LineInput{
		Description: description,
		UnitType:    unitType,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity * unitPrice,
	})
	return nil
}

// Clear empties the draft unconditionally.
func (d *Draft) Clear() {
	d.lines = nil
}

// Len returns the number of accumulated lines.
func (d *Draft) Len() int {
	return len(d.lines)
}

// Lines returns a copy of the accumulated lines in insertion order.
func (d *Draft) Lines() []LineInput {
	out := make([]LineInput, len(d.lines))
	copy(out, d.lines)
	return out
}

// ComputeTotals previews the invoice totals for the current lines without
// mutating the draft.
func (d *Draft) ComputeTotals(tvaPercent float64) (totalHT, montantTVA, totalTTC float64) {
	return ComputeTotals(d.lines, tvaPercent)
}

// Commit saves the draft through the invoice engine and clears it on
// success. On failure the lines are preserved so the operator can retry
// without re-entering them.
func (d *Draft) Commit(svc *InvoiceService, clientID uint, tvaPercent float64, notes string) (string, error) {
	number, err := svc.SaveInvoice(clientID, d.Lines(), tvaPercent, notes)
	if err != nil {
		return "", err
	}
	d.Clear()
	return number, nil
}

// DraftRegistry hands out one draft per operator session.
type DraftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewDraftRegistry() *DraftRegistry {
	return &DraftRegistry{drafts: make(map[string]*Draft)}
}

// Get returns the session's draft, creating it on first use.
func (r *DraftRegistry) Get(sessionID string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[sessionID]
	if !ok {
		d = NewDraft()
		r.drafts[sessionID] = d
	}
	return d
}

// Drop discards the session's draft.
func (r *DraftRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, sessionID)
}
