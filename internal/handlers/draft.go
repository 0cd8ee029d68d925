package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/diewo77/facturation/internal/httpx"
	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/services"
)

// sessionCookie keys the operator's in-memory draft. The draft is
// deliberately non-durable: abandoning the session discards it.
const sessionCookie = "draft_session"

type DraftHandler struct {
	drafts     *services.DraftRegistry
	invoices   *services.InvoiceService
	defaultTVA float64
}

func NewDraftHandler(drafts *services.DraftRegistry, invoices *services.InvoiceService, defaultTVA float64) *DraftHandler {
	return &DraftHandler{drafts: drafts, invoices: invoices, defaultTVA: defaultTVA}
}

// draft resolves the caller's session draft, minting a session cookie on
// first use.
func (h *DraftHandler) draft(w http.ResponseWriter, r *http.Request) *services.Draft {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		c = &http.Cookie{
			Name:     sessionCookie,
			Value:    uuid.New().String(),
			Path:     "/",
			HttpOnly: true,
		}
		http.SetCookie(w, c)
	}
	return h.drafts.Get(c.Value)
}

func (h *DraftHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string          `json:"description"`
		UnitType    models.UnitType `json:"unit_type"`
		Quantity    float64         `json:"quantity"`
		UnitPrice   float64         `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	d := h.draft(w, r)
	if err := d.AddLine(body.Description, body.UnitType, body.Quantity, body.UnitPrice); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"lines": d.Lines()})
}

func (h *DraftHandler) Lines(w http.ResponseWriter, r *http.Request) {
	d := h.draft(w, r)
	httpx.JSON(w, http.StatusOK, map[string]any{"lines": d.Lines()})
}

func (h *DraftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.draft(w, r).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Totals previews the invoice totals for the current draft without
// committing anything.
func (h *DraftHandler) Totals(w http.ResponseWriter, r *http.Request) {
	tva := h.defaultTVA
	if s := r.URL.Query().Get("tva"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_tva", nil)
			return
		}
		tva = f
	}
	ht, mtva, ttc := h.draft(w, r).ComputeTotals(tva)
	httpx.JSON(w, http.StatusOK, map[string]float64{
		"total_ht":    ht,
		"tva_percent": tva,
		"montant_tva": mtva,
		"total_ttc":   ttc,
	})
}

// Commit turns the draft into a persisted invoice. On success the draft is
// cleared; on failure it is preserved so the operator can retry.
func (h *DraftHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientID   uint     `json:"client_id"`
		TVAPercent *float64 `json:"tva_percent"`
		Notes      string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	tva := h.defaultTVA
	if body.TVAPercent != nil {
		tva = *body.TVAPercent
	}
	number, err := h.draft(w, r).Commit(h.invoices, body.ClientID, tva, body.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"number": number})
}
