package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diewo77/facturation/internal/export"
	"github.com/diewo77/facturation/internal/httpx"
	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/pdf"
	"github.com/diewo77/facturation/internal/services"
)

type InvoiceHandler struct {
	svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListWithClients()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	invoice, err := h.svc.Get(uint(id))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// ByNumber resolves an invoice from its human-readable number.
func (h *InvoiceHandler) ByNumber(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.svc.GetByNumber(r.PathValue("number"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// SetStatus applies a user-directed status transition.
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var body struct {
		Status models.InvoiceStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.svc.SetStatus(uint(id), body.Status); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "status": body.Status})
}

// PDF renders the invoice to a printable document.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	data, err := h.svc.RenderData(uint(id))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	doc, err := pdf.Render(data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="facture_`+data.Invoice.Number+`.pdf"`)
	_, _ = w.Write(doc)
}

// Export streams the invoice list as an xlsx workbook.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListWithClients()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	data, err := export.Invoices(invoices)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="factures.xlsx"`)
	_, _ = w.Write(data)
}
