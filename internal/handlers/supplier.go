package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/diewo77/facturation/internal/filestore"
	"github.com/diewo77/facturation/internal/httpx"
	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/services"
)

// maxLogoSize caps uploaded logo files at 5 MiB.
const maxLogoSize = 5 << 20

type SupplierHandler struct {
	svc   *services.SupplierService
	files *filestore.Store
}

func NewSupplierHandler(svc *services.SupplierService, files *filestore.Store) *SupplierHandler {
	return &SupplierHandler{svc: svc, files: files}
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.svc.Get()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var supplier models.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.svc.Update(&supplier); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

// UploadLogo stores the uploaded file and records its opaque path on the
// supplier profile.
func (h *SupplierHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoSize+1))
	if err != nil || len(data) > maxLogoSize {
		httpx.JSONError(w, http.StatusBadRequest, "file_too_large", nil)
		return
	}

	path, err := h.files.Save(data, header.Filename)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_failed", nil)
		return
	}

	supplier, err := h.svc.Get()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	supplier.LogoPath = path
	if err := h.svc.Update(supplier); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"logo_path": path})
}
