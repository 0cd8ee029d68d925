package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/facturation/internal/config"
	"github.com/diewo77/facturation/internal/filestore"
	"github.com/diewo77/facturation/internal/handlers"
	"github.com/diewo77/facturation/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires services and handlers onto a fresh mux.
func NewApp(db *gorm.DB, files *filestore.Store, cfg *config.Config) *App {
	app := &App{mux: http.NewServeMux()}

	supplierSvc := services.NewSupplierService(db)
	clientSvc := services.NewClientService(db)
	invoiceSvc := services.NewInvoiceService(db)
	drafts := services.NewDraftRegistry()

	sh := handlers.NewSupplierHandler(supplierSvc, files)
	ch := handlers.NewClientHandler(clientSvc)
	ih := handlers.NewInvoiceHandler(invoiceSvc)
	dh := handlers.NewDraftHandler(drafts, invoiceSvc, cfg.App.DefaultTVAPercent)

	// Supplier profile (singleton)
	app.mux.HandleFunc("GET /supplier", sh.Get)
	app.mux.HandleFunc("PUT /supplier", sh.Update)
	app.mux.HandleFunc("POST /supplier/logo", sh.UploadLogo)

	// Client registry
	app.mux.HandleFunc("GET /clients", ch.List)
	app.mux.HandleFunc("POST /clients", ch.Create)
	app.mux.HandleFunc("GET /clients/export", ch.Export)
	app.mux.HandleFunc("GET /clients/{id}", ch.View)
	app.mux.HandleFunc("DELETE /clients/{id}", ch.Delete)

	// Draft builder (session scoped)
	app.mux.HandleFunc("GET /draft/lines", dh.Lines)
	app.mux.HandleFunc("POST /draft/lines", dh.AddLine)
	app.mux.HandleFunc("POST /draft/clear", dh.Clear)
	app.mux.HandleFunc("GET /draft/totals", dh.Totals)
	app.mux.HandleFunc("POST /draft/commit", dh.Commit)

	// Invoices
	app.mux.HandleFunc("GET /invoices", ih.List)
	app.mux.HandleFunc("GET /invoices/export", ih.Export)
	app.mux.HandleFunc("GET /invoices/by-number/{number}", ih.ByNumber)
	app.mux.HandleFunc("GET /invoices/{id}", ih.View)
	app.mux.HandleFunc("POST /invoices/{id}/status", ih.SetStatus)
	app.mux.HandleFunc("GET /invoices/{id}/pdf", ih.PDF)

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
