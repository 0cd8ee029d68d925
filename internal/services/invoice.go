package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/validation"
)

// numberingRetries bounds how many times a commit re-attempts number
// assignment after a uniqueness conflict before giving up.
const numberingRetries = 3

// LineInput is one candidate line item of a not-yet-committed invoice.
type LineInput struct {
	Description string          `json:"description"`
	UnitType    models.UnitType `json:"unit_type"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   float64         `json:"unit_price"`
	Total       float64         `json:"total"`
}

// ComputeTotals computes invoice-level amounts from a line sequence:
// totalHT is the sum of line totals, montantTVA = totalHT * tvaPercent/100,
// totalTTC = totalHT + montantTVA. Values carry full float precision; the
// 2-decimal rendering is an export concern.
func ComputeTotals(lines []LineInput, tvaPercent float64) (totalHT, montantTVA, totalTTC float64) {
	for _, l := range lines {
		totalHT += l.Quantity * l.UnitPrice
	}
	montantTVA = totalHT * tvaPercent / 100
	totalTTC = totalHT + montantTVA
	return
}

// validateLine checks a single candidate line item.
func validateLine(description string, unitType models.UnitType, quantity, unitPrice float64) validation.Violations {
	v := make(validation.Violations)
	validation.Required("description", description, v)
	if !models.ValidUnitType(unitType) {
		v["unit_type"] = "not_allowed"
	}
	validation.PositiveFloat("quantity", quantity, v)
	validation.NonNegativeFloat("unit_price", unitPrice, v)
	return v
}

// InvoiceService is the numbering and computation engine plus the status
// state machine over committed invoices.
//
// Number assignment and insert run as one serialized unit: the mutex keeps
// concurrent commits from reading the same sequence value, and the unique
// index on number backstops anything the lock cannot see (other processes
// on the same store).
type InvoiceService struct {
	db *gorm.DB
	mu sync.Mutex

	// now is swappable in tests to pin the clock.
	now func() time.Time
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db, now: time.Now}
}

// NextNumber derives the next invoice number for year within tx:
// F<year>-<seq %04d> where seq is one past the highest sequence already
// issued for that year. The sequence restarts at 0001 every year and never
// reuses a number, even after deletions.
func (s *InvoiceService) NextNumber(tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("F%d-", year)

	var numbers []string
	err := tx.Model(&models.Invoice{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil {
		return "", fmt.Errorf("next number: %w", err)
	}

	seq := 1
	if len(numbers) > 0 {
		last := numbers[0]
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("next number: malformed %q: %w", last, err)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// SaveInvoice commits a draft: validates the client and every line, assigns
// the next number, stamps the emission date (date precision), computes and
// freezes the totals, and inserts the invoice with its line items in a
// single transaction. Ordinals follow the 1-based input order. Returns the
// assigned number.
func (s *InvoiceService) SaveInvoice(clientID uint, lines []LineInput, tvaPercent float64, notes string) (string, error) {
	if len(lines) == 0 {
		return "", &ValidationError{Violations: validation.Violations{"lines": "required"}}
	}
	for _, l := range lines {
		if v := validateLine(l.Description, l.UnitType, l.Quantity, l.UnitPrice); !v.Empty() {
			return "", &ValidationError{Violations: v}
		}
	}

	var client models.Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get client: %w", err)
	}

	now := s.now()
	emission := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	totalHT, montantTVA, totalTTC := ComputeTotals(lines, tvaPercent)

	items := make([]models.LineItem, len(lines))
	for i, l := range lines {
		items[i] = models.LineItem{
			Ordinal:     i + 1,
			Description: l.Description,
			UnitType:    l.UnitType,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Quantity * l.UnitPrice,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var number string
	for attempt := 0; attempt < numberingRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			n, err := s.NextNumber(tx, now.Year())
			if err != nil {
				return err
			}
			number = n
			invoice := models.Invoice{
				Number:       number,
				ClientID:     clientID,
				EmissionDate: emission,
				TotalHT:      totalHT,
				TVAPercent:   tvaPercent,
				MontantTVA:   montantTVA,
				TotalTTC:     totalTTC,
				Status:       models.StatusPending,
				Notes:        notes,
				Lines:        items,
			}
			return tx.Create(&invoice).Error
		})
		if err == nil {
			return number, nil
		}
		if !isDuplicateErr(err) {
			return "", fmt.Errorf("save invoice: %w", err)
		}
	}
	return "", ErrNumberingConflict
}

// Get returns the invoice with its line items in ordinal order.
func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &invoice, nil
}

// GetByNumber looks an invoice up by its human-readable number.
func (s *InvoiceService) GetByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		Where("number = ?", number).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return &invoice, nil
}

// ListWithClients returns all invoices, newest emission first, with the
// client joined when it still exists. Invoices whose client was deleted
// keep their dangling reference and come back with a nil Client.
func (s *InvoiceService) ListWithClients() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.
		Preload("Client").
		Order("emission_date DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// SetStatus moves the invoice to status. All transitions between known
// statuses are allowed and setting the current status again is a no-op
// success.
func (s *InvoiceService) SetStatus(id uint, status models.InvoiceStatus) error {
	if !models.ValidStatus(status) {
		return &ValidationError{Violations: validation.Violations{"status": "not_allowed"}}
	}

	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get invoice: %w", err)
	}
	if invoice.Status == status {
		return nil
	}

	if err := s.db.Model(&invoice).Update("status", status).Error; err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// RenderData is the read-only snapshot consumed by document renderers.
type RenderData struct {
	Supplier models.Supplier   `json:"supplier"`
	Client   *models.Client    `json:"client,omitempty"`
	Invoice  models.Invoice    `json:"invoice"`
	Lines    []models.LineItem `json:"lines"`
}

// RenderData assembles the snapshot for one invoice. A deleted client
// yields a nil Client; invoice data and line items remain intact.
func (s *InvoiceService) RenderData(id uint) (*RenderData, error) {
	invoice, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var supplier models.Supplier
	if err := s.db.First(&supplier, models.SupplierID).Error; err != nil {
		return nil, fmt.Errorf("render data: supplier: %w", err)
	}

	var client *models.Client
	var c models.Client
	if err := s.db.First(&c, invoice.ClientID).Error; err == nil {
		client = &c
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("render data: client: %w", err)
	}

	return &RenderData{
		Supplier: supplier,
		Client:   client,
		Invoice:  *invoice,
		Lines:    invoice.Lines,
	}, nil
}
