package models

import (
	"fmt"
	"time"
)

// InvoiceStatus represents the lifecycle status of a committed invoice.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "Pending"
	StatusPaid      InvoiceStatus = "Paid"
	StatusCancelled InvoiceStatus = "Cancelled"
)

// ValidStatus reports whether s is one of the known invoice statuses.
// Any known status may transition to any other; there are no terminal states.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// UnitType tags a line item with its billing unit.
type UnitType string

const (
	UnitSquareMeter UnitType = "m²"
	UnitLinearMeter UnitType = "ml"
	UnitCubicMeter  UnitType = "m³"
	UnitPiece       UnitType = "pièce"
	UnitUnit        UnitType = "unité"
	UnitFlatRate    UnitType = "forfait"
	UnitDay         UnitType = "jour"
	UnitHour        UnitType = "heure"
)

// UnitTypes lists every accepted billing unit, in display order.
var UnitTypes = []UnitType{
	UnitSquareMeter, UnitLinearMeter, UnitCubicMeter,
	UnitPiece, UnitUnit, UnitFlatRate, UnitDay, UnitHour,
}

// ValidUnitType reports whether u belongs to the fixed unit enumeration.
func ValidUnitType(u UnitType) bool {
	for _, t := range UnitTypes {
		if t == u {
			return true
		}
	}
	return false
}

// Invoice is a committed invoice. Totals are computed once at commit time
// and never recomputed: line items are immutable after commit.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Number is the human-readable identifier, format F<year>-<seq %04d>.
	Number string `gorm:"size:50;uniqueIndex;not null" json:"number"`

	// ClientID references the billed client. The reference is non-owning:
	// deleting the client leaves it dangling.
	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	EmissionDate time.Time `gorm:"not null" json:"emission_date"`

	TotalHT    float64 `gorm:"not null" json:"total_ht"`
	TVAPercent float64 `gorm:"not null" json:"tva_percent"`
	MontantTVA float64 `gorm:"not null" json:"montant_tva"`
	TotalTTC   float64 `gorm:"not null" json:"total_ttc"`

	Status InvoiceStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`

	Lines []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// Year returns the calendar year encoded in the invoice number, or the
// emission year when the number does not parse.
func (i *Invoice) Year() int {
	var year, seq int
	if _, err := fmt.Sscanf(i.Number, "F%d-%d", &year, &seq); err == nil {
		return year
	}
	return i.EmissionDate.Year()
}

// LineItem is one ordered line of a committed invoice.
type LineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	// Ordinal is the 1-based position within the invoice, set at commit
	// time from insertion order.
	Ordinal     int      `gorm:"not null" json:"ordinal"`
	Description string   `gorm:"size:500;not null" json:"description"`
	UnitType    UnitType `gorm:"size:20;not null" json:"unit_type"`
	Quantity    float64  `gorm:"not null" json:"quantity"`
	UnitPrice   float64  `gorm:"not null" json:"unit_price"`
	Total       float64  `gorm:"not null" json:"total"`
}
