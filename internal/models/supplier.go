package models

import "time"

// SupplierID is the fixed primary key of the single supplier row.
// The supplier profile is a singleton: it is seeded once at first
// startup and only ever updated in place.
const SupplierID uint = 1

// Supplier holds the issuing company's profile printed on every invoice.
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:500" json:"address,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`

	// Legal identifiers
	SIRET    string `gorm:"size:14" json:"siret,omitempty"`
	TVAIntra string `gorm:"size:20" json:"tva_intra,omitempty"`

	// Opaque path into the logo filestore.
	LogoPath string `gorm:"size:500" json:"logo_path,omitempty"`
}
