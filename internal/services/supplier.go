package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/validation"
)

// SupplierService manages the singleton supplier profile.
type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// Get returns the supplier profile. The row is seeded at startup, so a
// missing row is a persistence fault rather than a NotFound.
func (s *SupplierService) Get() (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.First(&supplier, models.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &supplier, nil
}

// Update replaces the supplier profile in place. The supplier is never
// deleted and its identity never changes.
func (s *SupplierService) Update(supplier *models.Supplier) error {
	v := make(validation.Violations)
	validation.Required("name", supplier.Name, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}

	supplier.ID = models.SupplierID
	if err := s.db.Save(supplier).Error; err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}
