package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/facturation/internal/models"
	"github.com/diewo77/facturation/internal/validation"
)

// ClientService is the client registry. Clients have no update-in-place
// operation; mistakes are fixed by delete and re-add.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// Add validates and inserts a new client, returning its assigned id.
// The external code is optional; when set it must be unique.
func (s *ClientService) Add(client *models.Client) (uint, error) {
	v := make(validation.Violations)
	validation.Required("name", client.Name, v)
	if !v.Empty() {
		return 0, &ValidationError{Violations: v}
	}

	if client.Country == "" {
		client.Country = "France"
	}

	if client.Code != "" {
		var count int64
		if err := s.db.Model(&models.Client{}).Where("code = ?", client.Code).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("check client code: %w", err)
		}
		if count > 0 {
			return 0, ErrDuplicateClientCode
		}
	}

	if err := s.db.Create(client).Error; err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicateClientCode
		}
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return client.ID, nil
}

// Get returns the client or ErrNotFound.
func (s *ClientService) Get(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &client, nil
}

// List returns every client, most recently created first.
func (s *ClientService) List() ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Order("created_at DESC, id DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Delete removes the client unconditionally. Invoices referencing it are
// neither deleted nor blocked: their client reference becomes dangling and
// render data degrades to a client-less snapshot.
func (s *ClientService) Delete(id uint) error {
	res := s.db.Delete(&models.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
