package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/facturation/internal/models"
)

// Connect opens the record store and applies GORM migrations. The driver is
// chosen from the DSN: postgres:// URLs use the postgres driver, anything
// else is treated as a SQLite file path.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		conn *gorm.DB
		err  error
	)
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connexion BDD échouée : %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate applies the schema and seeds the singleton supplier row.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Supplier{},
		&models.Client{},
		&models.Invoice{},
		&models.LineItem{},
	); err != nil {
		return fmt.Errorf("migrations échouées : %w", err)
	}
	return seedSupplier(conn)
}

// seedSupplier inserts the placeholder supplier profile on first startup.
// The row is keyed by models.SupplierID and is only ever updated afterwards.
func seedSupplier(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Supplier{}).Where("id = ?", models.SupplierID).Count(&count).Error; err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}
	if count > 0 {
		return nil
	}
	supplier := models.Supplier{ID: models.SupplierID, Name: "Mon Entreprise"}
	if err := conn.Create(&supplier).Error; err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}
	return nil
}
