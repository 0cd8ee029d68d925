package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diewo77/facturation/internal/models"
)

// setupTestDB opens a per-test in-memory SQLite store with the full schema
// and the seeded supplier row.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Supplier{}, &models.Client{}, &models.Invoice{}, &models.LineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	supplier := models.Supplier{ID: models.SupplierID, Name: "Mon Entreprise"}
	if err := conn.Create(&supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return conn
}

// seedClient inserts a minimal client and returns it.
func seedClient(t *testing.T, conn *gorm.DB, name string) models.Client {
	t.Helper()
	client := models.Client{Name: name, Country: "France"}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

// twoLines is the standard two-line fixture used across commit tests.
func twoLines() []LineInput {
	return []LineInput{
		{Description: "Tiling", UnitType: models.UnitSquareMeter, Quantity: 10, UnitPrice: 25},
		{Description: "Labor", UnitType: models.UnitHour, Quantity: 4, UnitPrice: 50},
	}
}
