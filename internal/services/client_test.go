package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diewo77/facturation/internal/models"
)

func TestClientAddAndGet(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewClientService(conn)

	id, err := svc.Add(&models.Client{Name: "Dupont", FirstName: "Jean"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	client, err := svc.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if client.Name != "Dupont" || client.FirstName != "Jean" {
		t.Errorf("client = %+v", client)
	}
	if client.Country != "France" {
		t.Errorf("country = %q, want France (default)", client.Country)
	}
}

func TestClientAddValidation(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewClientService(conn)

	for _, name := range []string{"", "   "} {
		_, err := svc.Add(&models.Client{Name: name})
		ve := AsValidation(err)
		if ve == nil {
			t.Fatalf("Add(%q) error = %v, want ValidationError", name, err)
		}
		if ve.Violations["name"] != "required" {
			t.Errorf("violations = %v", ve.Violations)
		}
	}

	// Rejected adds insert nothing.
	var count int64
	conn.Model(&models.Client{}).Count(&count)
	if count != 0 {
		t.Errorf("client count = %d, want 0", count)
	}
}

func TestClientDuplicateCode(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewClientService(conn)

	if _, err := svc.Add(&models.Client{Name: "Dupont", Code: "CL-001"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := svc.Add(&models.Client{Name: "Martin", Code: "CL-001"})
	if !errors.Is(err, ErrDuplicateClientCode) {
		t.Fatalf("duplicate code error = %v, want ErrDuplicateClientCode", err)
	}

	// The code is optional: several clients without one coexist.
	if _, err := svc.Add(&models.Client{Name: "Martin"}); err != nil {
		t.Fatalf("Add without code: %v", err)
	}
	if _, err := svc.Add(&models.Client{Name: "Durand"}); err != nil {
		t.Fatalf("Add second without code: %v", err)
	}
}

func TestClientListMostRecentFirst(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewClientService(conn)

	names := []string{"Premier", "Deuxième", "Troisième"}
	for i, n := range names {
		client := models.Client{Name: n, Country: "France"}
		client.CreatedAt = time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC)
		if err := conn.Create(&client).Error; err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}

	clients, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("len = %d, want 3", len(clients))
	}
	if clients[0].Name != "Troisième" || clients[2].Name != "Premier" {
		t.Errorf("order = %s, %s, %s", clients[0].Name, clients[1].Name, clients[2].Name)
	}
}

func TestClientDelete(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewClientService(conn)

	id, err := svc.Add(&models.Client{Name: "Éphémère"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
