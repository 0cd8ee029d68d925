package models

import (
	"testing"
	"time"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusPaid, true},
		{StatusCancelled, true},
		{"Draft", false},
		{"", false},
		{"paid", false}, // case sensitive
	}

	for _, tt := range tests {
		if got := ValidStatus(tt.status); got != tt.want {
			t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidUnitType(t *testing.T) {
	for _, u := range UnitTypes {
		if !ValidUnitType(u) {
			t.Errorf("ValidUnitType(%q) = false, want true", u)
		}
	}
	for _, u := range []UnitType{"", "kg", "m2", "piece"} {
		if ValidUnitType(u) {
			t.Errorf("ValidUnitType(%q) = true, want false", u)
		}
	}
}

func TestClient_FullName(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{"name and first name", Client{Name: "Dupont", FirstName: "Jean"}, "Dupont Jean"},
		{"name only", Client{Name: "Dupont"}, "Dupont"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_FullAddress(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{
			name: "full address",
			client: Client{
				Address:    "123 Main St",
				PostalCode: "75001",
				City:       "Paris",
				Country:    "France",
			},
			want: "123 Main St\n75001 Paris\nFrance",
		},
		{
			name:   "only city",
			client: Client{City: "Paris"},
			want:   "Paris",
		},
		{
			name:   "address and city",
			client: Client{Address: "123 Main St", City: "Paris"},
			want:   "123 Main St\nParis",
		},
		{
			name:   "empty",
			client: Client{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvoice_Year(t *testing.T) {
	inv := Invoice{Number: "F2025-0042"}
	if got := inv.Year(); got != 2025 {
		t.Errorf("Year() = %d, want 2025", got)
	}

	// Malformed number falls back to the emission year.
	inv = Invoice{Number: "bogus", EmissionDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
	if got := inv.Year(); got != 2023 {
		t.Errorf("Year() = %d, want 2023", got)
	}
}
