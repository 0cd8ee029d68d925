package services

import (
	"errors"
	"testing"

	"github.com/diewo77/facturation/internal/models"
)

func TestDraftAddLine(t *testing.T) {
	d := NewDraft()

	if err := d.AddLine("Tiling", models.UnitSquareMeter, 10, 25); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := d.AddLine("Labor", models.UnitHour, 4, 50); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}

	lines := d.Lines()
	if lines[0].Description != "Tiling" || lines[1].Description != "Labor" {
		t.Errorf("insertion order not preserved: %+v", lines)
	}
	if lines[0].Total != 250 || lines[1].Total != 200 {
		t.Errorf("line totals = %f, %f, want 250, 200", lines[0].Total, lines[1].Total)
	}
}

func TestDraftAddLineRejections(t *testing.T) {
	d := NewDraft()
	if err := d.AddLine("Existing", models.UnitUnit, 1, 10); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	tests := []struct {
		name        string
		description string
		unitType    models.UnitType
		quantity    float64
		unitPrice   float64
		field       string
	}{
		{"empty description", "", models.UnitUnit, 5, 10, "description"},
		{"blank description", "   ", models.UnitUnit, 5, 10, "description"},
		{"zero quantity", "Pose", models.UnitUnit, 0, 10, "quantity"},
		{"negative quantity", "Pose", models.UnitUnit, -2, 10, "quantity"},
		{"negative price", "Pose", models.UnitUnit, 1, -5, "unit_price"},
		{"unknown unit", "Pose", "tonne", 1, 10, "unit_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.AddLine(tt.description, tt.unitType, tt.quantity, tt.unitPrice)
			ve := AsValidation(err)
			if ve == nil {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if _, ok := ve.Violations[tt.field]; !ok {
				t.Errorf("violations = %v, want field %q", ve.Violations, tt.field)
			}
			// The rejected line never mutates the draft.
			if d.Len() != 1 {
				t.Errorf("len = %d, want 1", d.Len())
			}
		})
	}

	// A valid add still works after rejections: no error state leaks.
	if err := d.AddLine("Après", models.UnitDay, 2, 300); err != nil {
		t.Fatalf("AddLine after rejections: %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("len = %d, want 2", d.Len())
	}
}

func TestDraftZeroPriceLineAllowed(t *testing.T) {
	d := NewDraft()
	if err := d.AddLine("Geste commercial", models.UnitFlatRate, 1, 0); err != nil {
		t.Fatalf("AddLine with zero price: %v", err)
	}
}

func TestDraftClearAndTotals(t *testing.T) {
	d := NewDraft()
	_ = d.AddLine("Tiling", models.UnitSquareMeter, 10, 25)
	_ = d.AddLine("Labor", models.UnitHour, 4, 50)

	ht, tva, ttc := d.ComputeTotals(20)
	if !almostEqual(ht, 450) || !almostEqual(tva, 90) || !almostEqual(ttc, 540) {
		t.Errorf("totals = %f/%f/%f, want 450/90/540", ht, tva, ttc)
	}
	// ComputeTotals does not mutate the draft.
	if d.Len() != 2 {
		t.Errorf("len = %d, want 2", d.Len())
	}

	d.Clear()
	if d.Len() != 0 {
		t.Errorf("len after Clear = %d, want 0", d.Len())
	}
	ht, tva, ttc = d.ComputeTotals(20)
	if ht != 0 || tva != 0 || ttc != 0 {
		t.Errorf("totals after Clear = %f/%f/%f, want zeros", ht, tva, ttc)
	}
}

func TestDraftCommit(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewInvoiceService(conn)
	client := seedClient(t, conn, "Lefebvre")

	d := NewDraft()
	_ = d.AddLine("Tiling", models.UnitSquareMeter, 10, 25)
	_ = d.AddLine("Labor", models.UnitHour, 4, 50)

	number, err := d.Commit(svc, client.ID, 20, "2 lignes")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if number == "" {
		t.Fatal("expected assigned number")
	}
	// Success clears the draft.
	if d.Len() != 0 {
		t.Errorf("len after commit = %d, want 0", d.Len())
	}

	inv, err := svc.GetByNumber(number)
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if len(inv.Lines) != 2 || inv.Notes != "2 lignes" {
		t.Errorf("invoice = %+v", inv)
	}
}

func TestDraftCommitFailurePreservesLines(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewInvoiceService(conn)

	d := NewDraft()
	_ = d.AddLine("Tiling", models.UnitSquareMeter, 10, 25)

	// Unknown client: the commit fails and the draft survives for retry.
	_, err := d.Commit(svc, 9999, 20, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Commit error = %v, want ErrNotFound", err)
	}
	if d.Len() != 1 {
		t.Errorf("len after failed commit = %d, want 1", d.Len())
	}

	client := seedClient(t, conn, "Retry")
	if _, err := d.Commit(svc, client.ID, 20, ""); err != nil {
		t.Fatalf("retry Commit: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("len after retry = %d, want 0", d.Len())
	}
}

func TestDraftRegistrySessionIsolation(t *testing.T) {
	reg := NewDraftRegistry()

	a := reg.Get("session-a")
	b := reg.Get("session-b")
	if a == b {
		t.Fatal("sessions must not share a draft")
	}

	_ = a.AddLine("Ligne A", models.UnitUnit, 1, 10)
	if b.Len() != 0 {
		t.Errorf("session b polluted: len = %d", b.Len())
	}
	if reg.Get("session-a") != a {
		t.Error("Get must return the same draft for a session")
	}

	reg.Drop("session-a")
	if reg.Get("session-a") == a {
		t.Error("Drop must discard the session draft")
	}
}
