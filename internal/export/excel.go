// Package export produces the flat tabular Excel workbooks the original
// tool offered for the client roster and the invoice list. It only consumes
// read-only snapshots; fetching is the caller's concern.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/diewo77/facturation/internal/models"
)

const dateLayout = "2006-01-02"

// Clients renders the client roster to a one-sheet xlsx workbook.
func Clients(clients []models.Client) ([]byte, error) {
	const sheet = "Clients"
	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers := []string{"db_id", "code", "nom", "prenom", "email", "telephone", "adresse", "code_postal", "ville", "pays", "created_at"}
	if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
		return nil, err
	}
	for i, c := range clients {
		row := []any{
			c.ID, c.Code, c.Name, c.FirstName, c.Email, c.Phone,
			c.Address, c.PostalCode, c.City, c.Country,
			c.CreatedAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}
	return buf.Bytes(), nil
}

// Invoices renders the invoice list to a one-sheet xlsx workbook. Monetary
// columns use a 2-decimal number format; stored values keep full precision.
func Invoices(invoices []models.Invoice) ([]byte, error) {
	const sheet = "Factures"
	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers := []string{"numero", "client_db_id", "nom", "prenom", "date_emission", "total_ht", "tva_pourcent", "montant_tva", "total_ttc", "statut", "notes"}
	if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
		return nil, err
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, fmt.Errorf("export invoices: style: %w", err)
	}

	for i, inv := range invoices {
		var nom, prenom string
		if inv.Client != nil {
			nom, prenom = inv.Client.Name, inv.Client.FirstName
		}
		row := []any{
			inv.Number, inv.ClientID, nom, prenom,
			inv.EmissionDate.Format(dateLayout),
			inv.TotalHT, inv.TVAPercent, inv.MontantTVA, inv.TotalTTC,
			string(inv.Status), inv.Notes,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
		start, _ := excelize.CoordinatesToCellName(6, i+2)
		end, _ := excelize.CoordinatesToCellName(9, i+2)
		if err := f.SetCellStyle(sheet, start, end, money); err != nil {
			return nil, fmt.Errorf("export invoices: cell style: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export invoices: %w", err)
	}
	return buf.Bytes(), nil
}

func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
