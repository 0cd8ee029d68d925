// Package pdf renders a committed invoice to a printable A4 document.
//
// Layout, top to bottom: supplier block, "Facturer à" client block, invoice
// number/date/status, the line table (Description | Type | Qté | PU | Total),
// the totals block (Total HT / TVA / Total TTC), free-text notes and a
// generated-at footer. All monetary values are formatted to 2 decimals.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/facturation/internal/services"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// Render produces the PDF bytes for one invoice snapshot.
func Render(data *services.RenderData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Facture "+data.Invoice.Number, true).
		WithAuthor(data.Supplier.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(supplierRows(data)...)
	m.AddRows(headerRow(data))
	m.AddRows(clientRows(data)...)
	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range data.Lines {
		m.AddRows(row.New(6).Add(
			text.NewCol(5, truncate(l.Description, 55)),
			text.NewCol(2, string(l.UnitType)),
			text.NewCol(1, fmt.Sprintf("%.2f", l.Quantity), props.Text{Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", l.UnitPrice), props.Text{Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", l.Total), props.Text{Align: align.Right}),
		))
	}

	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.5}))
	m.AddRows(totalsRows(data)...)

	if data.Invoice.Notes != "" {
		m.AddRows(row.New(8).Add(
			text.NewCol(12, "Notes : "+data.Invoice.Notes, props.Text{Size: 9, Color: colorGray}),
		))
	}
	m.AddRows(row.New(6).Add(
		text.NewCol(12,
			"Facture générée le "+time.Now().Format("02/01/2006 15:04"),
			props.Text{Size: 8, Color: colorGray}),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate: %w", err)
	}
	return doc.GetBytes(), nil
}

func supplierRows(data *services.RenderData) []core.Row {
	s := data.Supplier
	rows := []core.Row{
		row.New(7).Add(text.NewCol(12, s.Name, props.Text{Style: fontstyle.Bold, Size: 13})),
	}
	for _, l := range []string{s.Address, s.Email, s.Phone} {
		if l != "" {
			rows = append(rows, row.New(4).Add(text.NewCol(12, l, props.Text{Size: 9})))
		}
	}
	if s.SIRET != "" {
		rows = append(rows, row.New(4).Add(text.NewCol(12, "SIRET : "+s.SIRET, props.Text{Size: 9})))
	}
	if s.TVAIntra != "" {
		rows = append(rows, row.New(4).Add(text.NewCol(12, "TVA : "+s.TVAIntra, props.Text{Size: 9})))
	}
	return rows
}

// headerRow prints FACTURE with number, date and status on the right.
func headerRow(data *services.RenderData) core.Row {
	inv := data.Invoice
	return row.New(16).Add(
		col.New(6),
		col.New(6).Add(
			text.New("FACTURE", props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Right}),
			text.New("N° "+inv.Number, props.Text{Size: 10, Top: 6, Align: align.Right}),
			text.New("Date : "+inv.EmissionDate.Format("02/01/2006")+"  •  Statut : "+string(inv.Status),
				props.Text{Size: 9, Top: 11, Align: align.Right, Color: colorGray}),
		),
	)
}

func clientRows(data *services.RenderData) []core.Row {
	if data.Client == nil {
		// Client deleted after commit; the invoice remains printable.
		return []core.Row{row.New(6).Add(
			text.NewCol(12, fmt.Sprintf("Facturer à : client supprimé (réf. %d)", data.Invoice.ClientID),
				props.Text{Size: 9, Color: colorGray}),
		)}
	}
	c := data.Client
	rows := []core.Row{
		row.New(5).Add(text.NewCol(12, "Facturer à :", props.Text{Style: fontstyle.Bold, Size: 11})),
		row.New(5).Add(text.NewCol(12, c.FullName())),
	}
	if c.Address != "" {
		rows = append(rows, row.New(4).Add(text.NewCol(12, c.Address, props.Text{Size: 9})))
	}
	if addr := c.PostalCode + " " + c.City; addr != " " {
		rows = append(rows, row.New(4).Add(text.NewCol(12, addr, props.Text{Size: 9})))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 9}
	hr := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
	return row.New(6).Add(
		text.NewCol(5, "Description", h),
		text.NewCol(2, "Type", h),
		text.NewCol(1, "Qté", hr),
		text.NewCol(2, "PU (€)", hr),
		text.NewCol(2, "Total (€)", hr),
	)
}

func totalsRows(data *services.RenderData) []core.Row {
	inv := data.Invoice
	val := props.Text{Align: align.Right, Style: fontstyle.Bold, Size: 10}
	return []core.Row{
		row.New(5).Add(text.NewCol(12, fmt.Sprintf("Total HT : %.2f €", inv.TotalHT), val)),
		row.New(5).Add(text.NewCol(12, fmt.Sprintf("TVA (%.2f%%) : %.2f €", inv.TVAPercent, inv.MontantTVA), val)),
		row.New(5).Add(text.NewCol(12, fmt.Sprintf("Total TTC : %.2f €", inv.TotalTTC), val)),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
