package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfColumns is the 12-unit grid used by the header and every row.
var pdfColumns = []struct {
	title string
	width int
}{
	{"#", 1},
	{"Material", 2},
	{"Unidad", 1},
	{"Cant. presup.", 1},
	{"Valor unit.", 1},
	{"Cant. a pedir", 1},
	{"Total (Prepedido)", 2},
	{"Total (Presupuesto)", 2},
	{"Estado", 1},
}

// GeneratePDF renders the pre-order as a landscape A4 document using
// maroto/v2 and returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(filterLine(data), props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Fecha: %s · APTOS: %d", data.CreatedDate, data.ApartmentCount),
					props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addTableHeader(m core.Maroto) {
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	cols := make([]core.Col, len(pdfColumns))
	for i, c := range pdfColumns {
		cols[i] = col.New(c.width).Add(text.New(c.title, headerText)).WithStyle(headerCell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

// sectionBackgrounds shades level, sublevel and family rows.
var sectionBackgrounds = map[RowKind]*props.Color{
	RowLevel:    {Red: 217, Green: 225, Blue: 242},
	RowSublevel: {Red: 231, Green: 236, Blue: 247},
	RowFamily:   {Red: 243, Green: 245, Blue: 251},
}

func addTableRow(m core.Maroto, r ExportRow) {
	base := props.Text{Size: 7, Align: align.Center}
	if r.Kind != RowMaterial {
		base.Style = fontstyle.Bold
		base.Size = 8
	}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	var values []string
	if r.Kind == RowMaterial {
		values = []string{
			r.Index,
			r.Code + " " + r.Description,
			r.Unit,
			FormatQuantity(r.BudgetQty),
			FormatCOP(r.UnitPrice),
			FormatQuantity(r.OrderQty),
			FormatCOP(r.OrderTotal),
			FormatCOP(r.BudgetTotal),
			r.Status,
		}
	} else {
		values = []string{
			r.Index, r.Description, "", "", "", "",
			FormatCOP(r.OrderTotal),
			FormatCOP(r.BudgetTotal),
			"",
		}
	}

	cols := make([]core.Col, len(pdfColumns))
	for i, c := range pdfColumns {
		style := base
		switch {
		case i == 1:
			style = left
		case i >= 3 && i <= 7:
			style = right
		}
		cols[i] = col.New(c.width).Add(text.New(values[i], style))
		if bg, ok := sectionBackgrounds[r.Kind]; ok {
			cols[i] = cols[i].WithStyle(&props.Cell{BackgroundColor: bg})
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	style := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	lines := []struct{ label, value string }{
		{"Total (Prepedido)", FormatCOP(data.Totals.Order)},
		{"Total (Presupuesto)", FormatCOP(data.Totals.Budget)},
		{"$/Apto (Prepedido)", FormatCOP(data.PerApartment.Order)},
		{"$/Apto (Presupuesto)", FormatCOP(data.PerApartment.Budget)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.label, style)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.value, style)).WithStyle(summaryCell),
			),
		)
	}
}
