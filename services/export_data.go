package services

import (
	"strconv"

	"prepedido/estimate"
)

// RowKind tells the exporters which hierarchy node a row stands for.
type RowKind int

const (
	RowLevel RowKind = iota
	RowSublevel
	RowFamily
	RowMaterial
)

// ExportRow is one line of the pre-order export: a section header (level,
// sublevel, family) carrying its totals, or a material line.
type ExportRow struct {
	Kind        RowKind
	Index       string // "1", "1.1", "1.1.1", "1.1.1.1"
	Code        string
	Description string
	Unit        string
	BudgetQty   float64
	UnitPrice   float64
	OrderQty    float64
	Status      string
	OrderTotal  float64
	BudgetTotal float64
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title          string
	Project        string
	Work           string
	Activity       string
	CreatedDate    string
	ApartmentCount int
	Rows           []ExportRow
	Totals         Totals
	PerApartment   Totals
	MaterialCount  int
}

// ExportHeader carries the descriptive fields of an export.
type ExportHeader struct {
	Title       string
	Project     string
	Work        string
	Activity    string
	CreatedDate string
}

// BuildExportData flattens tree into export rows in display order.
func BuildExportData(tree estimate.Tree, apartmentCount int, header ExportHeader) ExportData {
	data := ExportData{
		Title:          header.Title,
		Project:        header.Project,
		Work:           header.Work,
		Activity:       header.Activity,
		CreatedDate:    header.CreatedDate,
		ApartmentCount: apartmentCount,
	}

	for li, l := range tree.Levels {
		lIdx := strconv.Itoa(li + 1)
		lt := LevelTotals(l)
		data.Rows = append(data.Rows, ExportRow{
			Kind:        RowLevel,
			Index:       lIdx,
			Description: "NIVEL " + strconv.Itoa(l.Depth) + " - " + l.Name,
			OrderTotal:  lt.Order,
			BudgetTotal: lt.Budget,
		})

		for si, sl := range l.Sublevels {
			sIdx := lIdx + "." + strconv.Itoa(si+1)
			st := SublevelTotals(sl)
			data.Rows = append(data.Rows, ExportRow{
				Kind:        RowSublevel,
				Index:       sIdx,
				Description: "NIVEL " + strconv.Itoa(sl.Depth) + " - " + sl.Name,
				OrderTotal:  st.Order,
				BudgetTotal: st.Budget,
			})

			for fi, f := range sl.Families {
				fIdx := sIdx + "." + strconv.Itoa(fi+1)
				ft := FamilyTotals(f)
				data.Rows = append(data.Rows, ExportRow{
					Kind:        RowFamily,
					Index:       fIdx,
					Description: "FAMILIA - " + f.Name,
					OrderTotal:  ft.Order,
					BudgetTotal: ft.Budget,
				})

				for mi, m := range f.Materials {
					data.Rows = append(data.Rows, ExportRow{
						Kind:        RowMaterial,
						Index:       fIdx + "." + strconv.Itoa(mi+1),
						Code:        m.Code,
						Description: m.Name,
						Unit:        m.Unit,
						BudgetQty:   m.BudgetQuantity,
						UnitPrice:   m.UnitPrice,
						OrderQty:    m.OrderQuantity,
						Status:      m.Status.Label(),
						OrderTotal:  LineTotal(m.UnitPrice, m.OrderQuantity),
						BudgetTotal: LineTotal(m.UnitPrice, m.BudgetQuantity),
					})
					data.MaterialCount++
				}
			}
		}
	}

	data.Totals = TreeTotals(tree)
	data.PerApartment = data.Totals.PerUnit(apartmentCount)
	return data
}
