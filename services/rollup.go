// Package services provides the rollups, formatting, catalog helpers and
// export generators used by the pre-order handlers.
package services

import (
	"github.com/shopspring/decimal"

	"prepedido/estimate"
)

// Totals holds the ordered and budgeted money of a subtree.
type Totals struct {
	Order  float64
	Budget float64
}

// PerUnit divides both totals by the number of units (apartments).
func (t Totals) PerUnit(unitCount int) Totals {
	return Totals{
		Order:  PerUnit(t.Order, unitCount),
		Budget: PerUnit(t.Budget, unitCount),
	}
}

// PerUnit returns total/unitCount, or 0 when unitCount is not positive.
func PerUnit(total float64, unitCount int) float64 {
	if unitCount <= 0 {
		return 0
	}
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(unitCount))).
		InexactFloat64()
}

// LineTotal is unitPrice × quantity for a single material line.
func LineTotal(unitPrice, quantity float64) float64 {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromFloat(quantity)).InexactFloat64()
}

// sum accumulates exactly; conversion to float64 happens once in totals().
type sum struct {
	order, budget decimal.Decimal
}

func (s *sum) addMaterials(materials []estimate.Material) {
	for _, m := range materials {
		price := decimal.NewFromFloat(m.UnitPrice)
		s.order = s.order.Add(price.Mul(decimal.NewFromFloat(m.OrderQuantity)))
		s.budget = s.budget.Add(price.Mul(decimal.NewFromFloat(m.BudgetQuantity)))
	}
}

func (s *sum) addFamilies(families []estimate.Family) {
	for _, f := range families {
		s.addMaterials(f.Materials)
	}
}

func (s *sum) addSublevels(sublevels []estimate.Sublevel) {
	for _, sl := range sublevels {
		s.addFamilies(sl.Families)
	}
}

func (s *sum) totals() Totals {
	return Totals{Order: s.order.InexactFloat64(), Budget: s.budget.InexactFloat64()}
}

// Subtotal sums price × order and price × budget over materials.
func Subtotal(materials []estimate.Material) Totals {
	var s sum
	s.addMaterials(materials)
	return s.totals()
}

// FamilyTotals sums the materials of a family.
func FamilyTotals(f estimate.Family) Totals {
	return Subtotal(f.Materials)
}

// SublevelTotals sums every family of a sublevel.
func SublevelTotals(sl estimate.Sublevel) Totals {
	var s sum
	s.addFamilies(sl.Families)
	return s.totals()
}

// LevelTotals sums every sublevel of a level.
func LevelTotals(l estimate.Level) Totals {
	var s sum
	s.addSublevels(l.Sublevels)
	return s.totals()
}

// TreeTotals sums every material in the tree.
func TreeTotals(t estimate.Tree) Totals {
	var s sum
	for _, l := range t.Levels {
		s.addSublevels(l.Sublevels)
	}
	return s.totals()
}

// OrderedUnits is the total order quantity across the tree, regardless of
// unit of measure.
func OrderedUnits(t estimate.Tree) float64 {
	total := decimal.Zero
	for _, l := range t.Levels {
		for _, sl := range l.Sublevels {
			for _, f := range sl.Families {
				for _, m := range f.Materials {
					total = total.Add(decimal.NewFromFloat(m.OrderQuantity))
				}
			}
		}
	}
	return total.InexactFloat64()
}

// CountMaterials returns the number of material lines in the tree.
func CountMaterials(t estimate.Tree) int {
	n := 0
	for _, l := range t.Levels {
		for _, sl := range l.Sublevels {
			for _, f := range sl.Families {
				n += len(f.Materials)
			}
		}
	}
	return n
}
