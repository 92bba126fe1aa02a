package services

import (
	"math/rand"
	"testing"

	"prepedido/estimate"
)

func concretosFamily() estimate.Family {
	return estimate.Family{ID: "familia-1", Name: "Concretos", Materials: []estimate.Material{
		{ID: "m1", Code: "MAT-001", BudgetQuantity: 500, UnitPrice: 35000, OrderQuantity: 450},
		{ID: "m3", Code: "MAT-003", BudgetQuantity: 50, UnitPrice: 85000, OrderQuantity: 45},
	}}
}

func TestFamilyTotals_ConcreteScenario(t *testing.T) {
	got := FamilyTotals(concretosFamily())
	if got.Order != 19575000 {
		t.Errorf("Order = %v, want 19575000", got.Order)
	}
	if got.Budget != 21750000 {
		t.Errorf("Budget = %v, want 21750000", got.Budget)
	}

	per := got.PerUnit(80)
	if per.Order != 244687.5 {
		t.Errorf("Order per unit = %v, want 244687.5", per.Order)
	}
	if per.Budget != 271875 {
		t.Errorf("Budget per unit = %v, want 271875", per.Budget)
	}
}

func TestPerUnit(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		count  int
		expect float64
	}{
		{"zero units", 19575000, 0, 0},
		{"negative units", 1000, -3, 0},
		{"one unit", 1000, 1, 1000},
		{"fractional result", 10, 4, 2.5},
		{"zero total", 0, 80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PerUnit(tt.total, tt.count); got != tt.expect {
				t.Errorf("PerUnit(%v, %d) = %v, want %v", tt.total, tt.count, got, tt.expect)
			}
		})
	}
}

func TestSubtotal_Empty(t *testing.T) {
	got := Subtotal(nil)
	if got.Order != 0 || got.Budget != 0 {
		t.Errorf("Subtotal(nil) = %+v, want zero", got)
	}
}

func TestSubtotal_PermutationInvariant(t *testing.T) {
	materials := []estimate.Material{
		{ID: "a", UnitPrice: 0.1, OrderQuantity: 3, BudgetQuantity: 7},
		{ID: "b", UnitPrice: 0.2, OrderQuantity: 1.1, BudgetQuantity: 2.3},
		{ID: "c", UnitPrice: 1e9, OrderQuantity: 0.7, BudgetQuantity: 1},
		{ID: "d", UnitPrice: 0.3, OrderQuantity: 9.9, BudgetQuantity: 10},
		{ID: "e", UnitPrice: 12500.75, OrderQuantity: 280, BudgetQuantity: 300},
	}
	want := Subtotal(materials)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]estimate.Material(nil), materials...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Subtotal(shuffled); got != want {
			t.Fatalf("permutation %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestLevelTotals_EqualsSumOfSublevels(t *testing.T) {
	level := estimate.Level{ID: "nivel5-1", Sublevels: []estimate.Sublevel{
		{ID: "nivel8-1", Families: []estimate.Family{
			concretosFamily(),
			{ID: "familia-2", Materials: []estimate.Material{
				{ID: "m2", BudgetQuantity: 200, UnitPrice: 18500, OrderQuantity: 180},
			}},
		}},
		{ID: "nivel8-2", Families: []estimate.Family{
			{ID: "familia-3", Materials: []estimate.Material{
				{ID: "m4", BudgetQuantity: 300, UnitPrice: 12500, OrderQuantity: 280},
			}},
		}},
	}}

	var order, budget float64
	for _, sl := range level.Sublevels {
		st := SublevelTotals(sl)
		order += st.Order
		budget += st.Budget
	}

	got := LevelTotals(level)
	if got.Order != order || got.Budget != budget {
		t.Errorf("LevelTotals = %+v, sum of sublevels = {%v %v}", got, order, budget)
	}
	// 19,575,000 + 3,330,000 + 3,500,000
	if got.Order != 26405000 {
		t.Errorf("Order = %v, want 26405000", got.Order)
	}

	tree := estimate.Tree{Levels: []estimate.Level{level}}
	if tt := TreeTotals(tree); tt != got {
		t.Errorf("TreeTotals = %+v, want %+v", tt, got)
	}
	if n := CountMaterials(tree); n != 4 {
		t.Errorf("CountMaterials = %d, want 4", n)
	}
	if u := OrderedUnits(tree); u != 955 {
		t.Errorf("OrderedUnits = %v, want 955", u)
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(35000, 450); got != 15750000 {
		t.Errorf("LineTotal = %v, want 15750000", got)
	}
	if got := LineTotal(0.1, 3); got != 0.3 {
		t.Errorf("LineTotal(0.1, 3) = %v, want 0.3", got)
	}
}
