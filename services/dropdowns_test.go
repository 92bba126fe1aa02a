package services

import (
	"testing"
)

func testLookups() Lookups {
	return Lookups{
		Projects: []Project{
			{ID: "1", Name: "Torre Residencial Norte"},
			{ID: "2", Name: "Centro Comercial Plaza Sur"},
			{ID: "3", Name: "Edificio Corporativo ABC"},
		},
		Works: []Work{
			{ID: "1", Name: "Estructura Principal", ProjectID: "1"},
			{ID: "2", Name: "Acabados Interiores", ProjectID: "1"},
			{ID: "3", Name: "Instalaciones", ProjectID: "2"},
			{ID: "4", Name: "Fachada", ProjectID: "3"},
		},
		Activities: []Activity{
			{ID: "1", Name: "Cimentación", WorkID: "1"},
			{ID: "2", Name: "Columnas y Vigas", WorkID: "1"},
			{ID: "3", Name: "Losas", WorkID: "1"},
			{ID: "4", Name: "Pisos y Revestimientos", WorkID: "2"},
		},
	}
}

func TestLookups_WorksFor(t *testing.T) {
	l := testLookups()

	works := l.WorksFor("1")
	if len(works) != 2 || works[0].Name != "Estructura Principal" || works[1].Name != "Acabados Interiores" {
		t.Errorf("WorksFor(1) = %+v", works)
	}
	if got := l.WorksFor(""); got != nil {
		t.Errorf("WorksFor(\"\") = %+v, want nil", got)
	}
	if got := l.WorksFor("99"); len(got) != 0 {
		t.Errorf("WorksFor(99) = %+v, want empty", got)
	}
}

func TestLookups_ActivitiesFor(t *testing.T) {
	l := testLookups()

	if got := l.ActivitiesFor("1"); len(got) != 3 {
		t.Errorf("expected 3 activities for work 1, got %d", len(got))
	}
	if got := l.ActivitiesFor("3"); len(got) != 0 {
		t.Errorf("expected no activities for work 3, got %+v", got)
	}
}

func TestSelection_Normalize(t *testing.T) {
	l := testLookups()
	tests := []struct {
		name   string
		in     Selection
		expect Selection
	}{
		{"empty", Selection{}, Selection{}},
		{"complete and valid", Selection{"1", "1", "2"}, Selection{"1", "1", "2"}},
		{"unknown project clears all", Selection{"9", "1", "2"}, Selection{}},
		{"work of another project", Selection{"2", "1", "2"}, Selection{ProjectID: "2"}},
		{"activity of another work", Selection{"1", "2", "2"}, Selection{ProjectID: "1", WorkID: "2"}},
		{"project only", Selection{ProjectID: "3"}, Selection{ProjectID: "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(l); got != tt.expect {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.expect)
			}
		})
	}
}

func TestSelection_Complete(t *testing.T) {
	if (Selection{ProjectID: "1", WorkID: "1"}).Complete() {
		t.Error("selection without activity should not be complete")
	}
	if !(Selection{"1", "1", "1"}).Complete() {
		t.Error("selection with all three should be complete")
	}
}

func TestSelection_Labels(t *testing.T) {
	p, w, a := Selection{"1", "1", "2"}.Labels(testLookups())
	if p != "Torre Residencial Norte" || w != "Estructura Principal" || a != "Columnas y Vigas" {
		t.Errorf("Labels = %q, %q, %q", p, w, a)
	}
}
