package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return buf.String()
}

func sampleFamily(editable bool) FamilyView {
	return FamilyView{
		ID:   "f1",
		Name: "Concretos",
		Materials: []MaterialView{{
			ID: "m1", Code: "MAT-001", Name: "Cemento <Gris>", Unit: "Sacos",
			BudgetQty: "500", BudgetMax: "500", UnitPrice: "$35.000", OrderQty: "450",
			LineTotal: "$15.750.000", Status: "approved", StatusLabel: "Aprobado",
			ReplaceOptions: []CatalogOption{{Code: "MAT-006", Label: "MAT-006 - Ladrillo"}},
		}},
		AddOptions: []CatalogOption{{Code: "MAT-008", Label: "MAT-008 - Cal"}},
		Editable:   editable,
	}
}

func TestMaterialTable_Editable(t *testing.T) {
	out := render(t, MaterialTable(sampleFamily(true)))

	for _, want := range []string{
		`id="family-f1-materials"`,
		`hx-patch="/materials/m1/quantity"`,
		`max="500"`,
		`value="450"`,
		`hx-post="/materials/m1/replace"`,
		`hx-post="/families/f1/materials"`,
		"Agregar Material",
		"Cemento &lt;Gris&gt;",
		"Aprobado",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestMaterialTable_ReadOnly(t *testing.T) {
	out := render(t, MaterialTable(sampleFamily(false)))

	for _, absent := range []string{"hx-patch", "/replace", "Agregar Material", "Acciones", "/comments"} {
		if strings.Contains(out, absent) {
			t.Errorf("read-only table should not contain %q", absent)
		}
	}
	if !strings.Contains(out, "450") {
		t.Error("expected order quantity as text")
	}
}

func TestComments_FoldsOlderComments(t *testing.T) {
	m := MaterialView{ID: "m4"}
	for _, id := range []string{"c4", "c3", "c2", "c1"} {
		m.Comments = append(m.Comments, CommentView{ID: id, Author: "Ana", Text: "nota " + id})
	}

	out := render(t, Comments(m, false))

	if !strings.Contains(out, "Ver 1 comentarios más") {
		t.Errorf("expected expander label, got %s", out)
	}
	details := strings.Index(out, "<details")
	if details < 0 || strings.Index(out, `id="comment-c1"`) < details {
		t.Error("oldest comment should be inside the expander")
	}
	if strings.Index(out, `id="comment-c4"`) > details {
		t.Error("newest comment should be listed first")
	}
}

func TestComments_NoExpanderForFew(t *testing.T) {
	m := MaterialView{ID: "m1", Comments: []CommentView{{ID: "c1"}, {ID: "c2"}}}
	out := render(t, Comments(m, true))
	if strings.Contains(out, "comentarios más") {
		t.Error("expander should not be shown for two comments")
	}
	if !strings.Contains(out, `hx-post="/materials/m1/comments"`) {
		t.Error("expected comment form when editable")
	}
}

func TestContent_EmptyState(t *testing.T) {
	out := render(t, Content(EstimateData{}))
	if !strings.Contains(out, "Selecciona los filtros para comenzar") {
		t.Error("expected empty state")
	}
	if strings.Contains(out, "summary-bar") {
		t.Error("summary should not render without a full selection")
	}
}

func TestPage_RendersLevelsAndSummary(t *testing.T) {
	data := EstimateData{
		Header:      HeaderData{Title: "Prepedido", Project: "Torre A", Work: "Estructura"},
		ShowContent: true,
		Levels: []LevelView{{
			ID: "l1", Name: "Estructura", Depth: 5, ApartmentCount: 80,
			Figures: FiguresView{OrderTotal: "$19.575.000", OrderPerUnit: "$244.688"},
			Sublevels: []SublevelView{{
				ID: "s1", Name: "Cimientos", Depth: 6,
				Families: []FamilyView{sampleFamily(false)},
			}},
		}},
		Summary: SummaryView{ApartmentCount: 80, Figures: FiguresView{OrderTotal: "$19.575.000"}},
	}

	out := render(t, Page(data))

	for _, want := range []string{
		"<!doctype html>",
		"htmx.org",
		"showToast",
		"📋 Prepedido",
		"Torre A › Estructura",
		"NIVEL 5",
		"APTOS: 80",
		"$/Apto (Prepedido)",
		"Subtotal (Prepedido)",
		"Valor Total (Prepedido)",
		`id="estimate-root"`,
		`id="estimate-content"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}

func TestFilterSection_MarksSelection(t *testing.T) {
	out := render(t, FilterSection(FilterData{
		Projects: []FilterOption{{ID: "p1", Name: "Torre A", Selected: true}, {ID: "p2", Name: "Torre B"}},
		Works:    []FilterOption{{ID: "w1", Name: "Estructura"}},
	}))

	if !strings.Contains(out, `<option value="p1" selected>`) {
		t.Error("expected selected project option")
	}
	if !strings.Contains(out, `hx-vals="{&#34;changed&#34;:&#34;project&#34;}"`) {
		t.Error("expected changed marker on project select")
	}
	if !strings.Contains(out, `name="activity" hx-post="/filters" hx-trigger="change" hx-vals="{&#34;changed&#34;:&#34;activity&#34;}" disabled>`) {
		t.Error("activity select should be disabled until a work is chosen")
	}
	if strings.Contains(out, `hx-vals="{&#34;changed&#34;:&#34;work&#34;}" disabled`) {
		t.Error("work select should be enabled once a project is chosen")
	}
}

func TestSections_ShowPerApartmentFigures(t *testing.T) {
	figures := FiguresView{
		OrderTotal: "$19.575.000", BudgetTotal: "$21.000.000",
		OrderPerUnit: "$244.688", BudgetPerUnit: "$262.500",
	}
	family := sampleFamily(false)
	family.Figures = figures

	tests := []struct {
		name string
		c    templ.Component
	}{
		{"sublevel", SublevelSection(SublevelView{ID: "s1", Name: "Cimientos", Depth: 6, Figures: figures}, false)},
		{"family", FamilySection(family)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, tt.c)
			summary := out[strings.Index(out, "<summary>"):strings.Index(out, "</summary>")]
			for _, want := range []string{
				"$/Apto (Prepedido)", "$244.688",
				"$/Apto (Presupuesto)", "$262.500",
				"Subtotal (Prepedido)", "$19.575.000",
				"Subtotal (Presupuesto)", "$21.000.000",
			} {
				if !strings.Contains(summary, want) {
					t.Errorf("expected %q in %s header", want, tt.name)
				}
			}
		})
	}
}

func TestHeaderData_Context(t *testing.T) {
	tests := []struct {
		data HeaderData
		want string
	}{
		{HeaderData{Project: "Torre A"}, "Torre A"},
		{HeaderData{Project: "Torre A", Work: "Estructura"}, "Torre A › Estructura"},
		{HeaderData{Project: "Torre A", Work: "Estructura", Activity: "Cimentación"}, "Torre A › Estructura › Cimentación"},
	}
	for _, tt := range tests {
		if got := tt.data.Context(); got != tt.want {
			t.Errorf("Context() = %q, want %q", got, tt.want)
		}
	}
}
