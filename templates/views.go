// Package templates holds the templ components that render the pre-order
// page and its HTMX partials. The *_templ.go files are generated with
// `templ generate`.
package templates

import (
	"fmt"
	"strings"
)

// HeaderData is shown in the page header.
type HeaderData struct {
	Title    string
	Project  string
	Work     string
	Activity string
}

// FilterOption is one entry of a filter dropdown.
type FilterOption struct {
	ID       string
	Name     string
	Selected bool
}

// FilterData drives the three cascading dropdowns.
type FilterData struct {
	Projects   []FilterOption
	Works      []FilterOption
	Activities []FilterOption
}

// FiguresView holds the four money figures shown on every section header.
type FiguresView struct {
	OrderTotal    string
	BudgetTotal   string
	OrderPerUnit  string
	BudgetPerUnit string
}

// CommentView is a comment with its timestamp already formatted.
type CommentView struct {
	ID        string
	Author    string
	Text      string
	Timestamp string
}

// CatalogOption is a catalog entry offered in the add and replace selects.
type CatalogOption struct {
	Code  string
	Label string
}

// MaterialView is one row of a material table.
type MaterialView struct {
	ID          string
	Code        string
	Name        string
	Unit        string
	BudgetQty   string
	BudgetMax   string // raw value for the input's max attribute
	UnitPrice   string
	OrderQty    string // raw value for the input
	LineTotal   string
	Status      string
	StatusLabel string
	// Comments are newest first.
	Comments       []CommentView
	ReplaceOptions []CatalogOption
}

// FamilyView is a family section with its material table.
type FamilyView struct {
	ID         string
	Name       string
	Figures    FiguresView
	Materials  []MaterialView
	AddOptions []CatalogOption
	Editable   bool
}

// SublevelView is a sublevel section grouping families.
type SublevelView struct {
	ID       string
	Name     string
	Depth    int
	Figures  FiguresView
	Families []FamilyView
}

// LevelView is a top-level section grouping sublevels.
type LevelView struct {
	ID             string
	Name           string
	Depth          int
	ApartmentCount int
	Figures        FiguresView
	Sublevels      []SublevelView
}

// SummaryView feeds the summary bar.
type SummaryView struct {
	ApartmentCount int
	MaterialCount  int
	OrderedUnits   string
	Figures        FiguresView
}

// EstimateData is everything the estimate page needs.
type EstimateData struct {
	Header      HeaderData
	Filters     FilterData
	ShowContent bool
	Editable    bool
	Levels      []LevelView
	Summary     SummaryView
}

// VisibleComments is how many comments are listed before the
// "Ver N comentarios más" expander.
const VisibleComments = 3

// Context joins the selected project, work and activity for the header.
func (h HeaderData) Context() string {
	parts := []string{h.Project}
	if h.Work != "" {
		parts = append(parts, h.Work)
	}
	if h.Activity != "" {
		parts = append(parts, h.Activity)
	}
	return strings.Join(parts, " › ")
}

// splitComments returns the listed comments and the ones folded behind the
// expander.
func splitComments(comments []CommentView) (visible, hidden []CommentView) {
	if len(comments) <= VisibleComments {
		return comments, nil
	}
	return comments[:VisibleComments], comments[VisibleComments:]
}

func withEditable(f FamilyView, editable bool) FamilyView {
	f.Editable = editable
	return f
}

func anySelected(options []FilterOption) bool {
	for _, o := range options {
		if o.Selected {
			return true
		}
	}
	return false
}

// changedVals is the hx-vals payload naming the dropdown that fired.
func changedVals(name string) string {
	return fmt.Sprintf(`{"changed":%q}`, name)
}
