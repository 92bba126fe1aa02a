package handlers

import (
	"slices"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/estimate"
	"prepedido/services"
	"prepedido/templates"
)

// buildEstimateData turns the current snapshot and filter selection into the
// page view. Every figure is recomputed from the snapshot.
func buildEstimateData(env *Env, sel services.Selection) templates.EstimateData {
	project, work, activity := sel.Labels(env.Lookups)
	data := templates.EstimateData{
		Header: templates.HeaderData{
			Title:    env.Settings.Estimate.Title,
			Project:  project,
			Work:     work,
			Activity: activity,
		},
		Filters:     buildFilterData(env.Lookups, sel),
		ShowContent: sel.Complete(),
		Editable:    env.editable(),
	}
	if !data.ShowContent {
		return data
	}

	tree := env.Store.Snapshot()
	units := env.apartmentCount()
	for _, l := range tree.Levels {
		data.Levels = append(data.Levels, buildLevelView(env, l, units))
	}
	data.Summary = templates.SummaryView{
		ApartmentCount: units,
		MaterialCount:  services.CountMaterials(tree),
		OrderedUnits:   services.FormatQuantity(services.OrderedUnits(tree)),
		Figures:        figuresView(services.TreeTotals(tree), units),
	}
	return data
}

func buildFilterData(l services.Lookups, sel services.Selection) templates.FilterData {
	var f templates.FilterData
	for _, p := range l.Projects {
		f.Projects = append(f.Projects, templates.FilterOption{ID: p.ID, Name: p.Name, Selected: p.ID == sel.ProjectID})
	}
	for _, w := range l.WorksFor(sel.ProjectID) {
		f.Works = append(f.Works, templates.FilterOption{ID: w.ID, Name: w.Name, Selected: w.ID == sel.WorkID})
	}
	for _, a := range l.ActivitiesFor(sel.WorkID) {
		f.Activities = append(f.Activities, templates.FilterOption{ID: a.ID, Name: a.Name, Selected: a.ID == sel.ActivityID})
	}
	return f
}

func figuresView(t services.Totals, units int) templates.FiguresView {
	per := t.PerUnit(units)
	return templates.FiguresView{
		OrderTotal:    services.FormatCOP(t.Order),
		BudgetTotal:   services.FormatCOP(t.Budget),
		OrderPerUnit:  services.FormatCOP(per.Order),
		BudgetPerUnit: services.FormatCOP(per.Budget),
	}
}

func buildLevelView(env *Env, l estimate.Level, units int) templates.LevelView {
	v := templates.LevelView{
		ID:             l.ID,
		Name:           l.Name,
		Depth:          l.Depth,
		ApartmentCount: units,
		Figures:        figuresView(services.LevelTotals(l), units),
	}
	for _, s := range l.Sublevels {
		sv := templates.SublevelView{
			ID:      s.ID,
			Name:    s.Name,
			Depth:   s.Depth,
			Figures: figuresView(services.SublevelTotals(s), units),
		}
		for _, f := range s.Families {
			sv.Families = append(sv.Families, buildFamilyView(env, f, units))
		}
		v.Sublevels = append(v.Sublevels, sv)
	}
	return v
}

func buildFamilyView(env *Env, f estimate.Family, units int) templates.FamilyView {
	v := templates.FamilyView{
		ID:       f.ID,
		Name:     f.Name,
		Figures:  figuresView(services.FamilyTotals(f), units),
		Editable: env.editable(),
	}
	for _, m := range f.Materials {
		v.Materials = append(v.Materials, buildMaterialView(env, f, m))
	}
	if v.Editable {
		v.AddOptions = catalogOptions(services.AddOptions(env.Catalog, f))
	}
	return v
}

func buildMaterialView(env *Env, f estimate.Family, m estimate.Material) templates.MaterialView {
	v := templates.MaterialView{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Unit:        m.Unit,
		BudgetQty:   services.FormatQuantity(m.BudgetQuantity),
		BudgetMax:   strconv.FormatFloat(m.BudgetQuantity, 'f', -1, 64),
		UnitPrice:   services.FormatCOP(m.UnitPrice),
		OrderQty:    strconv.FormatFloat(m.OrderQuantity, 'f', -1, 64),
		LineTotal:   services.FormatCOP(services.LineTotal(m.UnitPrice, m.OrderQuantity)),
		Status:      string(m.Status),
		StatusLabel: m.Status.Label(),
	}
	comments := slices.Clone(m.Comments)
	slices.Reverse(comments)
	for _, c := range comments {
		v.Comments = append(v.Comments, templates.CommentView{
			ID:        c.ID,
			Author:    c.Author,
			Text:      c.Text,
			Timestamp: services.FormatTimestamp(c.CreatedAt),
		})
	}
	if env.editable() {
		v.ReplaceOptions = catalogOptions(services.ReplaceOptions(env.Catalog, f, m))
	}
	return v
}

func catalogOptions(entries []estimate.CatalogEntry) []templates.CatalogOption {
	out := make([]templates.CatalogOption, 0, len(entries))
	for _, e := range entries {
		out = append(out, templates.CatalogOption{
			Code:  e.Code,
			Label: e.Code + " - " + e.Name + " (" + services.FormatCOP(e.UnitPrice) + "/" + e.Unit + ")",
		})
	}
	return out
}

// renderEstimate renders the page, choosing the root partial for HTMX
// requests.
func renderEstimate(e *core.RequestEvent, data templates.EstimateData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.Root(data)
	} else {
		component = templates.Page(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// renderContent re-renders the estimate content after a mutation.
func renderContent(e *core.RequestEvent, env *Env) error {
	data := buildEstimateData(env, GetSelection(e.Request))
	return templates.Content(data).Render(e.Request.Context(), e.Response)
}

// HandleEstimatePage renders the pre-order page for the current selection.
func HandleEstimatePage(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderEstimate(e, buildEstimateData(env, GetSelection(e.Request)))
	}
}
