package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"prepedido/estimate"
	"prepedido/templates"
)

// outcome is what a mutation reports back to the client.
type outcome struct {
	message string
	applied bool
}

// handleMutation wraps a mutation with the capability check, metrics and
// the toast plus content re-render every successful edit gets. A no-op is
// reported with an info toast and no swap.
func handleMutation(env *Env, op string, apply func(e *core.RequestEvent) (outcome, error)) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !env.editable() {
			env.Metrics.Mutation(op, "rejected")
			return ErrorToast(e, http.StatusForbidden, "La edición no está disponible")
		}

		out, err := apply(e)
		switch {
		case errors.Is(err, estimate.ErrUnavailable):
			env.Metrics.Mutation(op, "rejected")
			return ErrorToast(e, http.StatusForbidden, "La edición no está disponible")
		case err != nil:
			env.Metrics.Mutation(op, "error")
			log.Printf("%s: %v", op, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo guardar el cambio")
		case !out.applied:
			env.Metrics.Mutation(op, "noop")
			SetToast(e, toastInfo, out.message)
			e.Response.Header().Set("HX-Reswap", "none")
			return e.NoContent(http.StatusOK)
		}

		env.Metrics.Mutation(op, "applied")
		SetToast(e, toastSuccess, out.message)
		return renderContent(e, env)
	}
}

func formValue(e *core.RequestEvent, name string) string {
	return strings.TrimSpace(e.Request.FormValue(name))
}

// HandleFamilyMaterials renders the material table partial of one family.
func HandleFamilyMaterials(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		familyID := e.Request.PathValue("familyId")
		f, ok := env.Store.Snapshot().FindFamily(familyID)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Familia no encontrada")
		}
		view := buildFamilyView(env, f, env.apartmentCount())
		return templates.MaterialTable(view).Render(e.Request.Context(), e.Response)
	}
}

// HandleSetQuantity parses the typed quantity, clamps it to [0, budget] and
// stores it.
func HandleSetQuantity(env *Env) func(*core.RequestEvent) error {
	return handleMutation(env, estimate.SetOrderQuantity{}.Op(), func(e *core.RequestEvent) (outcome, error) {
		materialID := e.Request.PathValue("materialId")
		m, ok := env.Store.Snapshot().FindMaterial(materialID)
		if !ok {
			return outcome{message: "Material no encontrado"}, nil
		}

		q := estimate.ClampQuantity(estimate.ParseQuantity(e.Request.FormValue("quantity")), m.BudgetQuantity)
		ok, err := env.Mutator.SetOrderQuantity(e.Request.Context(), materialID, q)
		if err != nil || !ok {
			return outcome{message: "Material no encontrado"}, err
		}
		return outcome{message: "Cantidad actualizada", applied: true}, nil
	})
}

// HandleAddMaterial adds the catalog entry posted as "code" to a family.
func HandleAddMaterial(env *Env) func(*core.RequestEvent) error {
	return handleMutation(env, estimate.AddMaterial{}.Op(), func(e *core.RequestEvent) (outcome, error) {
		entry, ok := env.Catalog.Lookup(formValue(e, "code"))
		if !ok {
			return outcome{message: "Selecciona un material del catálogo"}, nil
		}
		familyID := e.Request.PathValue("familyId")
		if _, found := env.Store.Snapshot().FindFamily(familyID); !found {
			return outcome{message: "Familia no encontrada"}, nil
		}
		_, ok, err := env.Mutator.AddMaterial(e.Request.Context(), familyID, &entry)
		if err != nil || !ok {
			return outcome{message: "El material ya está en la familia"}, err
		}
		return outcome{message: "Material agregado", applied: true}, nil
	})
}

// HandleReplaceMaterial substitutes a material with the catalog entry posted
// as "code", keeping its quantities and comments.
func HandleReplaceMaterial(env *Env) func(*core.RequestEvent) error {
	return handleMutation(env, estimate.ReplaceMaterial{}.Op(), func(e *core.RequestEvent) (outcome, error) {
		entry, ok := env.Catalog.Lookup(formValue(e, "code"))
		if !ok {
			return outcome{message: "Selecciona un material del catálogo"}, nil
		}
		_, ok, err := env.Mutator.ReplaceMaterial(e.Request.Context(), e.Request.PathValue("materialId"), &entry)
		if err != nil || !ok {
			return outcome{message: "No se pudo sustituir el material"}, err
		}
		return outcome{message: "Material sustituido", applied: true}, nil
	})
}

// HandleAddComment appends the posted "text" to a material's comments.
func HandleAddComment(env *Env) func(*core.RequestEvent) error {
	return handleMutation(env, estimate.AppendComment{}.Op(), func(e *core.RequestEvent) (outcome, error) {
		text := formValue(e, "text")
		if text == "" {
			return outcome{message: "Escribe un comentario"}, nil
		}
		_, ok, err := env.Mutator.AppendComment(e.Request.Context(), e.Request.PathValue("materialId"), text)
		if err != nil || !ok {
			return outcome{message: "Material no encontrado"}, err
		}
		return outcome{message: "Comentario agregado", applied: true}, nil
	})
}

// HandleAddToOrder acknowledges the "Guardar" action of a material line.
func HandleAddToOrder(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !env.editable() {
			return ErrorToast(e, http.StatusForbidden, "La edición no está disponible")
		}
		if _, ok := env.Store.Snapshot().FindMaterial(e.Request.PathValue("materialId")); !ok {
			return ErrorToast(e, http.StatusNotFound, "Material no encontrado")
		}
		SetToast(e, toastSuccess, "Material agregado al pedido")
		return e.NoContent(http.StatusOK)
	}
}
