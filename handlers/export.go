package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"prepedido/services"
)

// buildExportData flattens the current snapshot with the filter labels.
func buildExportData(env *Env, sel services.Selection) services.ExportData {
	project, work, activity := sel.Labels(env.Lookups)
	return services.BuildExportData(env.Store.Snapshot(), env.apartmentCount(), services.ExportHeader{
		Title:       env.Settings.Estimate.Title,
		Project:     project,
		Work:        work,
		Activity:    activity,
		CreatedDate: time.Now().Format("02/01/2006"),
	})
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	return strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", `"`, "").Replace(s)
}

func exportFilename(sel services.Selection, env *Env, ext string) string {
	_, _, activity := sel.Labels(env.Lookups)
	name := "Prepedido"
	if activity != "" {
		name += "_" + sanitizeFilename(activity)
	}
	return fmt.Sprintf("%s_%s.%s", name, time.Now().Format("2006-01-02"), ext)
}

// HandleExportExcel downloads the pre-order as an Excel workbook.
func HandleExportExcel(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sel := GetSelection(e.Request)
		if !sel.Complete() {
			return ErrorToast(e, http.StatusBadRequest, "Selecciona los filtros para exportar")
		}

		xlsxBytes, err := services.GenerateExcel(buildExportData(env, sel))
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo Excel")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(sel, env, "xlsx")))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleExportPDF downloads the pre-order as a PDF document.
func HandleExportPDF(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sel := GetSelection(e.Request)
		if !sel.Complete() {
			return ErrorToast(e, http.StatusBadRequest, "Selecciona los filtros para exportar")
		}

		pdfBytes, err := services.GeneratePDF(buildExportData(env, sel))
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(sel, env, "pdf")))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}
