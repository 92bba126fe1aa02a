package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"prepedido/collections"
	"prepedido/services"
)

// newImportCatalogCommand loads catalog entries from a .csv or .xlsx file.
// Invalid rows are skipped and written to an error report next to the input.
func newImportCatalogCommand(app *pocketbase.PocketBase) *cobra.Command {
	return &cobra.Command{
		Use:   "import-catalog <file>",
		Short: "Import catalog materials from a CSV or Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := services.ParseCatalogFile(f, filepath.Base(path))
			if err != nil {
				return err
			}

			collections.Setup(app)
			created, updated, err := collections.ImportCatalog(app, result.Entries)
			if err != nil {
				return err
			}
			cmd.Printf("catalog: %d created, %d updated, %d rows with errors\n", created, updated, result.ErrorRows)

			if len(result.Errors) == 0 {
				return nil
			}
			report, err := services.GenerateErrorReport(result.Errors)
			if err != nil {
				return err
			}
			reportPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_errores.xlsx"
			if err := os.WriteFile(reportPath, report, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", reportPath, err)
			}
			cmd.Printf("error report: %s\n", reportPath)
			return nil
		},
	}
}
