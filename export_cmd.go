package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"prepedido/collections"
	"prepedido/config"
	"prepedido/services"
)

// newExportCommand writes the stored pre-order to an Excel or PDF file
// without starting the server.
func newExportCommand(app *pocketbase.PocketBase, configPath *string) *cobra.Command {
	var format, out string
	var sel services.Selection

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the pre-order to an Excel or PDF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			collections.Setup(app)
			if err := collections.Seed(app); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			tree, err := collections.LoadTree(app)
			if err != nil {
				return err
			}
			lookups, err := collections.LoadLookups(app)
			if err != nil {
				return err
			}

			project, work, activity := sel.Normalize(lookups).Labels(lookups)
			data := services.BuildExportData(tree, settings.Estimate.ApartmentCount, services.ExportHeader{
				Title:       settings.Estimate.Title,
				Project:     project,
				Work:        work,
				Activity:    activity,
				CreatedDate: time.Now().Format("02/01/2006"),
			})

			var content []byte
			switch format {
			case "xlsx":
				content, err = services.GenerateExcel(data)
			case "pdf":
				content, err = services.GeneratePDF(data)
			default:
				return fmt.Errorf("unknown format %q (want xlsx or pdf)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("Prepedido_%s.%s", time.Now().Format("2006-01-02"), format)
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			cmd.Printf("wrote %s (%d materials)\n", out, data.MaterialCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "output format: xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default Prepedido_<date>.<format>)")
	cmd.Flags().StringVar(&sel.ProjectID, "project", "", "project key for the header")
	cmd.Flags().StringVar(&sel.WorkID, "work", "", "work key for the header")
	cmd.Flags().StringVar(&sel.ActivityID, "activity", "", "activity key for the header")
	return cmd
}
