package main

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/collections"
	"prepedido/config"
	"prepedido/estimate"
	"prepedido/handlers"
	"prepedido/services"
)

func main() {
	app := pocketbase.New()

	var configPath string
	app.RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a prepedido YAML config file")
	app.RootCmd.AddCommand(newExportCommand(app, &configPath), newImportCatalogCommand(app))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		settings, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		// Create collections and seed data on startup
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if _, err := collections.MigrateMaterialInvariants(app); err != nil {
			log.Printf("Warning: material migration failed: %v", err)
		}

		env, err := buildEnv(app, settings)
		if err != nil {
			return err
		}

		se.Router.BindFunc(handlers.SelectionMiddleware(env))

		se.Router.GET("/", handlers.HandleEstimatePage(env))

		// ── Filters ──────────────────────────────────────────────
		se.Router.POST("/filters", handlers.HandleFilters(env))
		se.Router.GET("/filters/works", handlers.HandleWorkOptions(env))
		se.Router.GET("/filters/activities", handlers.HandleActivityOptions(env))

		// ── Materials ────────────────────────────────────────────
		se.Router.GET("/families/{familyId}/materials", handlers.HandleFamilyMaterials(env))
		se.Router.POST("/families/{familyId}/materials", handlers.HandleAddMaterial(env))
		se.Router.PATCH("/materials/{materialId}/quantity", handlers.HandleSetQuantity(env))
		se.Router.POST("/materials/{materialId}/replace", handlers.HandleReplaceMaterial(env))
		se.Router.POST("/materials/{materialId}/comments", handlers.HandleAddComment(env))
		se.Router.POST("/materials/{materialId}/order", handlers.HandleAddToOrder(env))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/export/excel", handlers.HandleExportExcel(env))
		se.Router.GET("/export/pdf", handlers.HandleExportPDF(env))

		if env.Metrics != nil {
			se.Router.GET("/metrics", apis.WrapStdHandler(env.Metrics.Handler()))
		}

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// buildEnv loads the pre-order from the collections and wires the store with
// the configured author, persistence and metrics.
func buildEnv(app *pocketbase.PocketBase, settings config.Config) (*handlers.Env, error) {
	tree, err := collections.LoadTree(app)
	if err != nil {
		return nil, err
	}
	entries, err := collections.LoadCatalog(app)
	if err != nil {
		return nil, err
	}
	lookups, err := collections.LoadLookups(app)
	if err != nil {
		return nil, err
	}

	opts := []estimate.Option{estimate.WithAuthor(settings.Estimate.CurrentUser)}
	if settings.Storage.Persist {
		opts = append(opts, estimate.WithPersister(collections.NewRecordWriter(app)))
	}

	var metrics *handlers.Metrics
	if settings.Metrics.Enabled {
		metrics = handlers.NewMetrics()
		metrics.SetTree(tree)
		opts = append(opts, estimate.WithObserver(metrics.Observe))
	}

	store := estimate.NewStore(tree, opts...)
	env := &handlers.Env{
		Store:    store,
		Catalog:  services.NewStaticCatalog(entries),
		Lookups:  lookups,
		Settings: settings,
		Metrics:  metrics,
	}
	if settings.Estimate.Editable {
		env.Mutator = store
	}
	log.Printf("prepedido: loaded %d materials (editable=%v, persist=%v)",
		services.CountMaterials(tree), settings.Estimate.Editable, settings.Storage.Persist)
	return env, nil
}
