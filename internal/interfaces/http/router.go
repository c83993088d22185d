package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *usecase.ReportUseCase
	ReferenceUC *usecase.ReferenceUseCase
	// MetricsHandler se monta en /metrics si no es nil.
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Load)
	api.Get("/dashboard/widgets", dashboardHandler.Widgets)

	// Relatórios (Análise Detalhada)
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/options", reportHandler.Options)
	reports.Post("/", reportHandler.Generate)
	reports.Post("/export", reportHandler.Export)

	// Cabeçalho y catálogos
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	api.Get("/brand", referenceHandler.Brand)
	api.Get("/reference/:kind", referenceHandler.List)
}
