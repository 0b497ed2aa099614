package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/naturgy/gas-console/internal/application/billing"
	"github.com/naturgy/gas-console/internal/application/resource"
	"github.com/naturgy/gas-console/internal/domain/entity"
)

// RouterDeps dependencias para el router: los cinco controladores de recurso
// y el orquestador de facturación.
type RouterDeps struct {
	SupplyPoints      *resource.Controller[entity.SupplyPoint]
	Readings          *resource.Controller[entity.GasReading]
	Tariffs           *resource.Controller[entity.GasTariff]
	ConversionFactors *resource.Controller[entity.ConversionFactor]
	Taxes             *resource.Controller[entity.TaxConfig]
	Billing           *billing.Orchestrator
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	console := app.Group("/console")

	registerResource(console, "/supply-points", NewResourceHandler(deps.SupplyPoints))
	registerResource(console, "/readings", NewResourceHandler(deps.Readings))
	registerResource(console, "/tariffs", NewResourceHandler(deps.Tariffs))
	registerResource(console, "/conversion-factors", NewResourceHandler(deps.ConversionFactors))
	registerResource(console, "/taxes", NewResourceHandler(deps.Taxes))

	billingHandler := NewBillingHandler(deps.Billing)
	billingGroup := console.Group("/billing")
	billingGroup.Get("/", billingHandler.State)
	billingGroup.Post("/run", billingHandler.Run)
	billingGroup.Post("/result/toggle", billingHandler.ToggleResult)
	billingGroup.Delete("/result", billingHandler.DismissResult)

	invoices := console.Group("/invoices")
	invoices.Get("/", billingHandler.Invoices)
	invoices.Get("/:id", billingHandler.InvoiceDetail)
	invoices.Get("/:id/pdf", billingHandler.InvoicePDF)
	invoices.Delete("/:id", billingHandler.DeleteInvoice)
}

// registerResource registra el juego de rutas común de un recurso.
func registerResource[T any](g fiber.Router, prefix string, h *ResourceHandler[T]) {
	r := g.Group(prefix)
	r.Get("/", h.State)
	r.Post("/load", h.Load)
	r.Post("/filter", h.Filter)
	r.Post("/", h.Save)
	r.Delete("/", h.Remove)
}
