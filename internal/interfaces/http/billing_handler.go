package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/naturgy/gas-console/internal/application/billing"
)

// BillingHandler expone el orquestador de facturación.
type BillingHandler struct {
	orch *billing.Orchestrator
}

// NewBillingHandler construye el handler.
func NewBillingHandler(orch *billing.Orchestrator) *BillingHandler {
	return &BillingHandler{orch: orch}
}

// State devuelve el estado observable del orquestador.
// GET /console/billing
func (h *BillingHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.orch.Snapshot())
}

// Run lanza la ejecución de facturación del período.
// POST /console/billing/run?period=YYYY-MM
func (h *BillingHandler) Run(c *fiber.Ctx) error {
	err := h.orch.RunBilling(c.Context(), c.Query("period"))
	snap := h.orch.Snapshot()
	switch {
	case err == billing.ErrRunInProgress:
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "RUN_IN_PROGRESS", Message: err.Error()})
	case snap.PeriodError != "":
		return c.Status(fiber.StatusUnprocessableEntity).JSON(snap)
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(snap)
	}
	return c.JSON(snap)
}

// Invoices recarga y devuelve la lista de facturas.
// GET /console/invoices?cups=...&period=...
func (h *BillingHandler) Invoices(c *fiber.Ctx) error {
	if err := h.orch.LoadInvoices(c.Context(), c.Query("cups"), c.Query("period")); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(h.orch.Snapshot())
	}
	return c.JSON(h.orch.Snapshot())
}

// InvoiceDetail devuelve una factura con sus líneas.
// GET /console/invoices/:id
func (h *BillingHandler) InvoiceDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	inv, err := h.orch.InvoiceDetail(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(h.orch.Snapshot())
	}
	return c.JSON(inv)
}

// DeleteInvoice elimina una factura y recarga la lista.
// DELETE /console/invoices/:id
func (h *BillingHandler) DeleteInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.orch.DeleteInvoice(c.Context(), id); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(h.orch.Snapshot())
	}
	return c.JSON(h.orch.Snapshot())
}

// InvoicePDF redirige la descarga al artefacto del servicio de gas. La
// consola nunca decodifica los bytes del PDF; el navegador hace la descarga
// con el nombre determinista factura-<numeroFactura>.pdf.
// GET /console/invoices/:id/pdf?numeroFactura=...
func (h *BillingHandler) InvoicePDF(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	url, filename := h.orch.ExportPDF(id, c.Query("numeroFactura"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// ToggleResult pliega/despliega el panel de resultado.
// POST /console/billing/result/toggle
func (h *BillingHandler) ToggleResult(c *fiber.Ctx) error {
	h.orch.ToggleResult()
	return c.JSON(h.orch.Snapshot())
}

// DismissResult descarta el resultado de la última ejecución.
// DELETE /console/billing/result
func (h *BillingHandler) DismissResult(c *fiber.Ctx) error {
	h.orch.DismissResult()
	return c.JSON(h.orch.Snapshot())
}
