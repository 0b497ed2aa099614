package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/naturgy/gas-console/internal/application/resource"
)

// ResourceHandler expone un controlador de recursos genérico como API de la
// consola. La capa de presentación solo consume el estado del controlador y
// dispara sus acciones; toda la lógica vive en internal/application/resource.
type ResourceHandler[T any] struct {
	ctrl *resource.Controller[T]
}

// NewResourceHandler construye el handler.
func NewResourceHandler[T any](ctrl *resource.Controller[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{ctrl: ctrl}
}

// State devuelve el estado observable del controlador.
// GET /console/{recurso}
func (h *ResourceHandler[T]) State(c *fiber.Ctx) error {
	return c.JSON(h.ctrl.Snapshot())
}

// Load recarga la lista. Los query params se delegan o se aplican en local
// según la política de la entidad.
// POST /console/{recurso}/load
func (h *ResourceHandler[T]) Load(c *fiber.Ctx) error {
	_ = h.ctrl.Load(c.Context(), queryFilter(c))
	return c.JSON(h.ctrl.Snapshot())
}

// Filter fija el filtro local sin recargar.
// POST /console/{recurso}/filter
func (h *ResourceHandler[T]) Filter(c *fiber.Ctx) error {
	h.ctrl.SetLocalFilter(queryFilter(c))
	return c.JSON(h.ctrl.Snapshot())
}

// Save recibe el buffer de edición y guarda. ?existing=true marca edición de
// un registro ya persistido (relevante para claves naturales como el CUPS).
// Las violaciones de validación vuelven con 422 dentro del snapshot.
// POST /console/{recurso}
func (h *ResourceHandler[T]) Save(c *fiber.Ctx) error {
	var rec T
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if c.QueryBool("existing") {
		h.ctrl.OpenEdit(rec)
	} else {
		h.ctrl.OpenCreate(rec)
	}
	err := h.ctrl.Save(c.Context())
	snap := h.ctrl.Snapshot()
	switch {
	case len(snap.FieldErrors) > 0:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(snap)
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(snap)
	}
	return c.JSON(snap)
}

// Remove elimina el registro recibido. La interfaz ya confirmó con el
// usuario; el controlador usa su Confirmer inyectado.
// DELETE /console/{recurso}
func (h *ResourceHandler[T]) Remove(c *fiber.Ctx) error {
	var rec T
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ctrl.Remove(c.Context(), rec); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(h.ctrl.Snapshot())
	}
	return c.JSON(h.ctrl.Snapshot())
}

// queryFilter convierte los query params en un filtro del controlador.
func queryFilter(c *fiber.Ctx) resource.Filter {
	f := resource.Filter{}
	for k, vals := range c.Queries() {
		if vals != "" {
			f[k] = vals
		}
	}
	return f
}
