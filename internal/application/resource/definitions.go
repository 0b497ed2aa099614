package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/naturgy/gas-console/internal/domain/entity"
	"github.com/naturgy/gas-console/internal/domain/validate"
	"github.com/naturgy/gas-console/internal/infrastructure/gasapi"
	"github.com/naturgy/gas-console/pkg/logger"
)

// Las cinco instancias del controlador genérico. Cada constructor es solo
// configuración: validador del dominio, endpoints tipados del transporte y
// política de filtrado de esa entidad.

// errSinID borrado de un registro con identidad subrogada que aún no la tiene
// asignada (nunca guardado, o un cuerpo sin id). Se rechaza antes de tocar el
// transporte.
var errSinID = &gasapi.Error{Kind: gasapi.KindHTTP, Message: "El registro no tiene identificador"}

// SupplyPoints controlador de puntos de suministro. La recarga es siempre
// incondicional (sin filtros) y el CUPS es inmutable: crear-vs-actualizar lo
// decide el modo de apertura del editor, no la presencia de la clave.
func SupplyPoints(api *gasapi.Client, confirm Confirmer, log *logger.Logger) *Controller[entity.SupplyPoint] {
	return New(Definition[entity.SupplyPoint]{
		Name:     "supply-points",
		Validate: validate.SupplyPoint,
		List: func(ctx context.Context, _ Filter) ([]entity.SupplyPoint, error) {
			return api.ListSupplyPoints(ctx)
		},
		Create: api.CreateSupplyPoint,
		Update: api.UpdateSupplyPoint,
		Delete: func(ctx context.Context, sp entity.SupplyPoint) error {
			return api.DeleteSupplyPoint(ctx, sp.CUPS)
		},
		ConfirmPrompt: func(sp entity.SupplyPoint) string {
			return fmt.Sprintf("¿Eliminar punto de suministro %s?", sp.CUPS)
		},
		Messages: Messages{
			Created: "Punto de suministro creado",
			Updated: "Punto de suministro actualizado",
			Deleted: "Eliminado correctamente",
		},
	}, confirm, log)
}

// Readings controlador de lecturas. El filtro por CUPS se delega al servicio;
// el rango de fechas se filtra en local sobre la lista cargada. Recurso de
// solo creación: no hay actualización de una lectura existente.
func Readings(api *gasapi.Client, confirm Confirmer, log *logger.Logger) *Controller[entity.GasReading] {
	return New(Definition[entity.GasReading]{
		Name:     "readings",
		Validate: validate.GasReading,
		List: func(ctx context.Context, f Filter) ([]entity.GasReading, error) {
			return api.ListReadings(ctx, f["cups"])
		},
		Create: api.CreateReading,
		Delete: func(ctx context.Context, r entity.GasReading) error {
			return api.DeleteReading(ctx, r.CUPS, r.Fecha)
		},
		Match: func(r entity.GasReading, f Filter) bool {
			if desde := f["fechaDesde"]; desde != "" && r.Fecha < desde {
				return false
			}
			if hasta := f["fechaHasta"]; hasta != "" && r.Fecha > hasta {
				return false
			}
			return true
		},
		ConfirmPrompt: func(r entity.GasReading) string {
			return fmt.Sprintf("¿Eliminar lectura %s / %s?", r.CUPS, r.Fecha)
		},
		Messages: Messages{
			Created: "Lectura creada correctamente",
			Deleted: "Eliminada correctamente",
		},
	}, confirm, log)
}

// Tariffs controlador de tarifas. Identidad subrogada: id nil → crear.
func Tariffs(api *gasapi.Client, confirm Confirmer, log *logger.Logger) *Controller[entity.GasTariff] {
	return New(Definition[entity.GasTariff]{
		Name:     "tariffs",
		Validate: validate.GasTariff,
		IsNew:    func(t entity.GasTariff) bool { return t.ID == nil },
		List: func(ctx context.Context, _ Filter) ([]entity.GasTariff, error) {
			return api.ListTariffs(ctx)
		},
		Create: api.CreateTariff,
		Update: api.UpdateTariff,
		Delete: func(ctx context.Context, t entity.GasTariff) error {
			if t.ID == nil {
				return errSinID
			}
			return api.DeleteTariff(ctx, *t.ID)
		},
		ConfirmPrompt: func(entity.GasTariff) string { return "¿Eliminar esta tarifa?" },
		Messages: Messages{
			Created: "Tarifa creada",
			Updated: "Tarifa actualizada",
			Deleted: "Eliminada correctamente",
		},
	}, confirm, log)
}

// ConversionFactors controlador de factores de conversión. Carga amplia y
// filtrado local: zona por subcadena (sin mayúsculas), mes por igualdad.
func ConversionFactors(api *gasapi.Client, confirm Confirmer, log *logger.Logger) *Controller[entity.ConversionFactor] {
	return New(Definition[entity.ConversionFactor]{
		Name:     "conversion-factors",
		Validate: validate.ConversionFactor,
		IsNew:    func(cf entity.ConversionFactor) bool { return cf.ID == nil },
		List: func(ctx context.Context, _ Filter) ([]entity.ConversionFactor, error) {
			return api.ListConversionFactors(ctx)
		},
		Create: api.CreateConversionFactor,
		Update: api.UpdateConversionFactor,
		Delete: func(ctx context.Context, cf entity.ConversionFactor) error {
			if cf.ID == nil {
				return errSinID
			}
			return api.DeleteConversionFactor(ctx, *cf.ID)
		},
		Match: func(cf entity.ConversionFactor, f Filter) bool {
			if zona := f["zona"]; zona != "" &&
				!strings.Contains(strings.ToLower(cf.Zona), strings.ToLower(zona)) {
				return false
			}
			if mes := f["mes"]; mes != "" && cf.Mes != mes {
				return false
			}
			return true
		},
		ConfirmPrompt: func(entity.ConversionFactor) string {
			return "¿Eliminar este factor de conversión?"
		},
		Messages: Messages{
			Created: "Factor creado",
			Updated: "Factor actualizado",
			Deleted: "Eliminado correctamente",
		},
	}, confirm, log)
}

// Taxes controlador de configuraciones de impuestos.
func Taxes(api *gasapi.Client, confirm Confirmer, log *logger.Logger) *Controller[entity.TaxConfig] {
	return New(Definition[entity.TaxConfig]{
		Name:     "taxes",
		Validate: validate.TaxConfig,
		IsNew:    func(tc entity.TaxConfig) bool { return tc.ID == nil },
		List: func(ctx context.Context, _ Filter) ([]entity.TaxConfig, error) {
			return api.ListTaxes(ctx)
		},
		Create: api.CreateTax,
		Update: api.UpdateTax,
		Delete: func(ctx context.Context, tc entity.TaxConfig) error {
			if tc.ID == nil {
				return errSinID
			}
			return api.DeleteTax(ctx, *tc.ID)
		},
		ConfirmPrompt: func(entity.TaxConfig) string {
			return "¿Eliminar esta configuración de IVA?"
		},
		Messages: Messages{
			Created: "IVA creado",
			Updated: "IVA actualizado",
			Deleted: "Eliminado correctamente",
		},
	}, confirm, log)
}
