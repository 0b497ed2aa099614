package gasapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/naturgy/gas-console/internal/domain/entity"
)

// ── Puntos de suministro ──────────────────────────────────────────────────────

// ListSupplyPoints lista todos los puntos de suministro (sin filtros).
func (c *Client) ListSupplyPoints(ctx context.Context) ([]entity.SupplyPoint, error) {
	return Get[[]entity.SupplyPoint](ctx, c, "/supply-points")
}

// CreateSupplyPoint crea un punto de suministro.
func (c *Client) CreateSupplyPoint(ctx context.Context, sp entity.SupplyPoint) (entity.SupplyPoint, error) {
	return Post[entity.SupplyPoint](ctx, c, "/supply-points", sp)
}

// UpdateSupplyPoint actualiza el punto identificado por su CUPS (inmutable).
func (c *Client) UpdateSupplyPoint(ctx context.Context, sp entity.SupplyPoint) (entity.SupplyPoint, error) {
	return Put[entity.SupplyPoint](ctx, c, "/supply-points/"+url.PathEscape(sp.CUPS), sp)
}

// DeleteSupplyPoint elimina un punto de suministro por CUPS.
func (c *Client) DeleteSupplyPoint(ctx context.Context, cups string) error {
	return c.Delete(ctx, "/supply-points/"+url.PathEscape(cups))
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// ListReadings lista lecturas; el filtro por CUPS se delega al servicio como
// query param. cups vacío = todas.
func (c *Client) ListReadings(ctx context.Context, cups string) ([]entity.GasReading, error) {
	path := "/readings"
	if cups != "" {
		path += "?cups=" + url.QueryEscape(cups)
	}
	return Get[[]entity.GasReading](ctx, c, path)
}

// CreateReading registra una lectura. No existe actualización: la identidad
// (cups, fecha) es única y el servicio rechaza duplicados.
func (c *Client) CreateReading(ctx context.Context, r entity.GasReading) (entity.GasReading, error) {
	return Post[entity.GasReading](ctx, c, "/readings", r)
}

// DeleteReading elimina la lectura (cups, fecha).
func (c *Client) DeleteReading(ctx context.Context, cups, fecha string) error {
	return c.Delete(ctx, "/readings/"+url.PathEscape(cups)+"/"+fecha)
}

// ── Tarifas ───────────────────────────────────────────────────────────────────

// ListTariffs lista todas las tarifas.
func (c *Client) ListTariffs(ctx context.Context) ([]entity.GasTariff, error) {
	return Get[[]entity.GasTariff](ctx, c, "/tariffs")
}

// CreateTariff crea una tarifa; el servicio asigna el id.
func (c *Client) CreateTariff(ctx context.Context, t entity.GasTariff) (entity.GasTariff, error) {
	return Post[entity.GasTariff](ctx, c, "/tariffs", t)
}

// UpdateTariff actualiza la tarifa por id.
func (c *Client) UpdateTariff(ctx context.Context, t entity.GasTariff) (entity.GasTariff, error) {
	return Put[entity.GasTariff](ctx, c, fmt.Sprintf("/tariffs/%d", *t.ID), t)
}

// DeleteTariff elimina la tarifa por id.
func (c *Client) DeleteTariff(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/tariffs/%d", id))
}

// ── Factores de conversión ────────────────────────────────────────────────────

// ListConversionFactors lista todos los factores de conversión.
func (c *Client) ListConversionFactors(ctx context.Context) ([]entity.ConversionFactor, error) {
	return Get[[]entity.ConversionFactor](ctx, c, "/conversion-factors")
}

// CreateConversionFactor crea un factor de conversión.
func (c *Client) CreateConversionFactor(ctx context.Context, cf entity.ConversionFactor) (entity.ConversionFactor, error) {
	return Post[entity.ConversionFactor](ctx, c, "/conversion-factors", cf)
}

// UpdateConversionFactor actualiza el factor por id.
func (c *Client) UpdateConversionFactor(ctx context.Context, cf entity.ConversionFactor) (entity.ConversionFactor, error) {
	return Put[entity.ConversionFactor](ctx, c, fmt.Sprintf("/conversion-factors/%d", *cf.ID), cf)
}

// DeleteConversionFactor elimina el factor por id.
func (c *Client) DeleteConversionFactor(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/conversion-factors/%d", id))
}

// ── Impuestos ─────────────────────────────────────────────────────────────────

// ListTaxes lista las configuraciones de impuestos.
func (c *Client) ListTaxes(ctx context.Context) ([]entity.TaxConfig, error) {
	return Get[[]entity.TaxConfig](ctx, c, "/taxes")
}

// CreateTax crea una configuración de impuesto.
func (c *Client) CreateTax(ctx context.Context, tc entity.TaxConfig) (entity.TaxConfig, error) {
	return Post[entity.TaxConfig](ctx, c, "/taxes", tc)
}

// UpdateTax actualiza la configuración por id.
func (c *Client) UpdateTax(ctx context.Context, tc entity.TaxConfig) (entity.TaxConfig, error) {
	return Put[entity.TaxConfig](ctx, c, fmt.Sprintf("/taxes/%d", *tc.ID), tc)
}

// DeleteTax elimina la configuración por id.
func (c *Client) DeleteTax(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/taxes/%d", id))
}

// ── Facturación ───────────────────────────────────────────────────────────────

// RunBilling lanza la ejecución de facturación del período (YYYY-MM).
// El período viaja como query param; el POST no lleva cuerpo.
func (c *Client) RunBilling(ctx context.Context, period string) (entity.BillingResult, error) {
	return Post[entity.BillingResult](ctx, c, "/billing/run?period="+url.QueryEscape(period), nil)
}

// ListInvoices lista facturas; cups y period son opcionales y se combinan
// con semántica AND en el servicio.
func (c *Client) ListInvoices(ctx context.Context, cups, period string) ([]entity.Invoice, error) {
	params := url.Values{}
	if cups != "" {
		params.Set("cups", cups)
	}
	if period != "" {
		params.Set("period", period)
	}
	path := "/invoices"
	if qs := params.Encode(); qs != "" {
		path += "?" + qs
	}
	return Get[[]entity.Invoice](ctx, c, path)
}

// GetInvoice obtiene el detalle completo de una factura, líneas incluidas.
func (c *Client) GetInvoice(ctx context.Context, id int64) (entity.Invoice, error) {
	return Get[entity.Invoice](ctx, c, fmt.Sprintf("/invoices/%d", id))
}

// DeleteInvoice elimina una factura por id.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/invoices/%d", id))
}

// InvoicePDFURL construye la URL determinista del PDF de una factura.
// La consola no descarga los bytes: la descarga la hace el navegador.
func (c *Client) InvoicePDFURL(id int64) string {
	return fmt.Sprintf("%s/invoices/%d/pdf", c.baseURL, id)
}
