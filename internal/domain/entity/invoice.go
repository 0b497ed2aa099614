package entity

import "github.com/shopspring/decimal"

func init() {
	// El servicio de gas serializa importes como números JSON; sin esto
	// decimal.Decimal los emitiría como strings y el frontend dejaría de
	// parsear las cifras.
	decimal.MarshalJSONWithoutQuotes = true
}

// Invoice cabecera de factura emitida por el servicio de gas (solo lectura
// para la consola). base + impuestos = total lo garantiza el servicio; la
// consola no lo re-valida.
type Invoice struct {
	ID            int64           `json:"id"`
	NumeroFactura string          `json:"numeroFactura"`
	CUPS          string          `json:"cups"`
	PeriodoInicio string          `json:"periodoInicio"`
	PeriodoFin    string          `json:"periodoFin"`
	Base          decimal.Decimal `json:"base"`
	Impuestos     decimal.Decimal `json:"impuestos"`
	Total         decimal.Decimal `json:"total"`
	FechaEmision  string          `json:"fechaEmision"`
	Lines         []InvoiceLine   `json:"lines,omitempty"`
}

// InvoiceLine línea de detalle de una factura.
// importe = cantidad × precioUnitario es invariante del servicio.
type InvoiceLine struct {
	ID             *int64          `json:"id,omitempty"`
	LineType       string          `json:"lineType"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Importe        decimal.Decimal `json:"importe"`
}
