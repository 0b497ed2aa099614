package billing

// Puertos del orquestador de facturación. La implementación concreta es el
// cliente del servicio de gas; en tests se inyectan stubs deterministas.

import (
	"context"

	"github.com/naturgy/gas-console/internal/domain/entity"
)

// GasService operaciones de facturación del servicio de gas.
type GasService interface {
	// RunBilling lanza la ejecución del período (YYYY-MM ya validado).
	RunBilling(ctx context.Context, period string) (entity.BillingResult, error)
	// ListInvoices lista facturas; cups y period opcionales, semántica AND.
	ListInvoices(ctx context.Context, cups, period string) ([]entity.Invoice, error)
	// GetInvoice detalle completo de una factura, líneas incluidas.
	GetInvoice(ctx context.Context, id int64) (entity.Invoice, error)
	// DeleteInvoice elimina una factura.
	DeleteInvoice(ctx context.Context, id int64) error
	// InvoicePDFURL URL determinista del PDF de una factura.
	InvoicePDFURL(id int64) string
}

// PDFExporter capacidad de descarga inyectada: dado un recurso y un nombre de
// archivo, inicia la descarga en el navegador. El orquestador nunca toca los
// bytes del PDF y sus fallos no son observables (contrato del colaborador
// externo).
type PDFExporter func(url, filename string)
