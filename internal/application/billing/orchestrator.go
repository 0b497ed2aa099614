// Package billing orquesta la ejecución de facturación y el sub-recurso de
// facturas (listado, detalle, borrado, exportación a PDF). Es la única
// operación de la consola con comportamiento asíncrono de larga duración y
// resultado de éxito parcial.
package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/naturgy/gas-console/internal/application/resource"
	"github.com/naturgy/gas-console/internal/domain/entity"
	"github.com/naturgy/gas-console/internal/domain/validate"
	"github.com/naturgy/gas-console/internal/infrastructure/gasapi"
	"github.com/naturgy/gas-console/pkg/logger"
)

// ErrRunInProgress ya hay una ejecución de facturación en curso; las
// ejecuciones son mutuamente excluyentes (Idle ⇄ Running).
var ErrRunInProgress = errors.New("ya hay una ejecución de facturación en curso")

// Orchestrator estado y operaciones del flujo de facturación. Las operaciones
// de lista/detalle/borrado son independientes del estado Running y pueden
// solaparse con una ejecución. Ningún fallo se reintenta automáticamente.
type Orchestrator struct {
	api     GasService
	export  PDFExporter
	confirm resource.Confirmer
	log     *logger.Logger

	mu          sync.Mutex
	running     bool
	periodError string
	result      *entity.BillingResult
	resultOpen  bool

	invoices     []entity.Invoice
	loading      bool
	lastError    string
	notice       string
	filterCups   string
	filterPeriod string
	loadSeq      uint64
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(api GasService, export PDFExporter, confirm resource.Confirmer, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		api:     api,
		export:  export,
		confirm: confirm,
		log:     log,
	}
}

// RunBilling valida el período en local y lanza la ejecución. Un período
// inválido deja el mensaje por campo y no emite ninguna llamada. Al terminar
// (éxito o éxito parcial) se recarga la lista de facturas exactamente una
// vez, con los últimos filtros aplicados por el usuario, para que las nuevas
// facturas aparezcan.
func (o *Orchestrator) RunBilling(ctx context.Context, period string) error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return ErrRunInProgress
	}
	if msg := validate.Period(period); msg != "" {
		o.periodError = msg
		o.mu.Unlock()
		return nil
	}
	o.periodError = ""
	// Una ejecución nueva destruye el resultado anterior.
	o.result = nil
	o.resultOpen = false
	o.running = true
	cups, per := o.filterCups, o.filterPeriod
	o.mu.Unlock()

	o.log.Info().Str("period", period).Msg("ejecutando facturación")
	res, err := o.api.RunBilling(ctx, period)

	o.mu.Lock()
	o.running = false
	if err != nil {
		o.lastError = gasapi.UserMessage(err, "Error al ejecutar facturación")
		o.mu.Unlock()
		o.log.Warn().Str("period", period).Err(err).Msg("fallo en la ejecución de facturación")
		return err
	}
	// Éxito parcial: el recuento y los errores se conservan juntos; el
	// detalle de errores queda plegado hasta que el usuario lo expanda.
	o.result = &res
	o.resultOpen = false
	o.notice = fmt.Sprintf("Facturación ejecutada: %d factura(s) creadas", res.InvoicesCreated)
	o.mu.Unlock()

	o.log.Info().
		Str("period", res.Period).
		Int("invoices_created", res.InvoicesCreated).
		Int("errors", res.ErrorCount()).
		Msg("facturación terminada")

	_ = o.LoadInvoices(ctx, cups, per)
	return nil
}

// LoadInvoices recarga la lista de facturas delegando ambos filtros al
// servicio. En fallo la lista anterior sigue visible junto al error. Las
// respuestas de cargas superadas por otra más reciente se descartan.
func (o *Orchestrator) LoadInvoices(ctx context.Context, cups, period string) error {
	o.mu.Lock()
	o.loadSeq++
	token := o.loadSeq
	o.loading = true
	o.filterCups = cups
	o.filterPeriod = period
	o.mu.Unlock()

	invoices, err := o.api.ListInvoices(ctx, cups, period)

	o.mu.Lock()
	defer o.mu.Unlock()
	if token != o.loadSeq {
		return nil
	}
	o.loading = false
	if err != nil {
		o.lastError = gasapi.UserMessage(err, "Error al cargar facturas")
		return err
	}
	o.invoices = invoices
	return nil
}

// InvoiceDetail obtiene el detalle de una factura, líneas incluidas. Una
// factura sin líneas es válida: la sección de líneas simplemente se omite.
func (o *Orchestrator) InvoiceDetail(ctx context.Context, id int64) (entity.Invoice, error) {
	inv, err := o.api.GetInvoice(ctx, id)
	if err != nil {
		o.mu.Lock()
		o.lastError = gasapi.UserMessage(err, "Error al cargar detalle")
		o.mu.Unlock()
		return entity.Invoice{}, err
	}
	return inv, nil
}

// ExportPDF construye la referencia determinista de descarga y la entrega a
// la capacidad inyectada, con el artefacto nombrado por número de factura.
// Es la única operación fuera del contrato de mapeo de errores: sus fallos
// no son observables aquí.
func (o *Orchestrator) ExportPDF(id int64, numeroFactura string) (url, filename string) {
	url = o.api.InvoicePDFURL(id)
	filename = fmt.Sprintf("factura-%s.pdf", numeroFactura)
	o.log.Debug().Int64("invoice_id", id).Str("filename", filename).Msg("exportando PDF")
	if o.export != nil {
		o.export(url, filename)
	}
	return url, filename
}

// DeleteInvoice confirma, elimina y recarga con los últimos filtros; el mismo
// patrón confirmar-llamar-recargar del controlador de recursos.
func (o *Orchestrator) DeleteInvoice(ctx context.Context, id int64) error {
	if !o.confirm(ctx, "¿Eliminar esta factura?") {
		return nil
	}

	o.mu.Lock()
	cups, per := o.filterCups, o.filterPeriod
	o.mu.Unlock()

	if err := o.api.DeleteInvoice(ctx, id); err != nil {
		o.mu.Lock()
		o.lastError = gasapi.UserMessage(err, "Error al eliminar")
		o.mu.Unlock()
		return err
	}

	o.mu.Lock()
	o.notice = "Factura eliminada"
	o.mu.Unlock()

	_ = o.LoadInvoices(ctx, cups, per)
	return nil
}

// ToggleResult pliega o despliega el detalle del resultado de facturación.
func (o *Orchestrator) ToggleResult() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result != nil {
		o.resultOpen = !o.resultOpen
	}
}

// DismissResult destruye el resultado de la última ejecución (cierre del panel).
func (o *Orchestrator) DismissResult() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.result = nil
	o.resultOpen = false
}

// DismissError limpia el indicador de error.
func (o *Orchestrator) DismissError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastError = ""
}

// DismissNotice limpia la notificación de éxito.
func (o *Orchestrator) DismissNotice() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notice = ""
}

// Snapshot estado observable del orquestador.
type Snapshot struct {
	Running      bool                  `json:"running"`
	PeriodError  string                `json:"periodError,omitempty"`
	Result       *entity.BillingResult `json:"result,omitempty"`
	ResultOpen   bool                  `json:"resultOpen"`
	Invoices     []entity.Invoice      `json:"invoices"`
	Loading      bool                  `json:"loading"`
	Error        string                `json:"error,omitempty"`
	Notice       string                `json:"notice,omitempty"`
	FilterCups   string                `json:"filterCups,omitempty"`
	FilterPeriod string                `json:"filterPeriod,omitempty"`
}

// Snapshot devuelve una copia del estado observable.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	invoices := make([]entity.Invoice, 0, len(o.invoices))
	invoices = append(invoices, o.invoices...)
	var result *entity.BillingResult
	if o.result != nil {
		r := *o.result
		result = &r
	}
	return Snapshot{
		Running:      o.running,
		PeriodError:  o.periodError,
		Result:       result,
		ResultOpen:   o.resultOpen,
		Invoices:     invoices,
		Loading:      o.loading,
		Error:        o.lastError,
		Notice:       o.notice,
		FilterCups:   o.filterCups,
		FilterPeriod: o.filterPeriod,
	}
}
