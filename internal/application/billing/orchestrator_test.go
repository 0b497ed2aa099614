package billing_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naturgy/gas-console/internal/application/billing"
	"github.com/naturgy/gas-console/internal/application/resource"
	"github.com/naturgy/gas-console/internal/domain/entity"
	"github.com/naturgy/gas-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stub del servicio de gas
// ──────────────────────────────────────────────────────────────────────────────

type gasStub struct {
	mu sync.Mutex

	runResult entity.BillingResult
	runErr    error
	runCalls  int
	// runStarted/runRelease permiten mantener una ejecución en vuelo.
	runStarted chan struct{}
	runRelease chan struct{}

	invoices    []entity.Invoice
	listErr     error
	listCalls   int
	lastCups    string
	lastPeriod  string
	deleteCalls int
}

func (s *gasStub) RunBilling(_ context.Context, period string) (entity.BillingResult, error) {
	s.mu.Lock()
	s.runCalls++
	started, release := s.runStarted, s.runRelease
	res, err := s.runResult, s.runErr
	s.mu.Unlock()
	if started != nil {
		close(started)
		<-release
	}
	return res, err
}

func (s *gasStub) ListInvoices(_ context.Context, cups, period string) ([]entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastCups, s.lastPeriod = cups, period
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]entity.Invoice(nil), s.invoices...), nil
}

func (s *gasStub) GetInvoice(_ context.Context, id int64) (entity.Invoice, error) {
	return entity.Invoice{ID: id, NumeroFactura: "F-2026-0001"}, nil
}

func (s *gasStub) DeleteInvoice(context.Context, int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	return nil
}

func (s *gasStub) InvoicePDFURL(id int64) string {
	return fmt.Sprintf("http://gas.example/api/gas/invoices/%d/pdf", id)
}

func nuevoOrquestador(s *gasStub) *billing.Orchestrator {
	return billing.NewOrchestrator(s, nil, resource.AcceptAll, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del período
// ──────────────────────────────────────────────────────────────────────────────

// Un período inválido deja el mensaje por campo y no emite ninguna llamada.
func TestRunBilling_PeriodoInvalidoNoLlamaAlServicio(t *testing.T) {
	s := &gasStub{}
	o := nuevoOrquestador(s)

	require.NoError(t, o.RunBilling(context.Background(), "enero"))

	assert.Zero(t, s.runCalls, "sin llamada de ejecución")
	assert.Zero(t, s.listCalls, "sin recarga de facturas")
	snap := o.Snapshot()
	assert.Equal(t, "Formato requerido: YYYY-MM", snap.PeriodError)
	assert.False(t, snap.Running)
}

func TestRunBilling_PeriodoVacio(t *testing.T) {
	s := &gasStub{}
	o := nuevoOrquestador(s)

	require.NoError(t, o.RunBilling(context.Background(), "   "))
	assert.Equal(t, "El período es obligatorio", o.Snapshot().PeriodError)
	assert.Zero(t, s.runCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Éxito parcial
// ──────────────────────────────────────────────────────────────────────────────

// El recuento de creadas y la lista de errores del mismo resultado se
// presentan juntos, con el detalle plegado, y la lista de facturas se recarga
// exactamente una vez con los últimos filtros.
func TestRunBilling_ExitoParcial(t *testing.T) {
	s := &gasStub{
		runResult: entity.BillingResult{
			Period:          "2026-01",
			InvoicesCreated: 3,
			Errors:          []string{"CUPS ES0021X: missing tariff"},
		},
	}
	o := nuevoOrquestador(s)

	// Filtros previos del usuario: deben conservarse en la recarga.
	require.NoError(t, o.LoadInvoices(context.Background(), "ES0021X", "2026-01"))
	listasAntes := s.listCalls

	require.NoError(t, o.RunBilling(context.Background(), "2026-01"))

	snap := o.Snapshot()
	require.NotNil(t, snap.Result)
	assert.Equal(t, 3, snap.Result.InvoicesCreated)
	assert.Equal(t, []string{"CUPS ES0021X: missing tariff"}, snap.Result.Errors,
		"los errores por CUPS acompañan al recuento de creadas")
	assert.False(t, snap.ResultOpen, "el detalle de errores empieza plegado")
	assert.Equal(t, "Facturación ejecutada: 3 factura(s) creadas", snap.Notice)
	assert.Empty(t, snap.PeriodError)

	assert.Equal(t, listasAntes+1, s.listCalls, "exactamente una recarga tras la ejecución")
	assert.Equal(t, "ES0021X", s.lastCups)
	assert.Equal(t, "2026-01", s.lastPeriod)
}

func TestRunBilling_FalloDejaErrorSinRecargar(t *testing.T) {
	s := &gasStub{runErr: assert.AnError}
	o := nuevoOrquestador(s)

	err := o.RunBilling(context.Background(), "2026-01")
	require.Error(t, err)

	snap := o.Snapshot()
	assert.False(t, snap.Running)
	assert.NotEmpty(t, snap.Error)
	assert.Nil(t, snap.Result)
	assert.Zero(t, s.listCalls, "un fallo de ejecución no dispara recarga")
}

// ──────────────────────────────────────────────────────────────────────────────
// Exclusión mutua Idle ⇄ Running
// ──────────────────────────────────────────────────────────────────────────────

func TestRunBilling_RechazaEjecucionConcurrente(t *testing.T) {
	s := &gasStub{
		runStarted: make(chan struct{}),
		runRelease: make(chan struct{}),
		runResult:  entity.BillingResult{Period: "2026-01"},
	}
	o := nuevoOrquestador(s)

	done := make(chan error, 1)
	go func() { done <- o.RunBilling(context.Background(), "2026-01") }()
	<-s.runStarted

	assert.True(t, o.Snapshot().Running)
	err := o.RunBilling(context.Background(), "2026-02")
	assert.ErrorIs(t, err, billing.ErrRunInProgress,
		"una segunda ejecución mientras hay otra en curso debe rechazarse")

	close(s.runRelease)
	require.NoError(t, <-done)

	assert.False(t, o.Snapshot().Running)
	assert.Equal(t, 1, s.runCalls, "la ejecución rechazada no llegó al servicio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resultado: plegado, descarte y destrucción por nueva ejecución
// ──────────────────────────────────────────────────────────────────────────────

func TestResultado_ToggleYDismiss(t *testing.T) {
	s := &gasStub{runResult: entity.BillingResult{Period: "2026-01", InvoicesCreated: 1}}
	o := nuevoOrquestador(s)
	require.NoError(t, o.RunBilling(context.Background(), "2026-01"))

	o.ToggleResult()
	assert.True(t, o.Snapshot().ResultOpen)
	o.ToggleResult()
	assert.False(t, o.Snapshot().ResultOpen)

	o.DismissResult()
	assert.Nil(t, o.Snapshot().Result)

	// Con el resultado destruido, el toggle es inerte.
	o.ToggleResult()
	assert.False(t, o.Snapshot().ResultOpen)
}

func TestRunBilling_NuevaEjecucionDestruyeElResultadoAnterior(t *testing.T) {
	s := &gasStub{runResult: entity.BillingResult{Period: "2026-01", InvoicesCreated: 2}}
	o := nuevoOrquestador(s)
	require.NoError(t, o.RunBilling(context.Background(), "2026-01"))
	require.NotNil(t, o.Snapshot().Result)

	// La segunda ejecución falla: el resultado de la primera no debe sobrevivir.
	s.mu.Lock()
	s.runErr = assert.AnError
	s.mu.Unlock()
	require.Error(t, o.RunBilling(context.Background(), "2026-02"))
	assert.Nil(t, o.Snapshot().Result)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadInvoices_FalloConservaLaListaAnterior(t *testing.T) {
	s := &gasStub{invoices: []entity.Invoice{{ID: 1, NumeroFactura: "F-2026-0001"}}}
	o := nuevoOrquestador(s)
	require.NoError(t, o.LoadInvoices(context.Background(), "", ""))

	s.mu.Lock()
	s.listErr = assert.AnError
	s.mu.Unlock()
	require.Error(t, o.LoadInvoices(context.Background(), "", ""))

	snap := o.Snapshot()
	require.Len(t, snap.Invoices, 1, "la lista previa sigue visible junto al error")
	assert.NotEmpty(t, snap.Error)
}

func TestDeleteInvoice_ConfirmarEliminarRecargar(t *testing.T) {
	s := &gasStub{invoices: []entity.Invoice{{ID: 5}}}
	o := nuevoOrquestador(s)
	require.NoError(t, o.LoadInvoices(context.Background(), "ES0021X", ""))
	listasAntes := s.listCalls

	require.NoError(t, o.DeleteInvoice(context.Background(), 5))

	assert.Equal(t, 1, s.deleteCalls)
	assert.Equal(t, listasAntes+1, s.listCalls, "recarga tras el borrado")
	assert.Equal(t, "ES0021X", s.lastCups, "la recarga conserva los filtros")
	assert.Equal(t, "Factura eliminada", o.Snapshot().Notice)
}

func TestDeleteInvoice_ConfirmacionDeclinada(t *testing.T) {
	s := &gasStub{}
	declinar := func(context.Context, string) bool { return false }
	o := billing.NewOrchestrator(s, nil, declinar, logger.Nop())

	require.NoError(t, o.DeleteInvoice(context.Background(), 5))
	assert.Zero(t, s.deleteCalls, "declinar no emite la llamada de borrado")
	assert.Zero(t, s.listCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación a PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestExportPDF_NombreYEntregaAlExportador(t *testing.T) {
	s := &gasStub{}
	var entregas []string
	exporter := func(url, filename string) {
		entregas = append(entregas, url+" → "+filename)
	}
	o := billing.NewOrchestrator(s, exporter, resource.AcceptAll, logger.Nop())

	url, filename := o.ExportPDF(42, "F-2026-0042")

	assert.Equal(t, "http://gas.example/api/gas/invoices/42/pdf", url)
	assert.Equal(t, "factura-F-2026-0042.pdf", filename,
		"el artefacto se nombra por número de factura, no por id")
	require.Len(t, entregas, 1, "el exportador inyectado recibe exactamente una entrega")
}

func TestExportPDF_SinExportadorNoFalla(t *testing.T) {
	o := nuevoOrquestador(&gasStub{})
	url, filename := o.ExportPDF(7, "F-2026-0007")
	assert.NotEmpty(t, url)
	assert.Equal(t, "factura-F-2026-0007.pdf", filename)
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceDetail(t *testing.T) {
	o := nuevoOrquestador(&gasStub{})
	inv, err := o.InvoiceDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "F-2026-0001", inv.NumeroFactura)
}
