package gasapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naturgy/gas-console/internal/domain/entity"
	"github.com/naturgy/gas-console/internal/infrastructure/gasapi"
	"github.com/naturgy/gas-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newClient(t *testing.T, handler http.HandlerFunc) *gasapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gasapi.New(srv.URL+"/api/gas", 5*time.Second, logger.Nop())
}

func asError(t *testing.T, err error) *gasapi.Error {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*gasapi.Error)
	require.True(t, ok, "todos los fallos del transporte deben ser *gasapi.Error")
	return apiErr
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

// Un 404 produce siempre el mensaje fijo, ignore lo que ignore el cuerpo.
func Test404_MensajeFijo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"este texto no debe salir"}`))
	})

	_, err := c.GetInvoice(context.Background(), 999)
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindNotFound, apiErr.Kind)
	assert.Equal(t, "Recurso no encontrado (404)", apiErr.Message,
		"el 404 nunca usa el texto del servidor")
}

// Un 5xx produce el mensaje genérico; el texto crudo del servidor no se filtra.
func Test500_MensajeGenericoSinFiltrarDetalles(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"NullPointerException en BillingService.java:42"}`))
	})

	_, err := c.ListTariffs(context.Background())
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindServer, apiErr.Kind)
	assert.Equal(t, "Error interno del servidor. Inténtelo de nuevo más tarde.", apiErr.Message)
	assert.NotContains(t, apiErr.Message, "NullPointerException")
}

// Un 400 con message estructurado usa el texto del servidor literal.
func Test400_UsaMensajeDelServidor(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"CUPS duplicado"}`))
	})

	_, err := c.CreateSupplyPoint(context.Background(), entity.SupplyPoint{CUPS: "ES0021X"})
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindHTTP, apiErr.Kind)
	assert.Equal(t, "CUPS duplicado", apiErr.Message)
}

// Prioridad message > error > detail al leer el cuerpo de error.
func TestPrioridadDeCamposDeError(t *testing.T) {
	casos := []struct {
		nombre string
		body   string
		want   string
	}{
		{"message gana a error y detail", `{"message":"m","error":"e","detail":"d"}`, "m"},
		{"error gana a detail", `{"error":"e","detail":"d"}`, "e"},
		{"detail en solitario", `{"detail":"d"}`, "d"},
		{"message vacío cae al siguiente", `{"message":"  ","error":"e"}`, "e"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			})
			_, err := c.ListTaxes(context.Background())
			assert.Equal(t, tc.want, asError(t, err).Message)
		})
	}
}

// Un cuerpo de error que no parsea degrada en silencio a "Error <status>".
func TestCuerpoNoParseableDegradaAlCodigo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("<html>esto no es JSON</html>"))
	})

	_, err := c.ListConversionFactors(context.Background())
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindHTTP, apiErr.Kind)
	assert.Equal(t, "Error 418", apiErr.Message)
}

// Un objeto de error sin ninguno de los tres campos también degrada al código.
func TestObjetoSinCamposConocidos(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"cause":"algo"}`))
	})

	_, err := c.ListReadings(context.Background(), "")
	assert.Equal(t, "Error 422", asError(t, err).Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas correctas
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_DecodificaLista(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/gas/supply-points", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"), "cada llamada lleva id de correlación")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cups":"ES0021X","zona":"NORTE","tarifa":"RL.1","estado":"ACTIVO"}]`))
	})

	sps, err := c.ListSupplyPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, sps, 1)
	assert.Equal(t, "ES0021X", sps[0].CUPS)
	assert.Equal(t, entity.EstadoActivo, sps[0].Estado)
}

func TestDelete_204SinCuerpo(t *testing.T) {
	var metodo, ruta string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		metodo, ruta = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteReading(context.Background(), "ES0021X", "2026-02-25")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, metodo)
	assert.Equal(t, "/api/gas/readings/ES0021X/2026-02-25", ruta)
}

// Un 2xx cuyo cuerpo no decodifica como el tipo esperado es MALFORMED.
func TestRespuesta2xxMalformada(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esto": "no es una lista"}`))
	})

	_, err := c.ListTariffs(context.Background())
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindMalformed, apiErr.Kind)
	assert.Equal(t, gasapi.MsgMalformed, apiErr.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Timeout y URLs
// ──────────────────────────────────────────────────────────────────────────────

func TestTimeout_SeMapeaAKindTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	c := gasapi.New(srv.URL, 20*time.Millisecond, logger.Nop())

	_, err := c.ListSupplyPoints(context.Background())
	apiErr := asError(t, err)
	assert.Equal(t, gasapi.KindTimeout, apiErr.Kind)
	assert.Equal(t, gasapi.MsgTimeout, apiErr.Message)
}

func TestRunBilling_PeriodoComoQueryParam(t *testing.T) {
	var consulta string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		consulta = r.URL.RawQuery
		w.Write([]byte(`{"period":"2026-01","invoicesCreated":3,"errors":[]}`))
	})

	res, err := c.RunBilling(context.Background(), "2026-01")
	require.NoError(t, err)
	assert.Equal(t, "period=2026-01", consulta)
	assert.Equal(t, 3, res.InvoicesCreated)
}

func TestListInvoices_FiltrosAND(t *testing.T) {
	var consulta string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		consulta = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	_, err := c.ListInvoices(context.Background(), "ES0021X", "2026-01")
	require.NoError(t, err)
	assert.Equal(t, "cups=ES0021X&period=2026-01", consulta)
}

func TestInvoicePDFURL_Determinista(t *testing.T) {
	c := gasapi.New("http://gas.example/api/gas/", time.Second, logger.Nop())
	assert.Equal(t, "http://gas.example/api/gas/invoices/42/pdf", c.InvoicePDFURL(42))
}

func TestCUPSConCaracteresEspeciales_SeEscapaEnLaRuta(t *testing.T) {
	var ruta string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		ruta = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteSupplyPoint(context.Background(), "ES 0021/X")
	require.NoError(t, err)
	assert.Equal(t, "/api/gas/supply-points/ES%200021%2FX", ruta)
}
