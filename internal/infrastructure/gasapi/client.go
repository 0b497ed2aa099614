// Package gasapi es el punto único de salida hacia el servicio REST de gas.
// Normaliza los fallos HTTP al contrato de errores de la consola (ver
// errors.go). Sin reintentos y sin caché: cada llamada es una petición nueva.
package gasapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naturgy/gas-console/pkg/logger"
)

// Client cliente HTTP tipado del servicio de gas.
// Usa net/http de la stdlib con un timeout configurable; los errores de
// deadline se mapean a KindTimeout en lugar de dejar la operación colgada.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New construye el cliente. baseURL es el prefijo fijo de la API
// (ej: http://localhost:8081/api/gas); se normaliza sin barra final.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL devuelve el prefijo de la API (para construir la URL del PDF).
func (c *Client) BaseURL() string { return c.baseURL }

// Get ejecuta GET path y decodifica el cuerpo como T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return do[T](ctx, c, http.MethodGet, path, nil)
}

// Post ejecuta POST path con body JSON (nil = sin cuerpo) y decodifica como T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPost, path, body)
}

// Put ejecuta PUT path con body JSON y decodifica como T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return do[T](ctx, c, http.MethodPut, path, body)
}

// Delete ejecuta DELETE path. El servicio responde 204 sin cuerpo.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, path, nil)
	return err
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, &Error{Kind: KindMalformed, Message: MsgMalformed}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, &Error{Kind: KindNetwork, Message: MsgNetwork}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		mapped := mapTransportErr(err)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Str("kind", string(mapped.Kind)).
			Err(err).
			Msg("fallo de red contra el servicio de gas")
		return zero, mapped
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al servicio de gas")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		mapped := mapStatus(resp.StatusCode, raw)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Int("status", resp.StatusCode).
			Str("kind", string(mapped.Kind)).
			Msg("respuesta de error del servicio de gas")
		return zero, mapped
	}

	// 204 (y respuestas de borrado sin cuerpo) resuelven al valor cero.
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &Error{Kind: KindMalformed, Status: resp.StatusCode, Message: MsgMalformed}
	}
	return out, nil
}

// mapTransportErr clasifica fallos previos a recibir respuesta HTTP.
func mapTransportErr(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: MsgTimeout}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: MsgTimeout}
	}
	return &Error{Kind: KindNetwork, Message: MsgNetwork}
}
