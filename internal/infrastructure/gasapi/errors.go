package gasapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind clasifica los fallos del servicio de gas para la capa de aplicación.
type Kind string

const (
	// KindNotFound recurso inexistente (HTTP 404).
	KindNotFound Kind = "NOT_FOUND"
	// KindServer fallo del servidor (HTTP >= 500). Nunca se muestra el texto
	// crudo del servidor para no filtrar detalles internos.
	KindServer Kind = "SERVER"
	// KindHTTP otro 4xx; lleva el mensaje del servidor cuando existe.
	KindHTTP Kind = "HTTP"
	// KindMalformed respuesta 2xx cuyo cuerpo no decodifica como el tipo esperado.
	KindMalformed Kind = "MALFORMED"
	// KindTimeout la llamada superó el timeout configurado.
	KindTimeout Kind = "TIMEOUT"
	// KindNetwork no se pudo completar la conexión con el servicio.
	KindNetwork Kind = "NETWORK"
)

// Mensajes fijos de cara al usuario (castellano, igual que el resto de la consola).
const (
	MsgNotFound  = "Recurso no encontrado (404)"
	MsgServer    = "Error interno del servidor. Inténtelo de nuevo más tarde."
	MsgMalformed = "Respuesta del servidor no válida"
	MsgTimeout   = "Tiempo de espera agotado. Inténtelo de nuevo."
	MsgNetwork   = "No se pudo conectar con el servicio de gas"
	MsgUnknown   = "Error desconocido"
)

// Error fallo normalizado de una llamada al servicio de gas.
// Message siempre es apto para mostrarse tal cual al usuario.
type Error struct {
	Kind    Kind
	Status  int // código HTTP; 0 si el fallo fue antes de recibir respuesta
	Message string
}

func (e *Error) Error() string { return e.Message }

// mapStatus aplica el contrato de mapeo de errores, en orden de prioridad:
//  1. 404 → NotFound con mensaje fijo.
//  2. >= 500 → Server con mensaje genérico fijo.
//  3. resto de no-2xx → se intenta leer message/error/detail del cuerpo (en
//     ese orden); si hay texto no vacío se usa literal, si no "Error <status>".
//
// Un cuerpo que no parsea nunca produce un error secundario: se degrada en
// silencio al mensaje por código de estado.
func mapStatus(status int, body []byte) *Error {
	switch {
	case status == 404:
		return &Error{Kind: KindNotFound, Status: status, Message: MsgNotFound}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: MsgServer}
	}

	e := &Error{Kind: KindHTTP, Status: status, Message: "Error " + strconv.Itoa(status)}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return e
	}
	for _, key := range []string{"message", "error", "detail"} {
		if s, ok := parsed[key].(string); ok && strings.TrimSpace(s) != "" {
			e.Message = s
			return e
		}
	}
	return e
}

// UserMessage devuelve el mensaje mostrable de cualquier error, con un
// fallback cuando no proviene del transporte.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok && e.Message != "" {
		return e.Message
	}
	if fallback != "" {
		return fallback
	}
	return MsgUnknown
}
