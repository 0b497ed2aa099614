package http

// ErrorResponse cuerpo de error de la API de la consola.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
