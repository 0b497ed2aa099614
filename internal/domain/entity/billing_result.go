package entity

// BillingResult resultado de una ejecución de facturación.
// Es una estructura de éxito parcial: invoicesCreated > 0 no implica que
// errors esté vacío, ni al revés; ambos se muestran a la vez.
// No se persiste: vive en memoria mientras el panel de resultado está visible.
type BillingResult struct {
	Period          string   `json:"period"`
	InvoicesCreated int      `json:"invoicesCreated"`
	Errors          []string `json:"errors"`
}

// ErrorCount número de errores del resultado (para el chip del panel).
func (r BillingResult) ErrorCount() int {
	return len(r.Errors)
}
