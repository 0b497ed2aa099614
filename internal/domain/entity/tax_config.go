package entity

import "github.com/shopspring/decimal"

// TaxConfig configuración de un impuesto aplicable a la facturación.
// taxRate se expresa como fracción en [0,1], no como porcentaje.
type TaxConfig struct {
	ID            *int64          `json:"id,omitempty"`
	TaxCode       string          `json:"taxCode"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	VigenciaDesde string          `json:"vigenciaDesde"` // YYYY-MM-DD
}
