package entity

import "github.com/shopspring/decimal"

// ConversionFactor convierte lecturas volumétricas (m³) a energía (kWh)
// para una zona y un mes de calendario (YYYY-MM, no una fecha completa).
type ConversionFactor struct {
	ID       *int64          `json:"id,omitempty"`
	Zona     string          `json:"zona"`
	Mes      string          `json:"mes"` // YYYY-MM
	CoefConv decimal.Decimal `json:"coefConv"`
	PcsKwhM3 decimal.Decimal `json:"pcsKwhM3"`
}
