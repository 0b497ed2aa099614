package entity

import "github.com/shopspring/decimal"

// GasTariff representa una tarifa de gas: término fijo mensual y término
// variable por kWh, con vigencia desde una fecha.
// El id lo asigna el servicio de gas; es nil hasta el primer guardado.
type GasTariff struct {
	ID             *int64          `json:"id,omitempty"`
	Tarifa         string          `json:"tarifa"`
	FijoMesEur     decimal.Decimal `json:"fijoMesEur"`
	VariableEurKwh decimal.Decimal `json:"variableEurKwh"`
	VigenciaDesde  string          `json:"vigenciaDesde"` // YYYY-MM-DD
}
