package entity

import "github.com/shopspring/decimal"

// Tipos de lectura de contador.
const (
	TipoReal     = "REAL"
	TipoEstimada = "ESTIMADA"
)

// GasReading representa una lectura de contador.
// Identidad compuesta (cups, fecha): una lectura por punto y día.
// fecha es una fecha de calendario en formato ISO YYYY-MM-DD.
type GasReading struct {
	CUPS      string          `json:"cups"`
	Fecha     string          `json:"fecha"` // YYYY-MM-DD
	LecturaM3 decimal.Decimal `json:"lecturaM3"`
	Tipo      string          `json:"tipo"` // REAL | ESTIMADA
}
