package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/naturgy/gas-console/internal/domain/entity"
)

// SupplyPoint valida un punto de suministro antes de crear o actualizar.
func SupplyPoint(sp entity.SupplyPoint) Errors {
	errs := Errors{}
	if strings.TrimSpace(sp.CUPS) == "" {
		errs["cups"] = "CUPS es obligatorio"
	}
	if strings.TrimSpace(sp.Zona) == "" {
		errs["zona"] = "Zona es obligatoria"
	}
	if strings.TrimSpace(sp.Tarifa) == "" {
		errs["tarifa"] = "Tarifa es obligatoria"
	}
	if sp.Estado != entity.EstadoActivo && sp.Estado != entity.EstadoInactivo {
		errs["estado"] = "Estado debe ser ACTIVO o INACTIVO"
	}
	return errs
}

// GasReading valida una lectura de contador.
// El orden de las reglas de fecha importa: primero formato, después
// existencia en el calendario.
func GasReading(r entity.GasReading) Errors {
	errs := Errors{}
	if strings.TrimSpace(r.CUPS) == "" {
		errs["cups"] = "CUPS es obligatorio (no puede estar vacío)"
	}
	if strings.TrimSpace(r.Fecha) == "" {
		errs["fecha"] = "Fecha es obligatoria"
	} else if !dateRe.MatchString(r.Fecha) {
		errs["fecha"] = "Fecha debe estar en formato YYYY-MM-DD (ej: 2026-02-25)"
	} else if !ValidDate(r.Fecha) {
		errs["fecha"] = "Fecha no es válida"
	}
	if r.LecturaM3.IsNegative() {
		errs["lecturaM3"] = "Lectura m³ debe ser un número >= 0"
	}
	if r.Tipo != entity.TipoReal && r.Tipo != entity.TipoEstimada {
		errs["tipo"] = "Tipo debe ser REAL o ESTIMADA"
	}
	return errs
}

// ReadingComplete indica si el formulario de lectura tiene todos los campos
// obligatorios rellenos (habilita el botón de guardar; no sustituye a
// GasReading).
func ReadingComplete(r entity.GasReading) bool {
	return strings.TrimSpace(r.CUPS) != "" &&
		strings.TrimSpace(r.Fecha) != "" &&
		strings.TrimSpace(r.Tipo) != ""
}

// GasTariff valida una tarifa.
func GasTariff(t entity.GasTariff) Errors {
	errs := Errors{}
	if strings.TrimSpace(t.Tarifa) == "" {
		errs["tarifa"] = "Tarifa es obligatoria"
	}
	if t.FijoMesEur.IsNegative() {
		errs["fijoMesEur"] = "Debe ser >= 0"
	}
	if t.VariableEurKwh.IsNegative() {
		errs["variableEurKwh"] = "Debe ser >= 0"
	}
	if strings.TrimSpace(t.VigenciaDesde) == "" {
		errs["vigenciaDesde"] = "Fecha de vigencia es obligatoria"
	} else if !ValidDate(t.VigenciaDesde) {
		errs["vigenciaDesde"] = "Formato YYYY-MM-DD"
	}
	return errs
}

// ConversionFactor valida un factor de conversión.
func ConversionFactor(cf entity.ConversionFactor) Errors {
	errs := Errors{}
	if strings.TrimSpace(cf.Zona) == "" {
		errs["zona"] = "Zona es obligatoria"
	}
	if strings.TrimSpace(cf.Mes) == "" {
		errs["mes"] = "Mes es obligatorio"
	} else if !ValidMonth(cf.Mes) {
		errs["mes"] = "Formato YYYY-MM"
	}
	if !cf.CoefConv.IsPositive() {
		errs["coefConv"] = "Debe ser > 0"
	}
	if !cf.PcsKwhM3.IsPositive() {
		errs["pcsKwhM3"] = "Debe ser > 0"
	}
	return errs
}

var one = decimal.NewFromInt(1)

// TaxConfig valida una configuración de impuesto.
// taxRate es una fracción en [0,1]; 0.21 significa 21%.
func TaxConfig(tc entity.TaxConfig) Errors {
	errs := Errors{}
	if strings.TrimSpace(tc.TaxCode) == "" {
		errs["taxCode"] = "taxCode es obligatorio"
	}
	if tc.TaxRate.IsNegative() || tc.TaxRate.GreaterThan(one) {
		errs["taxRate"] = "Debe estar entre 0 y 1"
	}
	if strings.TrimSpace(tc.VigenciaDesde) == "" {
		errs["vigenciaDesde"] = "Fecha de vigencia es obligatoria"
	} else if !ValidDate(tc.VigenciaDesde) {
		errs["vigenciaDesde"] = "Formato YYYY-MM-DD"
	}
	return errs
}
