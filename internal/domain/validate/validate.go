// Package validate contiene las validaciones locales de formularios de la
// consola. Son funciones puras: candidato → mapa campo→mensaje. Un mapa vacío
// significa válido. Nunca tocan la red y se ejecutan siempre antes de
// cualquier llamada mutadora.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Errors mapa de violaciones por campo. Vacío = candidato válido.
type Errors map[string]string

// Valid indica si no hay ninguna violación.
func (e Errors) Valid() bool { return len(e) == 0 }

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ValidDate comprueba formato YYYY-MM-DD y que la fecha exista en el
// calendario (interpretación UTC).
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	return err == nil
}

// ValidMonth comprueba formato YYYY-MM y que el mes esté en 01..12.
func ValidMonth(s string) bool {
	if !monthRe.MatchString(s) {
		return false
	}
	m, err := strconv.Atoi(s[5:])
	return err == nil && m >= 1 && m <= 12
}

// Period valida el período de una ejecución de facturación.
// Devuelve el mensaje de error, o "" si el período es válido.
func Period(period string) string {
	if strings.TrimSpace(period) == "" {
		return "El período es obligatorio"
	}
	if !ValidMonth(period) {
		return "Formato requerido: YYYY-MM"
	}
	return ""
}
