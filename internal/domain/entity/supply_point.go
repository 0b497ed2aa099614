package entity

// Estados posibles de un punto de suministro.
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// SupplyPoint representa un punto de suministro de gas.
// La clave natural es el CUPS (Código Universal del Punto de Suministro);
// es inmutable una vez creado el registro.
type SupplyPoint struct {
	CUPS   string `json:"cups"`
	Zona   string `json:"zona"`
	Tarifa string `json:"tarifa"`
	Estado string `json:"estado"` // ACTIVO | INACTIVO
}
