package domain

import "time"

// EstadoFisico es la condición física de un ejemplar.
type EstadoFisico string

const (
	EstadoBueno        EstadoFisico = "bueno"
	EstadoRegular      EstadoFisico = "regular"
	EstadoMalo         EstadoFisico = "malo"
	EstadoInutilizable EstadoFisico = "inutilizable"
)

// EstadoUI es la opción de estado que expone la interfaz al usuario final.
// Incluye los cuatro estados físicos más "baja": la UI ofrece UNA sola
// elección combinada aunque por debajo cambien dos campos (estado_fisico y
// estatus). Esa conflación es un contrato heredado y deliberado, no un bug.
type EstadoUI string

const (
	EstadoUIBueno        EstadoUI = "bueno"
	EstadoUIRegular      EstadoUI = "regular"
	EstadoUIMalo         EstadoUI = "malo"
	EstadoUIInutilizable EstadoUI = "inutilizable"
	EstadoUIBaja         EstadoUI = "baja"
)

// Valido reporta si el valor recibido por la API es una opción conocida.
func (e EstadoUI) Valido() bool {
	switch e {
	case EstadoUIBueno, EstadoUIRegular, EstadoUIMalo, EstadoUIInutilizable, EstadoUIBaja:
		return true
	}
	return false
}

// Estatus es el estado de ciclo de vida de un ejemplar.
type Estatus string

const (
	EstatusActivo   Estatus = "activo"
	EstatusInactivo Estatus = "inactivo"
	EstatusBaja     Estatus = "baja"
)

// Ejemplar representa una unidad física rastreable del inventario
// (la Entidad central del dominio).
//
// Invariante: num_inventario, cuando no es null, es único en todo el
// inventario — y la unicidad se evalúa sobre la forma NORMALIZADA
// (NumInventarioNorm), porque la forma cruda tolera variaciones de
// puntuación y mayúsculas.
type Ejemplar struct {
	ID                string       `json:"id"`
	ProductoID        string       `json:"producto_id"`
	NumInventario     *string      `json:"num_inventario"`
	NumInventarioNorm string       `json:"-"` // columna generada en la BD; solo para comparación
	Serie             *string      `json:"serie"`
	EstadoFisico      EstadoFisico `json:"estado_fisico"`
	Estatus           Estatus      `json:"estatus"`
	Descripcion       *string      `json:"descripcion"`
	AulaID            *int64       `json:"aula_id"`
	EmpleadoID        *string      `json:"empleado_id"`
	FechaRegistro     time.Time    `json:"fecha_registro"`
	DeletedAt         *time.Time   `json:"deleted_at,omitempty"`
}

// EjemplarRef es la proyección mínima que devuelve la búsqueda por códigos:
// el id para mutar y la clave normalizada para calcular los no encontrados.
type EjemplarRef struct {
	ID                string
	NumInventarioNorm string
}

// DestinoReubicacion son los campos destino de una reubicación masiva.
// Cada campo conserva la distinción de tres estados: ausente = dejar el
// valor actual, null = limpiar a "sin asignar", valor = asignar.
type DestinoReubicacion struct {
	AulaID     OptionalInt64
	EmpleadoID OptionalString
}

// Vacio reporta si el destino no define ningún cambio.
func (d DestinoReubicacion) Vacio() bool {
	return !d.AulaID.Present && !d.EmpleadoID.Present
}
