package domain

import "time"

// TipoMovimiento clasifica un movimiento del historial.
type TipoMovimiento string

const (
	MovimientoAlta        TipoMovimiento = "alta"
	MovimientoCambio      TipoMovimiento = "cambio"
	MovimientoReubicacion TipoMovimiento = "reubicacion"
	MovimientoBaja        TipoMovimiento = "baja"
)

// Movimiento es un registro de auditoría, de solo inserción (append-only):
// este subsistema nunca lo actualiza ni lo borra. Es un registro de apoyo,
// no la fuente de verdad — su ausencia no invalida el estado del Ejemplar.
type Movimiento struct {
	ID              string         `json:"id"`
	EjemplarID      string         `json:"ejemplar_id"`
	Tipo            TipoMovimiento `json:"tipo"`
	UsuarioID       *string        `json:"usuario_id"`
	FechaMovimiento time.Time      `json:"fecha_movimiento"`
	EstadoFisico    *EstadoFisico  `json:"estado_fisico"`
	Descripcion     *string        `json:"descripcion"`
	AulaID          *int64         `json:"aula_id"`
	EmpleadoID      *string        `json:"empleado_id"`
}

// MovimientoFeedItem es una fila del feed de movimientos con las etiquetas
// legibles ya resueltas (producto, aula, empleado) para la tabla de la UI.
type MovimientoFeedItem struct {
	ID              string         `json:"id"`
	Tipo            TipoMovimiento `json:"tipo"`
	FechaMovimiento time.Time      `json:"fecha_movimiento"`
	EstadoFisico    *EstadoFisico  `json:"estado_fisico"`
	Descripcion     *string        `json:"descripcion"`
	NumInventario   *string        `json:"num_inventario"`
	Serie           *string        `json:"serie"`
	Producto        string         `json:"producto"`
	Aula            *string        `json:"aula"`
	Empleado        *string        `json:"empleado"`
}

// MovimientoFiltro son los parámetros de búsqueda y paginación del feed.
type MovimientoFiltro struct {
	Q     string
	Tipo  string // "" | alta | cambio | reubicacion | baja
	Desde string // 'YYYY-MM-DD' inclusivo
	Hasta string // 'YYYY-MM-DD' inclusivo
	Page  int
	Limit int
}

// MovimientoPagina es la respuesta paginada del feed.
type MovimientoPagina struct {
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int64                `json:"total"`
	Items []MovimientoFeedItem `json:"items"`
}
