package domain

// Payloads y resultados de las operaciones masivas sobre ejemplares.
// Las cuatro operaciones comparten el mismo contrato de entrada (grupo +
// blob de números) y de salida (afectados + notFound), que es lo que
// permite colapsar las rutas casi duplicadas del sistema anterior en un
// único motor de conciliación.

// CambioEstadoMasivoRequest es el payload de PATCH /v1/ejemplares/estado-bulk.
type CambioEstadoMasivoRequest struct {
	ProductoID  string        `json:"producto_id"`
	AulaID      OptionalInt64 `json:"aula_id"`
	Numeros     string        `json:"numeros"`
	Estado      EstadoUI      `json:"estado"`
	Descripcion *string       `json:"descripcion"`

	// UsuarioID viene de las claims del token, nunca del payload.
	UsuarioID *string `json:"-"`
}

// ReubicacionMasivaRequest es el payload de POST /v1/ejemplares/move-bulk.
// Los campos from_* delimitan el origen (tres estados); los to_* definen el
// destino: ausente = no tocar, null = limpiar, valor = asignar.
type ReubicacionMasivaRequest struct {
	ProductoID     string         `json:"producto_id"`
	FromAulaID     OptionalInt64  `json:"from_aula_id"`
	FromEmpleadoID OptionalString `json:"from_empleado_id"`
	ToAulaID       OptionalInt64  `json:"to_aula_id"`
	ToEmpleadoID   OptionalString `json:"to_empleado_id"`
	Numeros        string         `json:"numeros"`
	Descripcion    *string        `json:"descripcion"`

	UsuarioID *string `json:"-"`
}

// BajaMasivaRequest es el payload de POST /v1/ejemplares/remove-bulk.
// Definitivo=true borra físicamente las filas; por defecto la baja es
// lógica (deleted_at + estatus=baja) y la fila queda consultable como
// histórico.
type BajaMasivaRequest struct {
	ProductoID  string        `json:"producto_id"`
	AulaID      OptionalInt64 `json:"aula_id"`
	Numeros     string        `json:"numeros"`
	Definitivo  bool          `json:"definitivo"`
	Descripcion *string       `json:"descripcion"`

	UsuarioID *string `json:"-"`
}

// AltaMasivaRequest es el payload de POST /v1/ejemplares/add (alta por
// lotes). Si viene Numeros, se crea un ejemplar por número; si no, se crean
// Cantidad ejemplares sin número de inventario.
type AltaMasivaRequest struct {
	ProductoID   string        `json:"producto_id"`
	Cantidad     int           `json:"cantidad"`
	Numeros      string        `json:"numeros"`
	Serie        *string       `json:"serie"`
	EstadoFisico EstadoFisico  `json:"estado_fisico"`
	Estatus      Estatus       `json:"estatus"`
	AulaID       OptionalInt64 `json:"aula_id"`
	EmpleadoID   *string       `json:"empleado_id"`
	Descripcion  *string       `json:"descripcion"`

	UsuarioID *string `json:"-"`
}

// ResultadoMasivo es la respuesta uniforme de las mutaciones masivas.
// Afectados es el número de filas realmente modificadas por el almacén (no
// el solicitado); NotFound contiene los tokens CRUDOS que no resolvieron,
// en orden de entrada, deduplicados por clave normalizada. Un resultado
// parcial (algunos notFound, algunos afectados) NO es un error.
type ResultadoMasivo struct {
	Afectados int64    `json:"afectados"`
	NotFound  []string `json:"notFound"`
}

// ResultadoAlta es la respuesta del alta por lotes.
type ResultadoAlta struct {
	Insertados int64 `json:"insertados"`
}
