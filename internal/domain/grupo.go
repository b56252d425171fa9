package domain

// GrupoScope delimita una operación masiva a un grupo (producto × aula).
//
// ProductoID es obligatorio. AulaID y EmpleadoID son filtros de tres
// estados: ausentes no filtran en absoluto (la operación cruza todas las
// aulas / todos los responsables), null explícito filtra solo los
// ejemplares SIN aula / SIN responsable, y un valor concreto filtra por ese
// valor. Colapsar "ausente" y "null" aquí es un bug de corrección: o
// excluiría coincidencias válidas o estrecharía en silencio una operación
// que debía cruzar aulas.
type GrupoScope struct {
	ProductoID string
	AulaID     OptionalInt64
	EmpleadoID OptionalString
}

// GrupoResumen es el modelo de lectura agregado por grupo (producto × aula).
// La cardinalidad y el conteo de dañados se calculan, no se almacenan.
type GrupoResumen struct {
	ProductoID string  `json:"producto_id"`
	Producto   string  `json:"producto"`
	Modelo     *string `json:"modelo"`
	AulaID     *int64  `json:"aula_id"`
	Aula       string  `json:"aula"`
	Cantidad   int64   `json:"cantidad"`
	Danados    int64   `json:"danados"`
}
