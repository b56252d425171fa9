package domain

import "strings"

// NormalizeInventario convierte un número de inventario tecleado por el
// usuario en su clave canónica de comparación: minúsculas y solo letras o
// dígitos ASCII. Es una función total e idempotente — cualquier cadena de
// entrada (incluso vacía) produce una clave, y normalizar dos veces da el
// mismo resultado que normalizar una vez.
//
// Toda comparación de números de inventario en el sistema (búsquedas,
// unicidad, conciliación masiva) debe pasar por ESTA función. Tener una sola
// normalización evita que dos rutas distintas emparejen códigos de forma
// inconsistente.
func NormalizeInventario(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// esSeparador reporta si la runa separa tokens en un blob pegado por el
// usuario. Aceptamos comas, punto y coma, barra vertical, tabs, saltos de
// línea y espacios.
func esSeparador(r rune) bool {
	switch r {
	case ',', ';', '|', '\t', '\n', '\r', ' ':
		return true
	}
	return false
}

// SplitNumeros parte un blob de texto libre ("A1, B2; C3\nD4") en la lista
// ordenada de tokens crudos. No deduplica: la deduplicación, cuando hace
// falta, ocurre sobre la proyección normalizada, conservando el primer token
// crudo visto por clave normalizada para el reporte al usuario.
func SplitNumeros(blob string) []string {
	campos := strings.FieldsFunc(blob, esSeparador)
	tokens := make([]string, 0, len(campos))
	for _, c := range campos {
		c = strings.TrimSpace(c)
		if c != "" {
			tokens = append(tokens, c)
		}
	}
	return tokens
}
