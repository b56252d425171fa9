package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
)

// TestNormalizeInventario verifica la clave canónica: minúsculas y solo
// alfanuméricos ASCII.
func TestNormalizeInventario(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"INV-001", "inv001"},
		{"inv 001", "inv001"},
		{"  INV_001.A  ", "inv001a"},
		{"PC/2024-07", "pc202407"},
		{"", ""},
		{"---", ""},
		{"ÑÚ-01", "01"}, // los no-ASCII se descartan, no se translitera
	}

	for _, c := range casos {
		assert.Equal(t, c.esperado, domain.NormalizeInventario(c.entrada), "entrada: %q", c.entrada)
	}
}

// TestNormalizeInventario_Idempotente: normalizar dos veces da lo mismo que
// normalizar una vez.
func TestNormalizeInventario_Idempotente(t *testing.T) {
	entradas := []string{"INV-001", "a B c", "x_y.z", "123", "", "Ñ-9"}

	for _, e := range entradas {
		una := domain.NormalizeInventario(e)
		dos := domain.NormalizeInventario(una)
		assert.Equal(t, una, dos, "entrada: %q", e)
	}
}

// TestSplitNumeros verifica los separadores aceptados: coma, salto de
// línea, punto y coma, tabulador, barra vertical y espacio, en cualquier
// combinación.
func TestSplitNumeros(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a\nb\nc", []string{"a", "b", "c"}},
		{"a; b|c\td", []string{"a", "b", "c", "d"}},
		{"a,,b,\n\n,c", []string{"a", "b", "c"}},
		{"  a  ", []string{"a"}},
		{"", []string{}},
		{", ;\n", []string{}},
	}

	for _, c := range casos {
		assert.Equal(t, c.esperado, domain.SplitNumeros(c.entrada), "entrada: %q", c.entrada)
	}
}

// TestSplitNumeros_NoDeduplica: el parseo conserva duplicados; la
// deduplicación es responsabilidad de la conciliación.
func TestSplitNumeros_NoDeduplica(t *testing.T) {
	tokens := domain.SplitNumeros("a, a, A-")
	assert.Equal(t, []string{"a", "a", "A-"}, tokens)
}
