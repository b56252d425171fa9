package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
)

// TestOptionalInt64_TresEstados verifica que la decodificación distingue
// clave ausente, null explícito y valor concreto.
func TestOptionalInt64_TresEstados(t *testing.T) {
	type payload struct {
		AulaID domain.OptionalInt64 `json:"aula_id"`
	}

	var ausente payload
	assert.NoError(t, json.Unmarshal([]byte(`{}`), &ausente))
	assert.False(t, ausente.AulaID.Present)

	var nulo payload
	assert.NoError(t, json.Unmarshal([]byte(`{"aula_id": null}`), &nulo))
	assert.True(t, nulo.AulaID.Present)
	assert.True(t, nulo.AulaID.Null)

	var concreto payload
	assert.NoError(t, json.Unmarshal([]byte(`{"aula_id": 7}`), &concreto))
	assert.True(t, concreto.AulaID.Present)
	assert.False(t, concreto.AulaID.Null)
	assert.Equal(t, int64(7), concreto.AulaID.Value)
}

// TestOptionalString_TresEstados hace lo mismo para el campo de empleado.
func TestOptionalString_TresEstados(t *testing.T) {
	type payload struct {
		EmpleadoID domain.OptionalString `json:"empleado_id"`
	}

	var ausente payload
	assert.NoError(t, json.Unmarshal([]byte(`{}`), &ausente))
	assert.False(t, ausente.EmpleadoID.Present)

	var nulo payload
	assert.NoError(t, json.Unmarshal([]byte(`{"empleado_id": null}`), &nulo))
	assert.True(t, nulo.EmpleadoID.Present)
	assert.True(t, nulo.EmpleadoID.Null)

	var concreto payload
	assert.NoError(t, json.Unmarshal([]byte(`{"empleado_id": "abc-123"}`), &concreto))
	assert.True(t, concreto.EmpleadoID.Present)
	assert.Equal(t, "abc-123", concreto.EmpleadoID.Value)
}

// TestDestinoReubicacion_Vacio: un destino sin campo presente no es un
// movimiento válido; null explícito sí lo es (limpiar la asignación).
func TestDestinoReubicacion_Vacio(t *testing.T) {
	assert.True(t, domain.DestinoReubicacion{}.Vacio())

	conNull := domain.DestinoReubicacion{AulaID: domain.Int64Null()}
	assert.False(t, conNull.Vacio())

	conValor := domain.DestinoReubicacion{EmpleadoID: domain.StringSet("e-1")}
	assert.False(t, conValor.Vacio())
}
