package domain

import "encoding/json"

// Los campos opcionales de las operaciones masivas (aula, empleado) tienen
// TRES estados y no dos: ausente (no tocar / no filtrar), null explícito
// (limpiar / filtrar por "sin asignar") y valor concreto. Un puntero simple
// colapsa "ausente" con "null", que es exactamente el bug que queremos
// evitar, así que decodificamos con una bandera explícita por campo.
//
// Con encoding/json, UnmarshalJSON solo se invoca si la clave está presente
// en el payload; el valor cero (Present=false) representa "ausente".

// OptionalInt64 es un int64 de tres estados (ausente | null | valor).
// Se usa para aula_id.
type OptionalInt64 struct {
	Present bool
	Null    bool
	Value   int64
}

// Int64Set construye el estado "valor concreto". Útil en tests y servicios.
func Int64Set(v int64) OptionalInt64 {
	return OptionalInt64{Present: true, Value: v}
}

// Int64Null construye el estado "null explícito".
func Int64Null() OptionalInt64 {
	return OptionalInt64{Present: true, Null: true}
}

// UnmarshalJSON implementa la decodificación de tres estados.
func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON serializa null para los estados null/ausente y el valor en
// caso contrario. Solo se usa en contextos de lectura (feeds, logs).
func (o OptionalInt64) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptionalString es un string de tres estados (ausente | null | valor).
// Se usa para empleado_id (UUID en texto).
type OptionalString struct {
	Present bool
	Null    bool
	Value   string
}

// StringSet construye el estado "valor concreto".
func StringSet(v string) OptionalString {
	return OptionalString{Present: true, Value: v}
}

// StringNull construye el estado "null explícito".
func StringNull() OptionalString {
	return OptionalString{Present: true, Null: true}
}

// UnmarshalJSON implementa la decodificación de tres estados.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON serializa null para los estados null/ausente.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
