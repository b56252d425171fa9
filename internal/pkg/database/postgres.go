package database

import (
	"database/sql"
	"fmt"
	"time"

	// Driver pq para PostgreSQL; se registra vía side-effect.
	_ "github.com/lib/pq"
)

// NewPostgresDB inicializa y configura el pool de conexiones con PostgreSQL.
// Retorna la conexión *sql.DB lista para usar.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {

	// 1. Abrir la conexión (todavía sin usar el pool)
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falla al abrir la conexión con la BD: %w", err)
	}

	// 2. Probar la conexión de inmediato.
	// Garantiza que las credenciales y el servidor son correctos antes de
	// aceptar tráfico.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falla en el ping inicial a la BD: %w", err)
	}

	// 3. Configuración del connection pool.
	// MaxOpenConns debe ajustarse al límite del servidor y al tráfico
	// esperado; las operaciones masivas emiten varias consultas secuenciales
	// (búsqueda, mutación, registro) dentro de una misma petición.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
