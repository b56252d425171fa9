package ejemplarrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	"github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/cache"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
)

// Clave de caché del resumen por grupos. Se invalida en cada mutación
// masiva porque cualquier alta, cambio, reubicación o baja altera los
// agregados (cantidad, dañados).
const resumenCacheKey = "ejemplares:resumen"

// EjemplarRepository implementa el acceso a datos de ejemplares. Contiene
// las conexiones de infraestructura (PostgreSQL y Redis).
type EjemplarRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewEjemplarRepository crea y retorna una nueva instancia del repositorio.
func NewEjemplarRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *EjemplarRepository {
	return &EjemplarRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// condicionesDeScope traduce el GrupoScope a predicados SQL, preservando la
// distinción de tres estados de aula y empleado: ausente no agrega
// predicado, null explícito agrega IS NULL, y un valor agrega la igualdad.
func condicionesDeScope(scope domain.GrupoScope, conds []string, args []interface{}) ([]string, []interface{}) {
	conds = append(conds, fmt.Sprintf("producto_id = $%d", len(args)+1))
	args = append(args, scope.ProductoID)

	if scope.AulaID.Present {
		if scope.AulaID.Null {
			conds = append(conds, "aula_id IS NULL")
		} else {
			conds = append(conds, fmt.Sprintf("aula_id = $%d", len(args)+1))
			args = append(args, scope.AulaID.Value)
		}
	}

	if scope.EmpleadoID.Present {
		if scope.EmpleadoID.Null {
			conds = append(conds, "empleado_id IS NULL")
		} else {
			conds = append(conds, fmt.Sprintf("empleado_id = $%d", len(args)+1))
			args = append(args, scope.EmpleadoID.Value)
		}
	}

	return conds, args
}

// BuscarPorCodigos busca los ejemplares del grupo cuyos números
// normalizados están en el conjunto dado. No filtra por deleted_at: un
// cambio de estado puede reactivar un ejemplar dado de baja lógica.
func (r *EjemplarRepository) BuscarPorCodigos(ctx context.Context, scope domain.GrupoScope, codigosNorm []string) ([]domain.EjemplarRef, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	args := []interface{}{pq.Array(codigosNorm)}
	conds := []string{"num_inventario_norm = ANY($1)"}
	conds, args = condicionesDeScope(scope, conds, args)

	query := `
        SELECT id, num_inventario_norm
        FROM ejemplares
        WHERE ` + strings.Join(conds, " AND ")

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falla al buscar ejemplares por códigos.", err)
		return nil, errors.NewDBError("Falla al buscar ejemplares por códigos", err)
	}
	defer rows.Close()

	var refs []domain.EjemplarRef
	for rows.Next() {
		var ref domain.EjemplarRef
		if err := rows.Scan(&ref.ID, &ref.NumInventarioNorm); err != nil {
			return nil, errors.NewDBError("Falla al leer ejemplar encontrado", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falla al iterar ejemplares encontrados", err)
	}

	r.logger.Debug("Búsqueda por códigos completada.", map[string]interface{}{
		"solicitados": len(codigosNorm),
		"encontrados": len(refs),
	})
	return refs, nil
}

// ActualizarEstadoMasivo aplica el cambio de estado al conjunto de ids ya
// conciliado. El estado de la UI maneja dos campos a la vez: "baja" marca
// estatus=baja y sella deleted_at; cualquier otro estado fija el estado
// físico, reactiva (estatus=activo) y limpia deleted_at. Retorna las filas
// realmente modificadas.
func (r *EjemplarRepository) ActualizarEstadoMasivo(ctx context.Context, ids []string, estado domain.EstadoUI) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var query string
	var args []interface{}

	if estado == domain.EstadoUIBaja {
		query = `
            UPDATE ejemplares
            SET estatus = 'baja', deleted_at = NOW()
            WHERE id = ANY($1::uuid[])`
		args = []interface{}{pq.Array(ids)}
	} else {
		query = `
            UPDATE ejemplares
            SET estado_fisico = $2, estatus = 'activo', deleted_at = NULL
            WHERE id = ANY($1::uuid[])`
		args = []interface{}{pq.Array(ids), string(estado)}
	}

	result, err := r.DB.ExecContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falla al actualizar estado masivo.", err)
		return 0, errors.NewDBError("Falla al actualizar el estado de los ejemplares", err)
	}

	afectados, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falla al contar filas afectadas", err)
	}

	r.invalidarResumen(ctxTimeout)
	return afectados, nil
}

// ReubicarMasivo actualiza aula y/o responsable del conjunto de ids. El
// parche se construye SOLO con los campos presentes: un campo ausente deja
// el valor actual; un campo presente con null lo limpia a "sin asignar".
func (r *EjemplarRepository) ReubicarMasivo(ctx context.Context, ids []string, destino domain.DestinoReubicacion) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	sets := []string{}
	args := []interface{}{pq.Array(ids)}

	if destino.AulaID.Present {
		if destino.AulaID.Null {
			sets = append(sets, "aula_id = NULL")
		} else {
			args = append(args, destino.AulaID.Value)
			sets = append(sets, fmt.Sprintf("aula_id = $%d", len(args)))
		}
	}
	if destino.EmpleadoID.Present {
		if destino.EmpleadoID.Null {
			sets = append(sets, "empleado_id = NULL")
		} else {
			args = append(args, destino.EmpleadoID.Value)
			sets = append(sets, fmt.Sprintf("empleado_id = $%d", len(args)))
		}
	}

	// El servicio ya validó que hay algo que mover; esto es el invariante
	// del repositorio.
	if len(sets) == 0 {
		return 0, errors.NewValidationError("Nada que mover: el destino está vacío.")
	}

	query := "UPDATE ejemplares SET " + strings.Join(sets, ", ") + " WHERE id = ANY($1::uuid[])"

	result, err := r.DB.ExecContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falla al reubicar ejemplares.", err)
		return 0, errors.NewDBError("Falla al reubicar los ejemplares", err)
	}

	afectados, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falla al contar filas afectadas", err)
	}

	r.invalidarResumen(ctxTimeout)
	return afectados, nil
}

// BajaMasiva aplica baja lógica: sella deleted_at y marca estatus=baja. La
// fila queda consultable como histórico.
func (r *EjemplarRepository) BajaMasiva(ctx context.Context, ids []string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE ejemplares
        SET estatus = 'baja', deleted_at = NOW()
        WHERE id = ANY($1::uuid[])`

	result, err := r.DB.ExecContext(ctxTimeout, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Falla al aplicar baja lógica masiva.", err)
		return 0, errors.NewDBError("Falla al dar de baja los ejemplares", err)
	}

	afectados, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falla al contar filas afectadas", err)
	}

	r.invalidarResumen(ctxTimeout)
	return afectados, nil
}

// EliminarMasivo borra físicamente las filas. Solo para la variante
// definitiva del remove masivo; el historial de movimientos de esos
// ejemplares se pierde con ellas.
func (r *EjemplarRepository) EliminarMasivo(ctx context.Context, ids []string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM ejemplares WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		r.logger.Error("Falla al eliminar ejemplares.", err)
		return 0, errors.NewDBError("Falla al eliminar los ejemplares", err)
	}

	afectados, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falla al contar filas afectadas", err)
	}

	r.invalidarResumen(ctxTimeout)
	return afectados, nil
}

// BuscarCodigosExistentes retorna las claves normalizadas del conjunto dado
// que YA están registradas. Lo usa el alta masiva para rechazar duplicados
// antes de insertar.
func (r *EjemplarRepository) BuscarCodigosExistentes(ctx context.Context, codigosNorm []string) ([]string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT num_inventario_norm FROM ejemplares WHERE num_inventario_norm = ANY($1)`,
		pq.Array(codigosNorm))
	if err != nil {
		r.logger.Error("Falla al verificar códigos existentes.", err)
		return nil, errors.NewDBError("Falla al verificar números existentes", err)
	}
	defer rows.Close()

	var existentes []string
	for rows.Next() {
		var norm string
		if err := rows.Scan(&norm); err != nil {
			return nil, errors.NewDBError("Falla al leer código existente", err)
		}
		existentes = append(existentes, norm)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falla al iterar códigos existentes", err)
	}
	return existentes, nil
}

// InsertarLote persiste un lote de ejemplares nuevos dentro de una
// transacción: o entran todos o no entra ninguno.
func (r *EjemplarRepository) InsertarLote(ctx context.Context, ejemplares []domain.Ejemplar) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return 0, errors.NewDBError("Falla al iniciar la transacción de alta", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const insertSQL = `
        INSERT INTO ejemplares
            (id, producto_id, num_inventario, serie, estado_fisico, estatus,
             descripcion, aula_id, empleado_id, fecha_registro)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, e := range ejemplares {
		_, err = tx.ExecContext(ctxTimeout, insertSQL,
			e.ID,
			e.ProductoID,
			e.NumInventario,
			e.Serie,
			string(e.EstadoFisico),
			string(e.Estatus),
			e.Descripcion,
			e.AulaID,
			e.EmpleadoID,
			e.FechaRegistro,
		)
		if err != nil {
			r.logger.Error("Falla al insertar ejemplar del lote.", err)
			return 0, errors.NewDBError("Falla al insertar el lote de ejemplares", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.NewDBError("Falla al confirmar la transacción de alta", err)
	}

	r.invalidarResumen(ctxTimeout)
	return int64(len(ejemplares)), nil
}

// ListarPorGrupo retorna los ejemplares de un grupo (producto × aula),
// ordenados por número de inventario. Incluye las bajas lógicas: la tabla
// de la UI las distingue por estatus.
func (r *EjemplarRepository) ListarPorGrupo(ctx context.Context, productoID string, aulaID domain.OptionalInt64) ([]domain.Ejemplar, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	args := []interface{}{productoID}
	query := `
        SELECT id, producto_id, num_inventario, num_inventario_norm, serie,
               estado_fisico, estatus, descripcion, aula_id, empleado_id,
               fecha_registro, deleted_at
        FROM ejemplares
        WHERE producto_id = $1`

	if aulaID.Present {
		if aulaID.Null {
			query += " AND aula_id IS NULL"
		} else {
			args = append(args, aulaID.Value)
			query += fmt.Sprintf(" AND aula_id = $%d", len(args))
		}
	}
	query += " ORDER BY num_inventario ASC"

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falla al listar ejemplares por grupo.", err)
		return nil, errors.NewDBError("Falla al listar los ejemplares del grupo", err)
	}
	defer rows.Close()

	var ejemplares []domain.Ejemplar
	for rows.Next() {
		var e domain.Ejemplar
		var norm sql.NullString
		if err := rows.Scan(
			&e.ID, &e.ProductoID, &e.NumInventario, &norm, &e.Serie,
			&e.EstadoFisico, &e.Estatus, &e.Descripcion, &e.AulaID,
			&e.EmpleadoID, &e.FechaRegistro, &e.DeletedAt,
		); err != nil {
			return nil, errors.NewDBError("Falla al leer ejemplar del grupo", err)
		}
		e.NumInventarioNorm = norm.String
		ejemplares = append(ejemplares, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falla al iterar ejemplares del grupo", err)
	}
	return ejemplares, nil
}

// ResumenGrupos calcula el modelo de lectura agregado por grupo
// (producto × aula) con la estrategia Cache-Aside: primero Redis, luego la
// BD, y al encontrarlo en la BD se repuebla el caché con TTL.
func (r *EjemplarRepository) ResumenGrupos(ctx context.Context) ([]domain.GrupoResumen, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 1. Intentar el caché
	if cached, err := r.Cache.Get(ctxTimeout, resumenCacheKey); err == nil {
		var resumen []domain.GrupoResumen
		if json.Unmarshal([]byte(cached), &resumen) == nil {
			return resumen, nil
		}
		// Si falla la deserialización, seguimos a la BD.
	} else if err != cache.ErrCacheMiss {
		// Un error real de caché (conexión) no debe tumbar la lectura.
		r.logger.Warn("Falla al leer el resumen del caché.", map[string]interface{}{"error": err.Error()})
	}

	// 2. Calcular en la BD. Las bajas lógicas no cuentan en los agregados.
	const query = `
        SELECT e.producto_id,
               i.producto,
               i.modelo,
               e.aula_id,
               COALESCE(a.nombre, 'Sin aula') AS aula,
               COUNT(*) AS cantidad,
               COUNT(*) FILTER (WHERE e.estado_fisico IN ('malo', 'inutilizable')) AS danados
        FROM ejemplares e
        JOIN items i ON i.id = e.producto_id
        LEFT JOIN aulas a ON a.id = e.aula_id
        WHERE e.deleted_at IS NULL
        GROUP BY e.producto_id, i.producto, i.modelo, e.aula_id, a.nombre
        ORDER BY i.producto ASC, aula ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falla al calcular el resumen por grupos.", err)
		return nil, errors.NewDBError("Falla al calcular el resumen por grupos", err)
	}
	defer rows.Close()

	resumen := []domain.GrupoResumen{}
	for rows.Next() {
		var g domain.GrupoResumen
		if err := rows.Scan(&g.ProductoID, &g.Producto, &g.Modelo, &g.AulaID, &g.Aula, &g.Cantidad, &g.Danados); err != nil {
			return nil, errors.NewDBError("Falla al leer fila del resumen", err)
		}
		resumen = append(resumen, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falla al iterar el resumen", err)
	}

	// 3. Repoblar el caché (best-effort)
	if data, marshalErr := json.Marshal(resumen); marshalErr == nil {
		r.Cache.Set(ctxTimeout, resumenCacheKey, data, r.CacheTTL)
	}

	return resumen, nil
}

// invalidarResumen borra el resumen cacheado tras una mutación. Es
// best-effort: una falla aquí solo deja el caché viejo hasta su TTL.
func (r *EjemplarRepository) invalidarResumen(ctx context.Context) {
	if err := r.Cache.Delete(ctx, resumenCacheKey); err != nil {
		r.logger.Warn("Falla al invalidar el resumen en caché.", map[string]interface{}{"error": err.Error()})
	}
}
