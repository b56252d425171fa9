package movimientorepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	"github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
)

// MovimientoRepository implementa el acceso a la bitácora de movimientos.
// Los movimientos son append-only: este repositorio solo inserta y lee,
// nunca actualiza ni borra.
type MovimientoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMovimientoRepository crea y retorna una nueva instancia del repositorio.
func NewMovimientoRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *MovimientoRepository {
	return &MovimientoRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// InsertarLote registra un lote de movimientos en UNA sola sentencia INSERT
// multifila (preferible a N llamadas). El llamador trata la falla como
// best-effort: registrar el historial nunca bloquea la mutación principal.
func (r *MovimientoRepository) InsertarLote(ctx context.Context, movimientos []domain.Movimiento) error {
	if len(movimientos) == 0 {
		return nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const columnas = 8
	valores := make([]string, 0, len(movimientos))
	args := make([]interface{}, 0, len(movimientos)*columnas)

	for i, m := range movimientos {
		base := i * columnas
		valores = append(valores, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))

		var estado *string
		if m.EstadoFisico != nil {
			s := string(*m.EstadoFisico)
			estado = &s
		}

		args = append(args,
			m.ID,
			m.EjemplarID,
			string(m.Tipo),
			m.UsuarioID,
			estado,
			m.Descripcion,
			m.AulaID,
			m.EmpleadoID,
		)
	}

	// fecha_movimiento usa el DEFAULT now() de la tabla.
	query := `
        INSERT INTO movimientos
            (id, ejemplar_id, tipo, usuario_id, estado_fisico, descripcion, aula_id, empleado_id)
        VALUES ` + strings.Join(valores, ", ")

	if _, err := r.DB.ExecContext(ctxTimeout, query, args...); err != nil {
		r.logger.Error("Falla al insertar lote de movimientos.", err)
		return errors.NewDBError("Falla al registrar los movimientos", err)
	}

	r.logger.Debug("Lote de movimientos registrado.", map[string]interface{}{"cantidad": len(movimientos)})
	return nil
}

// Listar consulta el feed de movimientos con filtros y paginación. Las
// etiquetas legibles (producto, aula, empleado) se resuelven con JOINs; el
// total se calcula con una ventana sobre la misma consulta.
func (r *MovimientoRepository) Listar(ctx context.Context, filtro domain.MovimientoFiltro) (domain.MovimientoPagina, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	conds := []string{"1=1"}
	args := []interface{}{}

	if filtro.Tipo != "" {
		args = append(args, filtro.Tipo)
		conds = append(conds, fmt.Sprintf("m.tipo = $%d", len(args)))
	}
	// Ventana de fechas inclusiva por día.
	if filtro.Desde != "" {
		args = append(args, filtro.Desde+" 00:00:00")
		conds = append(conds, fmt.Sprintf("m.fecha_movimiento >= $%d", len(args)))
	}
	if filtro.Hasta != "" {
		args = append(args, filtro.Hasta+" 23:59:59")
		conds = append(conds, fmt.Sprintf("m.fecha_movimiento <= $%d", len(args)))
	}
	if filtro.Q != "" {
		patron := "%" + filtro.Q + "%"
		args = append(args, patron)
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(
            i.producto ILIKE $%d OR e.num_inventario ILIKE $%d OR e.serie ILIKE $%d
            OR emp.nombre ILIKE $%d OR m.descripcion ILIKE $%d OR a.nombre ILIKE $%d)`,
			n, n, n, n, n, n))
	}

	args = append(args, filtro.Limit)
	limitArg := len(args)
	args = append(args, (filtro.Page-1)*filtro.Limit)
	offsetArg := len(args)

	query := fmt.Sprintf(`
        SELECT m.id, m.tipo, m.fecha_movimiento, m.estado_fisico, m.descripcion,
               e.num_inventario, e.serie, i.producto, a.nombre AS aula, emp.nombre AS empleado,
               COUNT(*) OVER() AS total
        FROM movimientos m
        JOIN ejemplares e ON e.id = m.ejemplar_id
        JOIN items i ON i.id = e.producto_id
        LEFT JOIN aulas a ON a.id = m.aula_id
        LEFT JOIN employees emp ON emp.id = m.empleado_id
        WHERE %s
        ORDER BY m.fecha_movimiento DESC
        LIMIT $%d OFFSET $%d`,
		strings.Join(conds, " AND "), limitArg, offsetArg)

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falla al listar movimientos.", err)
		return domain.MovimientoPagina{}, errors.NewDBError("Falla al listar los movimientos", err)
	}
	defer rows.Close()

	pagina := domain.MovimientoPagina{
		Page:  filtro.Page,
		Limit: filtro.Limit,
		Items: []domain.MovimientoFeedItem{},
	}

	for rows.Next() {
		var item domain.MovimientoFeedItem
		var estado sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Tipo, &item.FechaMovimiento, &estado, &item.Descripcion,
			&item.NumInventario, &item.Serie, &item.Producto, &item.Aula, &item.Empleado,
			&pagina.Total,
		); err != nil {
			return domain.MovimientoPagina{}, errors.NewDBError("Falla al leer movimiento", err)
		}
		if estado.Valid {
			e := domain.EstadoFisico(estado.String)
			item.EstadoFisico = &e
		}
		pagina.Items = append(pagina.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.MovimientoPagina{}, errors.NewDBError("Falla al iterar movimientos", err)
	}

	return pagina, nil
}
