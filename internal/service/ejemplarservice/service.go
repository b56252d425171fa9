package ejemplarservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
)

// EjemplarRepository define el contrato que el servicio espera de la capa
// de persistencia. Todas las mutaciones masivas operan sobre conjuntos de
// ids ya conciliados, nunca sobre los strings crudos del usuario.
type EjemplarRepository interface {
	BuscarPorCodigos(ctx context.Context, scope domain.GrupoScope, codigosNorm []string) ([]domain.EjemplarRef, error)
	ActualizarEstadoMasivo(ctx context.Context, ids []string, estado domain.EstadoUI) (int64, error)
	ReubicarMasivo(ctx context.Context, ids []string, destino domain.DestinoReubicacion) (int64, error)
	BajaMasiva(ctx context.Context, ids []string) (int64, error)
	EliminarMasivo(ctx context.Context, ids []string) (int64, error)
	BuscarCodigosExistentes(ctx context.Context, codigosNorm []string) ([]string, error)
	InsertarLote(ctx context.Context, ejemplares []domain.Ejemplar) (int64, error)
	ListarPorGrupo(ctx context.Context, productoID string, aulaID domain.OptionalInt64) ([]domain.Ejemplar, error)
	ResumenGrupos(ctx context.Context) ([]domain.GrupoResumen, error)
}

// MovimientoRepository es el contrato de la bitácora. Solo insertamos.
type MovimientoRepository interface {
	InsertarLote(ctx context.Context, movimientos []domain.Movimiento) error
}

// Service implementa el motor de conciliación masiva de ejemplares: parsear
// el blob de números, normalizar, conciliar contra el grupo, mutar SOLO el
// subconjunto resuelto y registrar el historial (best-effort).
type Service struct {
	repo    EjemplarRepository
	movRepo MovimientoRepository
	logger  logger.Logger
}

// NewService crea y retorna una nueva instancia del servicio.
func NewService(repo EjemplarRepository, movRepo MovimientoRepository, log logger.Logger) *Service {
	return &Service{repo: repo, movRepo: movRepo, logger: log}
}

// conciliacion es el resultado interno de resolver un blob de números
// contra el grupo: los ids encontrados y los tokens crudos no encontrados.
type conciliacion struct {
	ids      []string
	notFound []string
}

// conciliar ejecuta el corazón del motor:
//
//  1. Parte el blob en tokens crudos y normaliza cada uno manteniendo los
//     arreglos paralelos (posición i del crudo ↔ posición i del normalizado).
//  2. Deduplica las claves normalizadas para la búsqueda.
//  3. Consulta el almacén delimitado por el scope del grupo.
//  4. Los no encontrados se reportan con el token CRUDO original (nunca la
//     forma normalizada), en orden de entrada, deduplicados por clave
//     normalizada (primer token visto por clave).
//
// Cero encontrados NO es un error: el llamador decide qué hacer con un
// resultado vacío.
func (s *Service) conciliar(ctx context.Context, scope domain.GrupoScope, numeros string) (conciliacion, error) {
	crudos := domain.SplitNumeros(numeros)
	if len(crudos) == 0 {
		return conciliacion{}, apperror.NewValidationError("Proporciona números de inventario.")
	}

	normalizados := make([]string, len(crudos))
	for i, t := range crudos {
		normalizados[i] = domain.NormalizeInventario(t)
	}

	// Conjunto deduplicado para la búsqueda. Un token que normaliza a vacío
	// (solo puntuación) no puede coincidir con nada: no entra a la consulta
	// y cae directo en notFound.
	vistos := make(map[string]struct{}, len(normalizados))
	unicos := make([]string, 0, len(normalizados))
	for _, n := range normalizados {
		if n == "" {
			continue
		}
		if _, ok := vistos[n]; ok {
			continue
		}
		vistos[n] = struct{}{}
		unicos = append(unicos, n)
	}

	var refs []domain.EjemplarRef
	if len(unicos) > 0 {
		var err error
		refs, err = s.repo.BuscarPorCodigos(ctx, scope, unicos)
		if err != nil {
			// Una falla en la búsqueda aborta TODA la operación: no se
			// muta nada que no se haya confirmado dentro del scope.
			return conciliacion{}, err
		}
	}

	encontrados := make(map[string]struct{}, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		encontrados[ref.NumInventarioNorm] = struct{}{}
		ids = append(ids, ref.ID)
	}

	reportados := make(map[string]struct{})
	notFound := []string{}
	for i, crudo := range crudos {
		norm := normalizados[i]
		if _, ok := encontrados[norm]; ok {
			continue
		}
		if _, ya := reportados[norm]; ya {
			continue
		}
		reportados[norm] = struct{}{}
		notFound = append(notFound, crudo)
	}

	return conciliacion{ids: ids, notFound: notFound}, nil
}

// registrarMovimientos inserta una fila de historial por ejemplar afectado.
// Es best-effort: una falla se registra como advertencia y NUNCA altera el
// resultado de la mutación principal.
func (s *Service) registrarMovimientos(ctx context.Context, ids []string, tipo domain.TipoMovimiento,
	usuarioID *string, estado *domain.EstadoFisico, descripcion *string, aulaID *int64, empleadoID *string) {

	if len(ids) == 0 {
		return
	}

	movimientos := make([]domain.Movimiento, 0, len(ids))
	for _, id := range ids {
		movimientos = append(movimientos, domain.Movimiento{
			ID:           uuid.New().String(),
			EjemplarID:   id,
			Tipo:         tipo,
			UsuarioID:    usuarioID,
			EstadoFisico: estado,
			Descripcion:  descripcion,
			AulaID:       aulaID,
			EmpleadoID:   empleadoID,
		})
	}

	if err := s.movRepo.InsertarLote(ctx, movimientos); err != nil {
		s.logger.Warn("No se pudo registrar el historial de movimientos; la mutación principal no se ve afectada.", map[string]interface{}{
			"tipo":       string(tipo),
			"ejemplares": len(ids),
			"error":      err.Error(),
		})
	}
}

// CambiarEstadoMasivo aplica un cambio de estado al subconjunto del grupo
// que resuelva desde el blob de números. El estado "baja" conlleva la baja
// lógica (estatus + deleted_at); cualquier otro estado reactiva el
// ejemplar y limpia deleted_at.
func (s *Service) CambiarEstadoMasivo(ctx context.Context, req domain.CambioEstadoMasivoRequest) (domain.ResultadoMasivo, error) {
	if req.ProductoID == "" {
		return domain.ResultadoMasivo{}, apperror.NewValidationError("Falta producto_id: el grupo es obligatorio.")
	}
	if req.Estado == "" {
		return domain.ResultadoMasivo{}, apperror.NewValidationError("El estado es obligatorio.")
	}
	if !req.Estado.Valido() {
		return domain.ResultadoMasivo{}, apperror.NewValidationError(fmt.Sprintf("Estado desconocido: %q.", req.Estado))
	}

	scope := domain.GrupoScope{ProductoID: req.ProductoID, AulaID: req.AulaID}
	conc, err := s.conciliar(ctx, scope, req.Numeros)
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	if len(conc.ids) == 0 {
		// Nada que mutar: respuesta exitosa con todos los tokens en notFound.
		return domain.ResultadoMasivo{Afectados: 0, NotFound: conc.notFound}, nil
	}

	afectados, err := s.repo.ActualizarEstadoMasivo(ctx, conc.ids, req.Estado)
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	// Historial: "baja" se registra como movimiento de baja sin estado
	// físico; el resto como cambio de estado.
	tipo := domain.MovimientoCambio
	var estadoFisico *domain.EstadoFisico
	if req.Estado == domain.EstadoUIBaja {
		tipo = domain.MovimientoBaja
	} else {
		e := domain.EstadoFisico(req.Estado)
		estadoFisico = &e
	}

	var aulaID *int64
	if req.AulaID.Present && !req.AulaID.Null {
		v := req.AulaID.Value
		aulaID = &v
	}
	s.registrarMovimientos(ctx, conc.ids, tipo, req.UsuarioID, estadoFisico, req.Descripcion, aulaID, nil)

	s.logger.Info("Cambio de estado masivo aplicado.", map[string]interface{}{
		"producto_id":  req.ProductoID,
		"estado":       string(req.Estado),
		"afectados":    afectados,
		"no_resueltos": len(conc.notFound),
	})
	return domain.ResultadoMasivo{Afectados: afectados, NotFound: conc.notFound}, nil
}

// ReubicarMasivo cambia aula y/o responsable del subconjunto resuelto. El
// origen (from_*) delimita el scope con la semántica de tres estados; el
// destino actualiza SOLO los campos presentes (null explícito = limpiar).
func (s *Service) ReubicarMasivo(ctx context.Context, req domain.ReubicacionMasivaRequest) (domain.ResultadoMasivo, error) {
	if req.ProductoID == "" {
		return domain.ResultadoMasivo{}, apperror.NewValidationError("Falta producto_id: el grupo es obligatorio.")
	}

	destino := domain.DestinoReubicacion{AulaID: req.ToAulaID, EmpleadoID: req.ToEmpleadoID}
	if destino.Vacio() {
		return domain.ResultadoMasivo{}, apperror.NewValidationError("Nada que mover: define aula o empleado destino.")
	}

	scope := domain.GrupoScope{
		ProductoID: req.ProductoID,
		AulaID:     req.FromAulaID,
		EmpleadoID: req.FromEmpleadoID,
	}
	conc, err := s.conciliar(ctx, scope, req.Numeros)
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	if len(conc.ids) == 0 {
		return domain.ResultadoMasivo{Afectados: 0, NotFound: conc.notFound}, nil
	}

	afectados, err := s.repo.ReubicarMasivo(ctx, conc.ids, destino)
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	// Contexto del movimiento: el destino definido (los campos ausentes o
	// limpiados quedan null en la bitácora).
	var aulaID *int64
	if req.ToAulaID.Present && !req.ToAulaID.Null {
		v := req.ToAulaID.Value
		aulaID = &v
	}
	var empleadoID *string
	if req.ToEmpleadoID.Present && !req.ToEmpleadoID.Null {
		v := req.ToEmpleadoID.Value
		empleadoID = &v
	}
	s.registrarMovimientos(ctx, conc.ids, domain.MovimientoReubicacion, req.UsuarioID, nil, req.Descripcion, aulaID, empleadoID)

	s.logger.Info("Reubicación masiva aplicada.", map[string]interface{}{
		"producto_id":  req.ProductoID,
		"afectados":    afectados,
		"no_resueltos": len(conc.notFound),
	})
	return domain.ResultadoMasivo{Afectados: afectados, NotFound: conc.notFound}, nil
}

// BajaMasiva retira el subconjunto resuelto. Por defecto la baja es lógica
// (deleted_at + estatus=baja, fila consultable como histórico); con
// Definitivo=true las filas se eliminan físicamente.
func (s *Service) BajaMasiva(ctx context.Context, req domain.BajaMasivaRequest) (domain.ResultadoMasivo, error) {
	if req.ProductoID == "" {
		return domain.ResultadoMasivo{}, apperror.NewValidationError("Falta producto_id: el grupo es obligatorio.")
	}

	scope := domain.GrupoScope{ProductoID: req.ProductoID, AulaID: req.AulaID}
	conc, err := s.conciliar(ctx, scope, req.Numeros)
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	if len(conc.ids) == 0 {
		return domain.ResultadoMasivo{Afectados: 0, NotFound: conc.notFound}, nil
	}

	var afectados int64
	if req.Definitivo {
		afectados, err = s.repo.EliminarMasivo(ctx, conc.ids)
	} else {
		afectados, err = s.repo.BajaMasiva(ctx, conc.ids)
	}
	if err != nil {
		return domain.ResultadoMasivo{}, err
	}

	// Solo la baja lógica deja historial: tras un borrado físico ya no
	// existe el ejemplar al que referenciaría el movimiento.
	if !req.Definitivo {
		s.registrarMovimientos(ctx, conc.ids, domain.MovimientoBaja, req.UsuarioID, nil, req.Descripcion, nil, nil)
	}

	s.logger.Info("Baja masiva aplicada.", map[string]interface{}{
		"producto_id":  req.ProductoID,
		"definitivo":   req.Definitivo,
		"afectados":    afectados,
		"no_resueltos": len(conc.notFound),
	})
	return domain.ResultadoMasivo{Afectados: afectados, NotFound: conc.notFound}, nil
}

// AltaMasiva registra un lote de ejemplares nuevos en un grupo. Si vienen
// números se crea un ejemplar por número (rechazando con Conflict los que
// ya existan por clave normalizada); si no, se crean Cantidad ejemplares
// sin número de inventario.
func (s *Service) AltaMasiva(ctx context.Context, req domain.AltaMasivaRequest) (domain.ResultadoAlta, error) {
	if req.ProductoID == "" {
		return domain.ResultadoAlta{}, apperror.NewValidationError("Falta producto_id: el grupo es obligatorio.")
	}

	estadoFisico := req.EstadoFisico
	if estadoFisico == "" {
		estadoFisico = domain.EstadoBueno
	}
	estatus := req.Estatus
	if estatus == "" {
		estatus = domain.EstatusActivo
	}

	// 1. Parsear y deduplicar por clave normalizada, conservando la forma
	// cruda del primer token visto: es la que se almacena.
	var numeros []string
	if strings.TrimSpace(req.Numeros) != "" {
		crudos := domain.SplitNumeros(req.Numeros)
		vistos := make(map[string]struct{}, len(crudos))
		for _, c := range crudos {
			norm := domain.NormalizeInventario(c)
			if norm == "" {
				return domain.ResultadoAlta{}, apperror.NewValidationError(fmt.Sprintf("Número de inventario inválido: %q.", c))
			}
			if _, ok := vistos[norm]; ok {
				continue
			}
			vistos[norm] = struct{}{}
			numeros = append(numeros, c)
		}
	}

	cantidad := req.Cantidad
	if cantidad == 0 {
		cantidad = len(numeros)
	}
	if cantidad <= 0 {
		return domain.ResultadoAlta{}, apperror.NewValidationError("La cantidad debe ser mayor a 0.")
	}
	if len(numeros) > 0 && len(numeros) != cantidad {
		return domain.ResultadoAlta{}, apperror.NewValidationError(
			fmt.Sprintf("La cantidad (%d) no coincide con los números proporcionados (%d).", cantidad, len(numeros)))
	}

	// 2. Rechazar números ya registrados (unicidad sobre la forma
	// normalizada, reportando las formas crudas).
	if len(numeros) > 0 {
		normales := make([]string, len(numeros))
		for i, n := range numeros {
			normales[i] = domain.NormalizeInventario(n)
		}
		existentes, err := s.repo.BuscarCodigosExistentes(ctx, normales)
		if err != nil {
			return domain.ResultadoAlta{}, err
		}
		if len(existentes) > 0 {
			ya := make(map[string]struct{}, len(existentes))
			for _, e := range existentes {
				ya[e] = struct{}{}
			}
			repetidos := []string{}
			for i, n := range numeros {
				if _, ok := ya[normales[i]]; ok {
					repetidos = append(repetidos, n)
				}
			}
			return domain.ResultadoAlta{}, apperror.NewConflictError(
				fmt.Sprintf("Números ya existentes: %s.", strings.Join(repetidos, ", ")))
		}
	}

	// 3. Construir el lote.
	var aulaID *int64
	if req.AulaID.Present && !req.AulaID.Null {
		v := req.AulaID.Value
		aulaID = &v
	}

	ahora := time.Now()
	ejemplares := make([]domain.Ejemplar, 0, cantidad)
	for i := 0; i < cantidad; i++ {
		var num *string
		if len(numeros) > 0 {
			n := numeros[i]
			num = &n
		}
		ejemplares = append(ejemplares, domain.Ejemplar{
			ID:            uuid.New().String(),
			ProductoID:    req.ProductoID,
			NumInventario: num,
			Serie:         req.Serie,
			EstadoFisico:  estadoFisico,
			Estatus:       estatus,
			Descripcion:   req.Descripcion,
			AulaID:        aulaID,
			EmpleadoID:    req.EmpleadoID,
			FechaRegistro: ahora,
		})
	}

	insertados, err := s.repo.InsertarLote(ctx, ejemplares)
	if err != nil {
		return domain.ResultadoAlta{}, err
	}

	// 4. Historial de alta (best-effort).
	ids := make([]string, len(ejemplares))
	for i, e := range ejemplares {
		ids[i] = e.ID
	}
	estadoHist := estadoFisico
	s.registrarMovimientos(ctx, ids, domain.MovimientoAlta, req.UsuarioID, &estadoHist, req.Descripcion, aulaID, req.EmpleadoID)

	s.logger.Info("Alta masiva aplicada.", map[string]interface{}{
		"producto_id": req.ProductoID,
		"insertados":  insertados,
	})
	return domain.ResultadoAlta{Insertados: insertados}, nil
}

// ListarPorGrupo retorna los ejemplares de un grupo para la tabla de la UI.
func (s *Service) ListarPorGrupo(ctx context.Context, productoID string, aulaID domain.OptionalInt64) ([]domain.Ejemplar, error) {
	if productoID == "" {
		return nil, apperror.NewValidationError("Falta producto_id: el grupo es obligatorio.")
	}
	return s.repo.ListarPorGrupo(ctx, productoID, aulaID)
}

// ResumenGrupos retorna el modelo de lectura agregado por grupo.
func (s *Service) ResumenGrupos(ctx context.Context) ([]domain.GrupoResumen, error) {
	return s.repo.ResumenGrupos(ctx)
}
