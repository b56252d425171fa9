package movimientoservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
)

// MovimientoRepository es el contrato de lectura del feed de movimientos.
type MovimientoRepository interface {
	Listar(ctx context.Context, filtro domain.MovimientoFiltro) (domain.MovimientoPagina, error)
}

// Service valida y sanea los filtros del feed antes de consultar.
type Service struct {
	repo   MovimientoRepository
	logger logger.Logger
}

// NewService crea y retorna una nueva instancia del servicio.
func NewService(repo MovimientoRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

const (
	limiteDefault = 20
	limiteMaximo  = 100
)

var tiposValidos = map[string]struct{}{
	string(domain.MovimientoAlta):        {},
	string(domain.MovimientoCambio):      {},
	string(domain.MovimientoReubicacion): {},
	string(domain.MovimientoBaja):        {},
}

// sanearTermino limpia el término de búsqueda libre: quita los comodines
// de ILIKE y las comas antes de interpolarlo como parámetro.
func sanearTermino(q string) string {
	q = strings.TrimSpace(q)
	reemplazador := strings.NewReplacer("%", "", "_", "", ",", "")
	return reemplazador.Replace(q)
}

// validarFecha acepta fechas 'YYYY-MM-DD' o cadena vacía.
func validarFecha(campo, valor string) error {
	if valor == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", valor); err != nil {
		return apperror.NewValidationError(fmt.Sprintf("Fecha inválida en %s: usa el formato YYYY-MM-DD.", campo))
	}
	return nil
}

// Listar retorna una página del feed de movimientos con los filtros ya
// normalizados: límites acotados, tipo contra la lista blanca y fechas
// validadas.
func (s *Service) Listar(ctx context.Context, filtro domain.MovimientoFiltro) (domain.MovimientoPagina, error) {
	if filtro.Page < 1 {
		filtro.Page = 1
	}
	if filtro.Limit <= 0 {
		filtro.Limit = limiteDefault
	}
	if filtro.Limit > limiteMaximo {
		filtro.Limit = limiteMaximo
	}

	filtro.Tipo = strings.ToLower(strings.TrimSpace(filtro.Tipo))
	if filtro.Tipo != "" {
		if _, ok := tiposValidos[filtro.Tipo]; !ok {
			return domain.MovimientoPagina{}, apperror.NewValidationError(fmt.Sprintf("Tipo de movimiento desconocido: %q.", filtro.Tipo))
		}
	}

	if err := validarFecha("desde", filtro.Desde); err != nil {
		return domain.MovimientoPagina{}, err
	}
	if err := validarFecha("hasta", filtro.Hasta); err != nil {
		return domain.MovimientoPagina{}, err
	}

	filtro.Q = sanearTermino(filtro.Q)

	return s.repo.Listar(ctx, filtro)
}
