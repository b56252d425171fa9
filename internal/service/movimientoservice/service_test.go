package movimientoservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
	"github.com/Denjimex/mi-proyecto-inventario/internal/service/movimientoservice"
)

// MockMovimientoRepository es una implementación mock de la interfaz
// MovimientoRepository.
type MockMovimientoRepository struct {
	mock.Mock
}

func (m *MockMovimientoRepository) Listar(ctx context.Context, filtro domain.MovimientoFiltro) (domain.MovimientoPagina, error) {
	args := m.Called(ctx, filtro)
	return args.Get(0).(domain.MovimientoPagina), args.Error(1)
}

func nuevoServicio() (*movimientoservice.Service, *MockMovimientoRepository) {
	mockRepo := new(MockMovimientoRepository)
	svc := movimientoservice.NewService(mockRepo, logger.NewLogger("debug"))
	return svc, mockRepo
}

// TestListar_ValoresPorDefecto: página y límite fuera de rango caen a los
// valores por defecto antes de llegar al repositorio.
func TestListar_ValoresPorDefecto(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	esperado := domain.MovimientoFiltro{Page: 1, Limit: 20}
	mockRepo.On("Listar", mock.Anything, esperado).
		Return(domain.MovimientoPagina{Page: 1, Limit: 20, Items: []domain.MovimientoFeedItem{}}, nil)

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Page: 0, Limit: 0})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestListar_LimiteAcotado: el límite se recorta al máximo permitido.
func TestListar_LimiteAcotado(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	esperado := domain.MovimientoFiltro{Page: 1, Limit: 100}
	mockRepo.On("Listar", mock.Anything, esperado).
		Return(domain.MovimientoPagina{}, nil)

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Page: 1, Limit: 5000})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestListar_TipoInvalido rechaza tipos fuera de la lista blanca.
func TestListar_TipoInvalido(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Tipo: "prestamo"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Listar", mock.Anything, mock.Anything)
}

// TestListar_FechaInvalida rechaza fechas que no sean YYYY-MM-DD.
func TestListar_FechaInvalida(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Desde: "28/08/2026"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Listar", mock.Anything, mock.Anything)
}

// TestListar_SaneaBusqueda: los comodines de ILIKE y las comas se eliminan
// del término de búsqueda libre.
func TestListar_SaneaBusqueda(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	esperado := domain.MovimientoFiltro{Q: "inv001", Page: 1, Limit: 20}
	mockRepo.On("Listar", mock.Anything, esperado).
		Return(domain.MovimientoPagina{}, nil)

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Q: " %inv_001,% "})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestListar_TipoNormalizado: el tipo se normaliza a minúsculas antes de la
// lista blanca.
func TestListar_TipoNormalizado(t *testing.T) {
	svc, mockRepo := nuevoServicio()

	esperado := domain.MovimientoFiltro{Tipo: "baja", Page: 1, Limit: 20}
	mockRepo.On("Listar", mock.Anything, esperado).
		Return(domain.MovimientoPagina{}, nil)

	_, err := svc.Listar(context.Background(), domain.MovimientoFiltro{Tipo: " BAJA "})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
