package ejemplarservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
	"github.com/Denjimex/mi-proyecto-inventario/internal/service/ejemplarservice"
)

// MockEjemplarRepository es una implementación mock de la interfaz
// EjemplarRepository.
type MockEjemplarRepository struct {
	mock.Mock
}

func (m *MockEjemplarRepository) BuscarPorCodigos(ctx context.Context, scope domain.GrupoScope, codigosNorm []string) ([]domain.EjemplarRef, error) {
	args := m.Called(ctx, scope, codigosNorm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EjemplarRef), args.Error(1)
}

func (m *MockEjemplarRepository) ActualizarEstadoMasivo(ctx context.Context, ids []string, estado domain.EstadoUI) (int64, error) {
	args := m.Called(ctx, ids, estado)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEjemplarRepository) ReubicarMasivo(ctx context.Context, ids []string, destino domain.DestinoReubicacion) (int64, error) {
	args := m.Called(ctx, ids, destino)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEjemplarRepository) BajaMasiva(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEjemplarRepository) EliminarMasivo(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEjemplarRepository) BuscarCodigosExistentes(ctx context.Context, codigosNorm []string) ([]string, error) {
	args := m.Called(ctx, codigosNorm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEjemplarRepository) InsertarLote(ctx context.Context, ejemplares []domain.Ejemplar) (int64, error) {
	args := m.Called(ctx, ejemplares)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEjemplarRepository) ListarPorGrupo(ctx context.Context, productoID string, aulaID domain.OptionalInt64) ([]domain.Ejemplar, error) {
	args := m.Called(ctx, productoID, aulaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ejemplar), args.Error(1)
}

func (m *MockEjemplarRepository) ResumenGrupos(ctx context.Context) ([]domain.GrupoResumen, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GrupoResumen), args.Error(1)
}

// MockMovimientoRepository es una implementación mock del registro de
// movimientos.
type MockMovimientoRepository struct {
	mock.Mock
}

func (m *MockMovimientoRepository) InsertarLote(ctx context.Context, movimientos []domain.Movimiento) error {
	args := m.Called(ctx, movimientos)
	return args.Error(0)
}

func nuevoServicio() (*ejemplarservice.Service, *MockEjemplarRepository, *MockMovimientoRepository) {
	mockRepo := new(MockEjemplarRepository)
	mockMov := new(MockMovimientoRepository)
	svc := ejemplarservice.NewService(mockRepo, mockMov, logger.NewLogger("debug"))
	return svc, mockRepo, mockMov
}

// TestCambiarEstadoMasivo_Exito prueba el camino feliz: todos los tokens
// resuelven y el repositorio reporta las filas afectadas.
func TestCambiarEstadoMasivo_Exito(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{
		{ID: "id-1", NumInventarioNorm: "inv001"},
		{ID: "id-2", NumInventarioNorm: "inv002"},
	}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001", "inv002"}).
		Return(refs, nil)
	mockRepo.On("ActualizarEstadoMasivo", mock.Anything, []string{"id-1", "id-2"}, domain.EstadoUI("malo")).
		Return(int64(2), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001, INV-002",
		Estado:     "malo",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resultado.Afectados)
	assert.Empty(t, resultado.NotFound)
	mockRepo.AssertExpectations(t)
	mockMov.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_Parcial: los tokens no resueltos se reportan con
// su forma CRUDA original, en orden de entrada, y el resto sí se muta.
func TestCambiarEstadoMasivo_Parcial(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001", "zz99", "inv777"}).
		Return(refs, nil)
	mockRepo.On("ActualizarEstadoMasivo", mock.Anything, []string{"id-1"}, domain.EstadoUI("regular")).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001\nZZ-99; INV-777",
		Estado:     "regular",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	assert.Equal(t, []string{"ZZ-99", "INV-777"}, resultado.NotFound)
	mockRepo.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_NingunoResuelve: cero encontrados NO es error;
// la respuesta es exitosa con todos los tokens en notFound y sin mutación.
func TestCambiarEstadoMasivo_NingunoResuelve(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"zz1", "zz2"}).
		Return([]domain.EjemplarRef{}, nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "ZZ-1, ZZ-2",
		Estado:     "bueno",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), resultado.Afectados)
	assert.Equal(t, []string{"ZZ-1", "ZZ-2"}, resultado.NotFound)
	mockRepo.AssertNotCalled(t, "ActualizarEstadoMasivo", mock.Anything, mock.Anything, mock.Anything)
}

// TestCambiarEstadoMasivo_DuplicadosSeDeduplican: dos tokens con la misma
// clave normalizada cuentan una sola vez, tanto en la búsqueda como en el
// reporte de notFound (se conserva la primera forma cruda vista).
func TestCambiarEstadoMasivo_DuplicadosSeDeduplican(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return([]domain.EjemplarRef{}, nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001, inv001, INV_001",
		Estado:     "bueno",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"INV-001"}, resultado.NotFound)
	mockRepo.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_DuplicadosQueResuelven: "A1, a-1, A1" contra un
// grupo con un ejemplar a1 → una sola búsqueda, una sola mutación, sin
// notFound.
func TestCambiarEstadoMasivo_DuplicadosQueResuelven(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "a1"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"a1"}).
		Return(refs, nil)
	mockRepo.On("ActualizarEstadoMasivo", mock.Anything, []string{"id-1"}, domain.EstadoUI("bueno")).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "A1, a-1, A1",
		Estado:     "bueno",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	assert.Empty(t, resultado.NotFound)
	mockRepo.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_Baja: el estado "baja" viaja al repositorio como
// tal (que acopla estatus + deleted_at) y el historial registra un
// movimiento de baja.
func TestCambiarEstadoMasivo_Baja(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("ActualizarEstadoMasivo", mock.Anything, []string{"id-1"}, domain.EstadoUIBaja).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.MatchedBy(func(movs []domain.Movimiento) bool {
		return len(movs) == 1 && movs[0].Tipo == domain.MovimientoBaja && movs[0].EstadoFisico == nil
	})).Return(nil)

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		Estado:     domain.EstadoUIBaja,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	mockMov.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_SinNumeros: un blob vacío o de puros separadores
// es un error de validación y no toca el almacén.
func TestCambiarEstadoMasivo_SinNumeros(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	_, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    " , ;\n",
		Estado:     "bueno",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "BuscarPorCodigos", mock.Anything, mock.Anything, mock.Anything)
}

// TestCambiarEstadoMasivo_EstadoInvalido rechaza estados fuera del catálogo.
func TestCambiarEstadoMasivo_EstadoInvalido(t *testing.T) {
	svc, _, _ := nuevoServicio()

	_, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		Estado:     "destruido",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestCambiarEstadoMasivo_FallaDeHistorialNoPropaga: el registro de
// movimientos es best-effort; su falla no altera el resultado.
func TestCambiarEstadoMasivo_FallaDeHistorialNoPropaga(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("ActualizarEstadoMasivo", mock.Anything, []string{"id-1"}, domain.EstadoUI("bueno")).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).
		Return(errors.New("bitácora caída"))

	resultado, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		Estado:     "bueno",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	mockMov.AssertExpectations(t)
}

// TestCambiarEstadoMasivo_FallaDeBusqueda: una falla del almacén durante la
// conciliación aborta toda la operación sin mutar nada.
func TestCambiarEstadoMasivo_FallaDeBusqueda(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(nil, apperror.NewDBError("Falla al buscar ejemplares por códigos", errors.New("conexión perdida")))

	_, err := svc.CambiarEstadoMasivo(context.Background(), domain.CambioEstadoMasivoRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		Estado:     "bueno",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	mockRepo.AssertNotCalled(t, "ActualizarEstadoMasivo", mock.Anything, mock.Anything, mock.Anything)
}

// TestReubicarMasivo_Exito mueve el subconjunto resuelto al aula destino.
func TestReubicarMasivo_Exito(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	destino := domain.DestinoReubicacion{AulaID: domain.Int64Set(7)}

	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("ReubicarMasivo", mock.Anything, []string{"id-1"}, destino).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.ReubicarMasivo(context.Background(), domain.ReubicacionMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		ToAulaID:   domain.Int64Set(7),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	mockRepo.AssertExpectations(t)
}

// TestReubicarMasivo_DestinoVacio: sin to_aula_id ni to_empleado_id no hay
// nada que mover; es un error de validación antes de tocar el almacén.
func TestReubicarMasivo_DestinoVacio(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	_, err := svc.ReubicarMasivo(context.Background(), domain.ReubicacionMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Nada que mover")
	mockRepo.AssertNotCalled(t, "BuscarPorCodigos", mock.Anything, mock.Anything, mock.Anything)
}

// TestReubicarMasivo_LimpiarConNull: null explícito en el destino ES un
// movimiento válido (dejar sin asignar).
func TestReubicarMasivo_LimpiarConNull(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	destino := domain.DestinoReubicacion{EmpleadoID: domain.StringNull()}

	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("ReubicarMasivo", mock.Anything, []string{"id-1"}, destino).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.ReubicarMasivo(context.Background(), domain.ReubicacionMasivaRequest{
		ProductoID:   "prod-1",
		Numeros:      "INV-001",
		ToEmpleadoID: domain.StringNull(),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
}

// TestReubicarMasivo_ScopeDeOrigen: los campos from_* viajan intactos al
// scope de la búsqueda, incluida la distinción null/ausente.
func TestReubicarMasivo_ScopeDeOrigen(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	scopeEsperado := domain.GrupoScope{
		ProductoID: "prod-1",
		AulaID:     domain.Int64Null(), // origen: ejemplares sin aula
	}
	mockRepo.On("BuscarPorCodigos", mock.Anything, scopeEsperado, []string{"inv001"}).
		Return([]domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}, nil)
	mockRepo.On("ReubicarMasivo", mock.Anything, []string{"id-1"}, mock.AnythingOfType("domain.DestinoReubicacion")).
		Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	_, err := svc.ReubicarMasivo(context.Background(), domain.ReubicacionMasivaRequest{
		ProductoID: "prod-1",
		FromAulaID: domain.Int64Null(),
		Numeros:    "INV-001",
		ToAulaID:   domain.Int64Set(3),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestBajaMasiva_Logica: la baja por defecto es lógica y deja historial.
func TestBajaMasiva_Logica(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("BajaMasiva", mock.Anything, []string{"id-1"}).Return(int64(1), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.BajaMasiva(context.Background(), domain.BajaMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	mockRepo.AssertNotCalled(t, "EliminarMasivo", mock.Anything, mock.Anything)
	mockMov.AssertExpectations(t)
}

// TestBajaMasiva_Definitiva: con definitivo=true se borra físicamente y NO
// se registra movimiento (la fila referenciada ya no existe).
func TestBajaMasiva_Definitiva(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	refs := []domain.EjemplarRef{{ID: "id-1", NumInventarioNorm: "inv001"}}
	mockRepo.On("BuscarPorCodigos", mock.Anything, mock.AnythingOfType("domain.GrupoScope"), []string{"inv001"}).
		Return(refs, nil)
	mockRepo.On("EliminarMasivo", mock.Anything, []string{"id-1"}).Return(int64(1), nil)

	resultado, err := svc.BajaMasiva(context.Background(), domain.BajaMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001",
		Definitivo: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultado.Afectados)
	mockRepo.AssertNotCalled(t, "BajaMasiva", mock.Anything, mock.Anything)
	mockMov.AssertNotCalled(t, "InsertarLote", mock.Anything, mock.Anything)
}

// TestAltaMasiva_ConNumeros crea un ejemplar por número y registra las
// altas en el historial.
func TestAltaMasiva_ConNumeros(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	mockRepo.On("BuscarCodigosExistentes", mock.Anything, []string{"inv001", "inv002"}).
		Return([]string{}, nil)
	mockRepo.On("InsertarLote", mock.Anything, mock.MatchedBy(func(ejemplares []domain.Ejemplar) bool {
		return len(ejemplares) == 2 &&
			*ejemplares[0].NumInventario == "INV-001" &&
			*ejemplares[1].NumInventario == "INV-002"
	})).Return(int64(2), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.AltaMasiva(context.Background(), domain.AltaMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001, INV-002",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resultado.Insertados)
	mockRepo.AssertExpectations(t)
	mockMov.AssertExpectations(t)
}

// TestAltaMasiva_SinNumeros crea Cantidad ejemplares sin número.
func TestAltaMasiva_SinNumeros(t *testing.T) {
	svc, mockRepo, mockMov := nuevoServicio()

	mockRepo.On("InsertarLote", mock.Anything, mock.MatchedBy(func(ejemplares []domain.Ejemplar) bool {
		return len(ejemplares) == 3 && ejemplares[0].NumInventario == nil
	})).Return(int64(3), nil)
	mockMov.On("InsertarLote", mock.Anything, mock.AnythingOfType("[]domain.Movimiento")).Return(nil)

	resultado, err := svc.AltaMasiva(context.Background(), domain.AltaMasivaRequest{
		ProductoID: "prod-1",
		Cantidad:   3,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), resultado.Insertados)
	mockRepo.AssertNotCalled(t, "BuscarCodigosExistentes", mock.Anything, mock.Anything)
}

// TestAltaMasiva_NumerosExistentes rechaza con conflicto los números ya
// registrados, reportando la forma cruda.
func TestAltaMasiva_NumerosExistentes(t *testing.T) {
	svc, mockRepo, _ := nuevoServicio()

	mockRepo.On("BuscarCodigosExistentes", mock.Anything, []string{"inv001", "inv002"}).
		Return([]string{"inv002"}, nil)

	_, err := svc.AltaMasiva(context.Background(), domain.AltaMasivaRequest{
		ProductoID: "prod-1",
		Numeros:    "INV-001, INV-002",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "INV-002")
	mockRepo.AssertNotCalled(t, "InsertarLote", mock.Anything, mock.Anything)
}

// TestAltaMasiva_CantidadNoCoincide: si vienen números Y cantidad, deben
// coincidir.
func TestAltaMasiva_CantidadNoCoincide(t *testing.T) {
	svc, _, _ := nuevoServicio()

	_, err := svc.AltaMasiva(context.Background(), domain.AltaMasivaRequest{
		ProductoID: "prod-1",
		Cantidad:   5,
		Numeros:    "INV-001, INV-002",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestAltaMasiva_SinCantidadNiNumeros es inválida.
func TestAltaMasiva_SinCantidadNiNumeros(t *testing.T) {
	svc, _, _ := nuevoServicio()

	_, err := svc.AltaMasiva(context.Background(), domain.AltaMasivaRequest{
		ProductoID: "prod-1",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestListarPorGrupo_SinProducto exige el grupo.
func TestListarPorGrupo_SinProducto(t *testing.T) {
	svc, _, _ := nuevoServicio()

	_, err := svc.ListarPorGrupo(context.Background(), "", domain.OptionalInt64{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}
