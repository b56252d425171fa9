package movimiento

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
)

// MovimientoService define el contrato que el Handler espera de la capa de
// Servicio.
type MovimientoService interface {
	Listar(ctx context.Context, filtro domain.MovimientoFiltro) (domain.MovimientoPagina, error)
}

// Handler agrupa los métodos HTTP del feed de movimientos.
type Handler struct {
	Service MovimientoService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y
// el Logger.
func NewHandler(svc MovimientoService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falla al codificar el JSON de respuesta", jsonErr)
				http.Error(w, "Error al codificar la respuesta", http.StatusInternalServerError)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Error de servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Petición rechazada con estatus %d. Categoría: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// ListarHandler atiende GET /v1/movimientos.
// @Summary Feed paginado de movimientos
// @Description Retorna el historial de movimientos con filtros por tipo, rango de fechas y búsqueda libre.
// @Tags movimientos
// @Produce json
// @Param q query string false "Búsqueda libre (producto, número, aula, empleado)"
// @Param tipo query string false "alta | cambio | reubicacion | baja"
// @Param desde query string false "Fecha inicial YYYY-MM-DD (inclusiva)"
// @Param hasta query string false "Fecha final YYYY-MM-DD (inclusiva)"
// @Param page query int false "Página, desde 1"
// @Param limit query int false "Tamaño de página, máximo 100"
// @Success 200 {object} domain.MovimientoPagina "Página del feed"
// @Failure 400 {object} domain.ErrorResponse "Parámetros inválidos"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /movimientos [get]
func (h *Handler) ListarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filtro := domain.MovimientoFiltro{
		Q:     q.Get("q"),
		Tipo:  q.Get("tipo"),
		Desde: q.Get("desde"),
		Hasta: q.Get("hasta"),
	}
	// Page y Limit malformados caen a los valores por defecto del servicio.
	filtro.Page, _ = strconv.Atoi(q.Get("page"))
	filtro.Limit, _ = strconv.Atoi(q.Get("limit"))

	pagina, err := h.Service.Listar(r.Context(), filtro)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, pagina, nil, http.StatusOK)
}
