package ejemplar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	apperror "github.com/Denjimex/mi-proyecto-inventario/internal/errors"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/middleware"
)

// EjemplarService define el contrato que el Handler espera de la capa de
// Servicio.
type EjemplarService interface {
	CambiarEstadoMasivo(ctx context.Context, req domain.CambioEstadoMasivoRequest) (domain.ResultadoMasivo, error)
	ReubicarMasivo(ctx context.Context, req domain.ReubicacionMasivaRequest) (domain.ResultadoMasivo, error)
	BajaMasiva(ctx context.Context, req domain.BajaMasivaRequest) (domain.ResultadoMasivo, error)
	AltaMasiva(ctx context.Context, req domain.AltaMasivaRequest) (domain.ResultadoAlta, error)
	ListarPorGrupo(ctx context.Context, productoID string, aulaID domain.OptionalInt64) ([]domain.Ejemplar, error)
	ResumenGrupos(ctx context.Context) ([]domain.GrupoResumen, error)
}

// Handler agrupa los métodos HTTP de ejemplares.
type Handler struct {
	Service EjemplarService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y
// el Logger.
func NewHandler(svc EjemplarService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse procesa errores del servicio y envía respuestas
// estandarizadas al cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Éxito
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

	// MANEJO DE ERRORES
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

// usuarioActuante extrae el id del usuario autenticado; las mutaciones lo
// registran en la bitácora de movimientos.
func usuarioActuante(ctx context.Context) *string {
	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return nil
	}
	id := claims.UserID
	return &id
}

// CambiarEstadoMasivoHandler atiende PATCH /v1/ejemplares/estado-bulk.
// @Summary Cambia el estado de un lote de ejemplares
// @Description Aplica un estado físico (o la baja) al subconjunto del grupo que resuelva desde el blob de números de inventario.
// @Tags ejemplares
// @Accept json
// @Produce json
// @Param cambio body domain.CambioEstadoMasivoRequest true "Grupo, números y estado a aplicar"
// @Success 200 {object} domain.ResultadoMasivo "Resultado de la conciliación"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares/estado-bulk [patch]
func (h *Handler) CambiarEstadoMasivoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req domain.CambioEstadoMasivoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifica el formato JSON."), http.StatusBadRequest)
		return
	}
	req.UsuarioID = usuarioActuante(ctx)

	resultado, err := h.Service.CambiarEstadoMasivo(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, resultado, nil, http.StatusOK)
}

// ReubicarMasivoHandler atiende POST /v1/ejemplares/move-bulk.
// @Summary Reubica un lote de ejemplares
// @Description Cambia aula y/o responsable del subconjunto del grupo que resuelva desde el blob de números.
// @Tags ejemplares
// @Accept json
// @Produce json
// @Param reubicacion body domain.ReubicacionMasivaRequest true "Origen, destino y números"
// @Success 200 {object} domain.ResultadoMasivo "Resultado de la conciliación"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido o destino vacío"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares/move-bulk [post]
func (h *Handler) ReubicarMasivoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req domain.ReubicacionMasivaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifica el formato JSON."), http.StatusBadRequest)
		return
	}
	req.UsuarioID = usuarioActuante(ctx)

	resultado, err := h.Service.ReubicarMasivo(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, resultado, nil, http.StatusOK)
}

// BajaMasivaHandler atiende POST /v1/ejemplares/remove-bulk.
// @Summary Da de baja un lote de ejemplares
// @Description Baja lógica por defecto; con definitivo=true elimina físicamente las filas.
// @Tags ejemplares
// @Accept json
// @Produce json
// @Param baja body domain.BajaMasivaRequest true "Grupo, números y modalidad de baja"
// @Success 200 {object} domain.ResultadoMasivo "Resultado de la conciliación"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares/remove-bulk [post]
func (h *Handler) BajaMasivaHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req domain.BajaMasivaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifica el formato JSON."), http.StatusBadRequest)
		return
	}
	req.UsuarioID = usuarioActuante(ctx)

	resultado, err := h.Service.BajaMasiva(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, resultado, nil, http.StatusOK)
}

// AltaMasivaHandler atiende POST /v1/ejemplares/add.
// @Summary Registra un lote de ejemplares nuevos
// @Description Crea un ejemplar por número de inventario, o Cantidad ejemplares sin número.
// @Tags ejemplares
// @Accept json
// @Produce json
// @Param alta body domain.AltaMasivaRequest true "Grupo, cantidad o números, y atributos iniciales"
// @Success 201 {object} domain.ResultadoAlta "Ejemplares insertados"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Números ya existentes"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares/add [post]
func (h *Handler) AltaMasivaHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req domain.AltaMasivaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifica el formato JSON."), http.StatusBadRequest)
		return
	}
	req.UsuarioID = usuarioActuante(ctx)

	resultado, err := h.Service.AltaMasiva(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, resultado, nil, http.StatusCreated)
}

// ListarPorGrupoHandler atiende GET /v1/ejemplares?producto_id=...&aula_id=...
// @Summary Lista los ejemplares de un grupo
// @Description Retorna los ejemplares del producto, opcionalmente filtrados por aula (aula_id=null para sin aula).
// @Tags ejemplares
// @Produce json
// @Param producto_id query string true "ID del producto"
// @Param aula_id query string false "ID del aula, o 'null' para ejemplares sin aula"
// @Success 200 {array} domain.Ejemplar "Ejemplares del grupo"
// @Failure 400 {object} domain.ErrorResponse "Parámetros inválidos"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares [get]
func (h *Handler) ListarPorGrupoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	productoID := r.URL.Query().Get("producto_id")

	// aula_id acepta tres estados también en la query: ausente = cualquier
	// aula, "null" = ejemplares sin aula, entero = esa aula.
	var aulaID domain.OptionalInt64
	if raw := r.URL.Query().Get("aula_id"); raw != "" {
		if raw == "null" {
			aulaID = domain.Int64Null()
		} else {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				h.handleServiceResponse(w, r, nil, apperror.NewValidationError("aula_id debe ser un entero o 'null'."), http.StatusBadRequest)
				return
			}
			aulaID = domain.Int64Set(v)
		}
	}

	ejemplares, err := h.Service.ListarPorGrupo(ctx, productoID, aulaID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, ejemplares, nil, http.StatusOK)
}

// ResumenGruposHandler atiende GET /v1/ejemplares/resumen.
// @Summary Resumen agregado por grupo
// @Description Retorna el modelo de lectura (total, dañados, aula, responsable) por grupo producto+aula.
// @Tags ejemplares
// @Produce json
// @Success 200 {array} domain.GrupoResumen "Resumen por grupo"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /ejemplares/resumen [get]
func (h *Handler) ResumenGruposHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	resumen, err := h.Service.ResumenGrupos(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, resumen, nil, http.StatusOK)
}
