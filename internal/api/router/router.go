package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Denjimex/mi-proyecto-inventario/internal/api/ejemplar"
	"github.com/Denjimex/mi-proyecto-inventario/internal/api/movimiento"
	"github.com/Denjimex/mi-proyecto-inventario/internal/domain"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/cache"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/middleware"
)

// NewRouter configura y retorna el enrutador HTTP principal.
// Recibe los Handlers ya inicializados por inyección de dependencias.
func NewRouter(
	ejemplarHandler *ejemplar.Handler,
	movimientoHandler *movimiento.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos el ServeMux estándar de net/http para el enrutamiento.
	mux := http.NewServeMux()

	// Cadenas de middleware: toda ruta de negocio exige un token válido;
	// las mutaciones masivas exigen además rol admin o editor.
	auth := middleware.NewAuthMiddleware(tokenSvc)
	soloEscritura := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleEditor)
	cualquierRol := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleEditor, domain.RoleLector)

	// --- 1. Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Mutaciones masivas de Ejemplares (v1) ---
	mux.HandleFunc("/v1/ejemplares/estado-bulk", auth(soloEscritura(ejemplarHandler.CambiarEstadoMasivoHandler)))
	mux.HandleFunc("/v1/ejemplares/move-bulk", auth(soloEscritura(ejemplarHandler.ReubicarMasivoHandler)))
	mux.HandleFunc("/v1/ejemplares/remove-bulk", auth(soloEscritura(ejemplarHandler.BajaMasivaHandler)))
	mux.HandleFunc("/v1/ejemplares/add", auth(soloEscritura(ejemplarHandler.AltaMasivaHandler)))

	// --- 3. Lecturas (v1) ---
	mux.HandleFunc("/v1/ejemplares/resumen", auth(cualquierRol(ejemplarHandler.ResumenGruposHandler)))
	mux.HandleFunc("/v1/ejemplares", auth(cualquierRol(ejemplarHandler.ListarPorGrupoHandler)))
	mux.HandleFunc("/v1/movimientos", auth(cualquierRol(movimientoHandler.ListarHandler)))

	// --- 4. Documentación Swagger ---
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 5. Middlewares globales ---
	// El limitador de tasa por IP envuelve todo el mux.
	return middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(mux)
}

// PingHandler es la función utilitaria para el health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
