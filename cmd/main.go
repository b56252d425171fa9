package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nuestros paquetes de infraestructura y utilitarios
	"github.com/Denjimex/mi-proyecto-inventario/config"
	_ "github.com/Denjimex/mi-proyecto-inventario/docs"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/cache"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/database"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/logger"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/token"

	// Capas del dominio para la inyección de dependencias
	"github.com/Denjimex/mi-proyecto-inventario/internal/api/ejemplar"
	"github.com/Denjimex/mi-proyecto-inventario/internal/api/movimiento"
	"github.com/Denjimex/mi-proyecto-inventario/internal/api/router"
	"github.com/Denjimex/mi-proyecto-inventario/internal/repository/ejemplarrepo"
	"github.com/Denjimex/mi-proyecto-inventario/internal/repository/movimientorepo"
	"github.com/Denjimex/mi-proyecto-inventario/internal/service/ejemplarservice"
	"github.com/Denjimex/mi-proyecto-inventario/internal/service/movimientoservice"
)

func main() {
	// 1. Configuración e inicialización
	stdlog.Println("⚡ Inicializando el servicio de inventario...")

	// 0. CARGAR VARIABLES DE ENTORNO (.env)
	// godotenv.Load() busca un archivo .env en la raíz. Si no existe,
	// avisamos y continuamos: las variables esenciales pueden venir del
	// entorno del sistema (ej. Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: archivo .env no encontrado. Cargando configuración solo del entorno del sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configuración cargada.", nil)

	// 2. Conexión a recursos de infraestructura

	// A. Base de datos (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falla al conectar a la base de datos.", err)
	}
	defer db.Close()
	log.Info("Conexión PostgreSQL establecida.", nil)

	// B. Cache (Redis)
	// El caché no es crítico: si Redis no responde al arranque seguimos sin
	// él y el repositorio cae siempre a la BD.
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis no disponible al arranque. Continuando sin caché caliente.", map[string]interface{}{"error": err.Error()})
	} else {
		log.Info("Conexión Redis establecida.", nil)
	}

	// 3. INYECCIÓN DE DEPENDENCIAS
	// Orden: Repository -> Service -> Handler

	// A. Repositorios (acceso a datos)
	ejemplarRepo := ejemplarrepo.NewEjemplarRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	movimientoRepo := movimientorepo.NewMovimientoRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositorios inicializados.", nil)

	// B. Servicios (lógica de negocio)
	ejemplarSvc := ejemplarservice.NewService(ejemplarRepo, movimientoRepo, log)
	movimientoSvc := movimientoservice.NewService(movimientoRepo, log)
	log.Debug("Servicios inicializados.", nil)

	// C. Handlers (presentación)
	ejemplarHandler := ejemplar.NewHandler(ejemplarSvc, log)
	movimientoHandler := movimiento.NewHandler(movimientoSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// D. Servicio de tokens (validación de JWT del proveedor de identidad)
	tokenSvc := token.NewService(cfg.JWTSecretKey)
	log.Debug("Servicio de tokens JWT inicializado.", nil)

	// 4. Configuración e inicio del enrutador/servidor
	r := router.NewRouter(ejemplarHandler, movimientoHandler, tokenSvc, cacheClient,
		cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Ejecución y graceful shutdown
	go func() {
		log.Info("Servidor de inventario escuchando.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("El servidor falló.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Señal de apagado recibida. Cerrando el servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Apagado del servidor forzado.", err)
	}

	log.Info("Servidor cerrado con éxito.", nil)
}
