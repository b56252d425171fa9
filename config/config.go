package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config almacena todas las configuraciones de la aplicación de inventario.
// Todos los campos se cargan de variables de entorno (BD, caché, seguridad,
// rate limiting).
type Config struct {
	// General
	Port        string
	Environment string
	LogLevel    string

	// Base de datos (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Caché (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Seguridad (JWT emitido por el proveedor de identidad)
	JWTSecretKey string

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carga las configuraciones a partir de las variables de entorno.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. General
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Base de datos (PostgreSQL)
		// mustGetEnv garantiza que la aplicación no arranque sin credenciales.
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Caché (Redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 4. Seguridad (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),

		// 5. Rate limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	return cfg
}

// --- Funciones auxiliares ---

// getEnv lee la variable de entorno o retorna el valor por defecto.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lee la variable de entorno; fatal si no está definida.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("Error de configuración: la variable de entorno %s debe estar definida.", key)
	return ""
}

// getDurationEnv lee una variable numérica y la retorna como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: el valor de %s ('%s') no es un entero válido. Usando el valor por defecto (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lee una variable numérica y la retorna como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: el valor de %s ('%s') no es un entero válido. Usando el valor por defecto (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
