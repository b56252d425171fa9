package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define el contrato de interfaz para cualquier servicio de caché
// que el Repositorio o el middleware puedan usar (Inversión de
// Dependencias: las capas superiores no conocen Redis).
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	GetInt(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Incr(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss se retorna cuando la clave no existe en el caché.
var ErrCacheMiss = redis.Nil

// RedisClient es la implementación concreta de la interfaz Client usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient crea y retorna una nueva instancia del cliente Redis.
// Esta función se llama en main.go. El caché no es crítico para la
// corrección del sistema (solo acelera lecturas y sostiene el rate limit),
// así que una falla de conexión aquí se reporta pero no detiene el arranque.
func NewRedisClient(addr string) (Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return &RedisClient{rdb: rdb}, fmt.Errorf("no se pudo conectar a Redis en %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get recupera el valor asociado a una clave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// GetInt recupera el valor de una clave interpretado como entero.
// Lo usa el rate limiter para leer el contador por IP.
func (c *RedisClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

// Set define un valor para una clave con un tiempo de expiración.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Incr incrementa atómicamente el contador almacenado en la clave.
func (c *RedisClient) Incr(ctx context.Context, key string) error {
	return c.rdb.Incr(ctx, key).Err()
}

// Delete elimina una clave del caché.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	// Comando DEL; retorna cuántas claves se eliminaron (0 si no existía).
	return c.rdb.Del(ctx, key).Err()
}
