package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss indica que la clave no existe en el cache.
var ErrCacheMiss = redis.Nil

// RedisClient cliente de cache sobre Redis. Implementa inventory.Cache y da
// soporte al rate limiter (Incr).
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient conecta a Redis y verifica con PING.
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisClient{rdb: rdb}, nil
}

// Get recupera el valor de una clave; "" y ErrCacheMiss si no existe.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set define un valor con tiempo de expiración.
func (c *RedisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete elimina una clave (0 borradas si no existe).
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Incr incrementa un contador; crea la clave en 1 con expiración en el primer uso.
// Usado por el rate limiter del login.
func (c *RedisClient) Incr(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = c.rdb.Expire(ctx, key, expiration).Err()
	}
	return count, nil
}

// Close cierra la conexión.
func (c *RedisClient) Close() error { return c.rdb.Close() }
