// Package cache adaptadores sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "ophua:login:fail:"

// LoginThrottle cuenta intentos de login fallidos por clave (email + IP) en una ventana fija.
// Al llegar a maxAttempts la clave queda bloqueada hasta que expire la ventana.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle construye el limitador sobre un cliente ya conectado.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked informa si la clave agotó sus intentos y cuánto falta para liberarse.
func (t *LoginThrottle) Blocked(ctx context.Context, key string) (bool, time.Duration, error) {
	k := loginKeyPrefix + normalizeKey(key)
	n, err := t.client.Get(ctx, k).Int64()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("login throttle get: %w", err)
	}
	if n < t.maxAttempts {
		return false, 0, nil
	}
	ttl, err := t.client.TTL(ctx, k).Result()
	if err != nil {
		return true, t.window, nil
	}
	return true, ttl, nil
}

// RegisterFailure suma un intento fallido. La ventana arranca con el primer fallo.
func (t *LoginThrottle) RegisterFailure(ctx context.Context, key string) error {
	k := loginKeyPrefix + normalizeKey(key)
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("login throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return fmt.Errorf("login throttle expire: %w", err)
		}
	}
	return nil
}

// Reset limpia el contador tras un login correcto.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, loginKeyPrefix+normalizeKey(key)).Err(); err != nil {
		return fmt.Errorf("login throttle reset: %w", err)
	}
	return nil
}

// Ping verifica la conexión (health check).
func (t *LoginThrottle) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
