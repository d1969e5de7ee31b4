package http

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// LoginThrottle limita los fallos de login por email + IP.
// Lo implementa *cache.LoginThrottle (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, time.Duration, error)
	RegisterFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// loginGuard envuelve el throttle: si Redis falla, el login sigue funcionando y se registra el error.
type loginGuard struct {
	throttle LoginThrottle
	log      *logger.Logger
}

func throttleKey(c *fiber.Ctx, email string) string {
	return entity.NormalizeEmail(email) + "|" + c.IP()
}

// check devuelve ErrRateLimited y fija Retry-After si la clave está bloqueada.
func (g loginGuard) check(c *fiber.Ctx, key string) error {
	if g.throttle == nil {
		return nil
	}
	blocked, retry, err := g.throttle.Blocked(c.Context(), key)
	if err != nil {
		g.log.Warn().Err(err).Msg("throttle no disponible")
		return nil
	}
	if !blocked {
		return nil
	}
	secs := int(math.Ceil(retry.Seconds()))
	if secs < 1 {
		secs = 1
	}
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
	return domain.ErrRateLimited
}

func (g loginGuard) failed(c *fiber.Ctx, key string) {
	if g.throttle == nil {
		return
	}
	if err := g.throttle.RegisterFailure(c.Context(), key); err != nil {
		g.log.Warn().Err(err).Msg("no se pudo registrar el intento fallido")
	}
}

func (g loginGuard) succeeded(c *fiber.Ctx, key string) {
	if g.throttle == nil {
		return
	}
	if err := g.throttle.Reset(c.Context(), key); err != nil {
		g.log.Warn().Err(err).Msg("no se pudo limpiar el contador de intentos")
	}
}
