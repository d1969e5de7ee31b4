package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// Pinger lo implementan *pgxpool.Pool y *cache.LoginThrottle.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthHandler chequeo de dependencias (base de datos y, si está configurado, Redis).
type HealthHandler struct {
	checks map[string]Pinger
	log    *logger.Logger
}

// NewHealthHandler recibe las dependencias por nombre; las nil se omiten.
func NewHealthHandler(checks map[string]Pinger, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.Nop()
	}
	clean := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			clean[name] = p
		}
	}
	return &HealthHandler{checks: clean, log: log.Component("health")}
}

// HealthResponse estado global y por dependencia.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	out := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := fiber.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Error().Err(err).Str("check", name).Msg("dependencia no disponible")
			out.Checks[name] = "unhealthy"
			status = fiber.StatusServiceUnavailable
			out.Status = "unhealthy"
			continue
		}
		out.Checks[name] = "ok"
	}
	return c.Status(status).JSON(out)
}
