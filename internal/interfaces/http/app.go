package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// maxBodySize tope del cuerpo de las peticiones; ningún endpoint recibe archivos.
const maxBodySize = 1 << 20

// NewApp construye la app Fiber con el manejo de errores, recuperación de pánicos,
// request id y log de accesos. Las rutas se montan después con Router.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    maxBodySize,
		ErrorHandler: ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(RequestLogger(log.Component("access")))
	return app
}

// RequestLogger registra método, ruta, status y duración de cada petición.
// Los 5xx van a nivel error; los 4xx a warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El ErrorHandler escribe la respuesta; así el status registrado es el definitivo.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Interface("request_id", c.Locals("requestid")).
			Str("account_id", GetAccountID(c)).
			Msg("petición")
		return nil
	}
}
