package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// Códigos estables que ve el cliente.
const (
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeEmailTaken             = "EMAIL_TAKEN"
	CodeCompanyNotFound        = "COMPANY_NOT_FOUND"
	CodeForbidden              = "FORBIDDEN"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeTokenInvalid           = "TOKEN_INVALID"
	CodeTokenExpired           = "TOKEN_EXPIRED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeSlugTaken              = "SLUG_TAKEN"
	CodeRateLimited            = "RATE_LIMITED"
	CodeInternal               = "INTERNAL_ERROR"
)

// errorMapping error de dominio -> status + code + mensaje fijo.
// Si detail es true el mensaje es err.Error(): lo construyen los use cases y no contiene datos internos.
var errorMappings = []struct {
	err     error
	status  int
	code    string
	message string
	detail  bool
}{
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, CodeInvalidCredentials, "email o contraseña incorrectos", false},
	{domain.ErrEmailTaken, fiber.StatusBadRequest, CodeEmailTaken, "el email ya está registrado", false},
	{domain.ErrCompanyNotFound, fiber.StatusNotFound, CodeCompanyNotFound, "la empresa no existe", false},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden, "no tiene permisos para esta operación", false},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized, "autenticación requerida", false},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized, CodeTokenExpired, "el token expiró", false},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized, CodeTokenInvalid, "token inválido", false},
	{domain.ErrInvalidStateTransition, fiber.StatusConflict, CodeInvalidStateTransition, "", true},
	{domain.ErrValidation, fiber.StatusBadRequest, CodeValidation, "", true},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado", false},
	{domain.ErrSlugTaken, fiber.StatusConflict, CodeSlugTaken, "el identificador público ya está en uso, intente de nuevo", false},
	{domain.ErrRateLimited, fiber.StatusTooManyRequests, CodeRateLimited, "demasiados intentos, intente más tarde", false},
}

// writeError traduce err a la respuesta JSON. Lo no reconocido es 500 INTERNAL_ERROR
// y el detalle solo queda en el log.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			msg := m.message
			if m.detail {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = CodeValidation
		}
		if fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
	}

	if log == nil {
		log = logger.Nop()
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"})
}

// ErrorHandler para fiber.Config: los handlers devuelven errores de dominio tal cual
// y aquí se traducen. También recibe los pánicos recuperados por recover.New().
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, log, err)
	}
}
