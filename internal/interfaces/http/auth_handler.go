package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// AuthHandler login, registros, perfil y cambio de contraseña.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	guard loginGuard
}

// NewAuthHandler construye el handler de auth. throttle puede ser nil (sin límite de intentos).
func NewAuthHandler(uc *auth.AuthUseCase, throttle LoginThrottle, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{uc: uc, guard: loginGuard{throttle: throttle, log: log.Component("login")}}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	key := throttleKey(c, in.Email)
	if err := h.guard.check(c, key); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.guard.failed(c, key)
		}
		return err
	}
	h.guard.succeeded(c, key)
	return c.JSON(out)
}

// RegisterPersonal godoc
// @Summary      Registrar profesional independiente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPersonalRequest  true  "cuenta y perfil personal"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register/personal [post]
func (h *AuthHandler) RegisterPersonal(c *fiber.Ctx) error {
	var in dto.RegisterPersonalRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterPersonal(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterCompany godoc
// @Summary      Registrar empresa con su administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "cuenta administradora y datos de la empresa"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register/company [post]
func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterCompany(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterEmployee godoc
// @Summary      Registrar empleado vía enlace de invitación
// @Description  El empleado queda PENDING hasta que un administrador de la empresa lo apruebe.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        companySlug  path  string                       true  "slug de la empresa"
// @Param        body         body  dto.RegisterEmployeeRequest  true  "cuenta y perfil de empleado"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/register/employee/{companySlug} [post]
func (h *AuthHandler) RegisterEmployee(c *fiber.Ctx) error {
	var in dto.RegisterEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterEmployee(c.Context(), c.Params("companySlug"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Profile godoc
// @Summary      Perfil de la cuenta autenticada
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Context(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      204  {string}  string  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.Context(), GetPrincipal(c), in); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
