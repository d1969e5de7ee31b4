package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
)

// scopeChecker lo implementa *auth.ScopeChecker.
type scopeChecker interface {
	RequireCompanyScope(ctx context.Context, p *auth.Principal, companyID string) error
}

// RequireRole deja pasar solo a las cuentas con alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return domain.ErrUnauthorized
		}
		if !p.HasRole(roles...) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// RequireCompanyScope verifica que el Principal administra la empresa del parámetro de ruta
// (SUPER_ADMIN siempre pasa). La consulta va a la DB en cada petición.
func RequireCompanyScope(param string, checker scopeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return domain.ErrUnauthorized
		}
		if err := checker.RequireCompanyScope(c.Context(), p, c.Params(param)); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireApprovedEmployee corta antes del handler a los empleados PENDING o REJECTED.
// El caso de uso vuelve a comprobarlo contra la DB.
func RequireApprovedEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return domain.ErrUnauthorized
		}
		if p.Role() != entity.RoleEmployee || !p.Employee.IsApproved() {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}
