package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
)

// LocalPrincipal key de c.Locals con el *auth.Principal de la petición.
const LocalPrincipal = "principal"

// authenticator lo implementa *auth.Authenticator.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// AuthMiddleware valida el Bearer Token, recarga la cuenta y deja el Principal en c.Locals.
//
// Errores:
//   - 401 UNAUTHORIZED   header ausente o mal formado, cuenta inactiva o inexistente.
//   - 401 TOKEN_INVALID  firma o claims incorrectos.
//   - 401 TOKEN_EXPIRED  token vencido.
func AuthMiddleware(authn authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return domain.ErrUnauthorized
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.ErrUnauthorized
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return domain.ErrUnauthorized
		}
		p, err := authn.Authenticate(c.Context(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después de AuthMiddleware), o nil.
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}

// GetAccountID atajo al id de la cuenta autenticada.
func GetAccountID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil && p.Account != nil {
		return p.Account.ID
	}
	return ""
}
