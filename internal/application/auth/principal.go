package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
	"github.com/jhoicas/ophuaconnect-api/pkg/jwt"
)

// Principal cuenta autenticada de la petición, con las relaciones que usan los handlers.
type Principal struct {
	Account         *entity.Account
	AdminCompanyIDs []string                // solo COMPANY_ADMIN; informativo, la autorización consulta la DB
	Employee        *entity.EmployeeProfile // solo EMPLOYEE
}

// Role atajo al rol de la cuenta.
func (p *Principal) Role() entity.Role {
	if p == nil || p.Account == nil {
		return ""
	}
	return p.Account.Role
}

// HasRole informa si el rol de la cuenta está en roles.
func (p *Principal) HasRole(roles ...entity.Role) bool {
	r := p.Role()
	for _, allowed := range roles {
		if r != "" && r == allowed {
			return true
		}
	}
	return false
}

// Authenticator resuelve un bearer token en un Principal.
type Authenticator struct {
	store  repository.Store
	secret string
}

// NewAuthenticator construye el autenticador con el mismo secret que firma los tokens.
func NewAuthenticator(store repository.Store, secret string) *Authenticator {
	return &Authenticator{store: store, secret: secret}
}

// Authenticate verifica firma y expiración, y recarga la cuenta.
//
// Errores:
//   - domain.ErrTokenExpired  token vencido.
//   - domain.ErrTokenInvalid  firma, formato o claims incorrectos.
//   - domain.ErrUnauthorized  cuenta inexistente, inactiva o con rol distinto al del token.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := jwt.Parse(a.secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	acc, err := a.store.Accounts().GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: cargar cuenta: %w", err)
	}
	if acc == nil || !acc.Active || string(acc.Role) != claims.Role {
		return nil, domain.ErrUnauthorized
	}

	p := &Principal{Account: acc}
	switch acc.Role {
	case entity.RoleCompanyAdmin:
		ids, err := a.store.CompanyAdmins().ListCompanyIDs(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("authenticate: empresas administradas: %w", err)
		}
		p.AdminCompanyIDs = ids
	case entity.RoleEmployee:
		emp, err := a.store.Employees().GetByAccountID(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("authenticate: perfil de empleado: %w", err)
		}
		p.Employee = emp
	}
	return p, nil
}
