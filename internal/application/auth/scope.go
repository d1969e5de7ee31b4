package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// ScopeChecker verifica el alcance por empresa de una mutación.
// Obligatorio en toda ruta o caso de uso que modifique datos de una empresa.
type ScopeChecker struct {
	admins repository.CompanyAdminRepository
}

// NewScopeChecker construye el verificador sobre los vínculos CompanyAdminLink.
func NewScopeChecker(admins repository.CompanyAdminRepository) *ScopeChecker {
	return &ScopeChecker{admins: admins}
}

// RequireCompanyScope pasa si p es SUPER_ADMIN o si existe un CompanyAdminLink
// entre p y companyID. El vínculo se consulta en la DB en cada llamada.
func (s *ScopeChecker) RequireCompanyScope(ctx context.Context, p *Principal, companyID string) error {
	if p == nil || p.Account == nil {
		return domain.ErrUnauthorized
	}
	switch p.Account.Role {
	case entity.RoleSuperAdmin:
		return nil
	case entity.RoleCompanyAdmin:
		if companyID == "" {
			return domain.ErrForbidden
		}
		ok, err := s.admins.Exists(ctx, p.Account.ID, companyID)
		if err != nil {
			return fmt.Errorf("scope: consultar vínculo: %w", err)
		}
		if !ok {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}
