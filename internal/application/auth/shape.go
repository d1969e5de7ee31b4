package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// ShapeUser construye la respuesta de usuario según el rol de la cuenta.
// Login, registros y GET /auth/profile pasan todos por aquí.
func ShapeUser(ctx context.Context, s repository.Store, acc *entity.Account) (*dto.UserResponse, error) {
	out := &dto.UserResponse{
		ID:        acc.ID,
		Email:     acc.Email,
		Role:      string(acc.Role),
		Active:    acc.Active,
		CreatedAt: acc.CreatedAt,
	}

	switch acc.Role {
	case entity.RolePersonal:
		profile, err := s.PersonalProfiles().GetByAccountID(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("shape: perfil personal: %w", err)
		}
		if profile == nil {
			return nil, fmt.Errorf("shape: cuenta %s sin perfil personal", acc.ID)
		}
		out.ProfileType = dto.ProfileTypePersonal
		out.Personal = mapper.PersonalProfile(profile)

	case entity.RoleCompanyAdmin:
		ids, err := s.CompanyAdmins().ListCompanyIDs(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("shape: empresas administradas: %w", err)
		}
		companies, err := s.Companies().ListByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("shape: cargar empresas: %w", err)
		}
		summaries := make([]dto.CompanySummary, 0, len(companies))
		for _, c := range companies {
			summaries = append(summaries, *mapper.CompanySummary(c))
		}
		out.ProfileType = dto.ProfileTypeCompanyAdmin
		out.CompanyAdmin = &dto.CompanyAdminResponse{Companies: summaries}

	case entity.RoleEmployee:
		emp, err := s.Employees().GetByAccountID(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("shape: perfil de empleado: %w", err)
		}
		if emp == nil {
			return nil, fmt.Errorf("shape: cuenta %s sin perfil de empleado", acc.ID)
		}
		out.ProfileType = dto.ProfileTypeEmployee
		if !emp.IsVisible() {
			// REJECTED: solo el estado, sin datos del perfil ni de la empresa.
			out.Employee = mapper.RejectedEmployee(emp)
			break
		}
		company, err := s.Companies().GetByID(ctx, emp.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("shape: empresa del empleado: %w", err)
		}
		out.Employee = mapper.Employee(emp, company)

	case entity.RoleSuperAdmin:
		out.ProfileType = dto.ProfileTypeSuperAdmin

	default:
		return nil, fmt.Errorf("shape: rol desconocido %q", acc.Role)
	}
	return out, nil
}
