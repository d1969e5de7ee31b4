package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// EmployeeUseCase aprobación de empleados y autoservicio del empleado aprobado.
type EmployeeUseCase struct {
	store repository.Store
	scope *auth.ScopeChecker
	log   *logger.Logger
	now   func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(store repository.Store, scope *auth.ScopeChecker, log *logger.Logger) *EmployeeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EmployeeUseCase{store: store, scope: scope, log: log.Component("employee"), now: time.Now}
}

// Approve mueve el empleado de PENDING a APPROVED.
func (uc *EmployeeUseCase) Approve(ctx context.Context, p *auth.Principal, employeeID string) (*dto.EmployeeResponse, error) {
	return uc.review(ctx, p, employeeID, entity.EmployeeApproved)
}

// Reject mueve el empleado de PENDING a REJECTED. Desde ahí deja de aparecer en cualquier lectura.
func (uc *EmployeeUseCase) Reject(ctx context.Context, p *auth.Principal, employeeID string) (*dto.EmployeeResponse, error) {
	return uc.review(ctx, p, employeeID, entity.EmployeeRejected)
}

// review orden: cargar (NotFound) -> alcance (Forbidden) -> transición de dominio ->
// update condicionado al estado leído. Si otra petición ganó la carrera, ninguna fila
// cambia y el store devuelve ErrInvalidStateTransition.
func (uc *EmployeeUseCase) review(ctx context.Context, p *auth.Principal, employeeID string, to entity.EmployeeStatus) (*dto.EmployeeResponse, error) {
	if p == nil || p.Account == nil {
		return nil, domain.ErrUnauthorized
	}
	emp, err := uc.store.Employees().GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("buscar empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.scope.RequireCompanyScope(ctx, p, emp.CompanyID); err != nil {
		uc.log.Warn().Str("employee_id", emp.ID).Str("by", p.Account.ID).Msg("revisión fuera de alcance")
		return nil, err
	}

	from := emp.Status
	now := uc.now()
	if to == entity.EmployeeApproved {
		err = emp.Approve(p.Account.ID, now)
	} else {
		err = emp.Reject(p.Account.ID, now)
	}
	if err != nil {
		return nil, err
	}
	if err := uc.store.Employees().TransitionStatus(ctx, emp, from); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("employee_id", emp.ID).
		Str("company_id", emp.CompanyID).
		Str("status", string(emp.Status)).
		Str("by", p.Account.ID).
		Msg("empleado revisado")

	company, err := uc.store.Companies().GetByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	return mapper.Employee(emp, company), nil
}

// ListByCompany empleados visibles de la empresa. status vacío = PENDING y APPROVED.
func (uc *EmployeeUseCase) ListByCompany(ctx context.Context, p *auth.Principal, companyID, status string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	if err := uc.scope.RequireCompanyScope(ctx, p, companyID); err != nil {
		return nil, err
	}
	filter := entity.EmployeeStatus(strings.ToUpper(strings.TrimSpace(status)))
	if filter != "" && filter != entity.EmployeePending && filter != entity.EmployeeApproved {
		return nil, fmt.Errorf("%w: status debe ser PENDING o APPROVED", domain.ErrValidation)
	}
	company, err := uc.store.Companies().GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	page.DefaultPage()
	list, err := uc.store.Employees().ListByCompany(ctx, companyID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar empleados: %w", err)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		if !e.IsVisible() {
			continue
		}
		items = append(items, *mapper.Employee(e, company))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetMe perfil del empleado autenticado. Requiere APPROVED.
func (uc *EmployeeUseCase) GetMe(ctx context.Context, p *auth.Principal) (*dto.EmployeeResponse, error) {
	emp, err := uc.approvedSelf(ctx, p)
	if err != nil {
		return nil, err
	}
	company, err := uc.store.Companies().GetByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	return mapper.Employee(emp, company), nil
}

// UpdateMe edita el perfil propio. Requiere APPROVED; el estado y la empresa no se tocan.
func (uc *EmployeeUseCase) UpdateMe(ctx context.Context, p *auth.Principal, in dto.UpdateEmployeeProfileRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.approvedSelf(ctx, p)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrValidation)
		}
		emp.FullName = name
	}
	setTrimmed(&emp.Position, in.Position)
	setTrimmed(&emp.Phone, in.Phone)
	setTrimmed(&emp.Bio, in.Bio)
	emp.UpdatedAt = uc.now()

	if err := uc.store.Employees().Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("actualizar empleado: %w", err)
	}
	company, err := uc.store.Companies().GetByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	return mapper.Employee(emp, company), nil
}

// approvedSelf recarga el perfil desde el store: el estado pudo cambiar desde que se emitió el token.
func (uc *EmployeeUseCase) approvedSelf(ctx context.Context, p *auth.Principal) (*entity.EmployeeProfile, error) {
	if p == nil || p.Account == nil {
		return nil, domain.ErrUnauthorized
	}
	if p.Role() != entity.RoleEmployee {
		return nil, domain.ErrForbidden
	}
	emp, err := uc.store.Employees().GetByAccountID(ctx, p.Account.ID)
	if err != nil {
		return nil, fmt.Errorf("buscar empleado: %w", err)
	}
	if !emp.IsApproved() {
		return nil, domain.ErrForbidden
	}
	return emp, nil
}
