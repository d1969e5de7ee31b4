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

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// Toda operación pasa por el ScopeChecker aunque la ruta ya lo haya verificado.
type CompanyUseCase struct {
	store repository.Store
	scope *auth.ScopeChecker
	links Links
	log   *logger.Logger
	now   func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(store repository.Store, scope *auth.ScopeChecker, links Links, log *logger.Logger) *CompanyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CompanyUseCase{store: store, scope: scope, links: links, log: log.Component("company"), now: time.Now}
}

// Get obtiene una empresa por ID dentro del alcance del principal.
func (uc *CompanyUseCase) Get(ctx context.Context, p *auth.Principal, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, p, companyID)
	if err != nil {
		return nil, err
	}
	return mapper.Company(company), nil
}

// Update edita los campos presentes en in. El slug no cambia nunca.
func (uc *CompanyUseCase) Update(ctx context.Context, p *auth.Principal, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, p, companyID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrValidation)
		}
		company.Name = name
	}
	setTrimmed(&company.Description, in.Description)
	if in.Email != nil {
		company.Email = entity.NormalizeEmail(*in.Email)
	}
	setTrimmed(&company.Phone, in.Phone)
	setTrimmed(&company.Website, in.Website)
	if in.PrimaryColor != nil {
		company.Theme.PrimaryColor = strings.ToUpper(*in.PrimaryColor)
	}
	if in.SecondaryColor != nil {
		company.Theme.SecondaryColor = strings.ToUpper(*in.SecondaryColor)
	}
	setTrimmed(&company.Theme.LogoURL, in.LogoURL)
	company.UpdatedAt = uc.now()

	if err := uc.store.Companies().Update(ctx, company); err != nil {
		return nil, fmt.Errorf("actualizar empresa: %w", err)
	}
	uc.log.Info().Str("company_id", company.ID).Str("by", p.Account.ID).Msg("perfil de empresa actualizado")
	return mapper.Company(company), nil
}

// InviteLink devuelve el enlace que la empresa comparte para que sus empleados se registren.
func (uc *CompanyUseCase) InviteLink(ctx context.Context, p *auth.Principal, companyID string) (*dto.InviteLinkResponse, error) {
	company, err := uc.load(ctx, p, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.InviteLinkResponse{
		CompanySlug:  company.Slug,
		InviteURL:    uc.links.Invite(company.Slug),
		RegisterPath: RegisterEmployeePath(company.Slug),
	}, nil
}

// SetStatus cambia el estado de una empresa. Solo SUPER_ADMIN.
func (uc *CompanyUseCase) SetStatus(ctx context.Context, p *auth.Principal, companyID string, in dto.CompanyStatusRequest) (*dto.CompanyResponse, error) {
	if !p.HasRole(entity.RoleSuperAdmin) {
		return nil, domain.ErrForbidden
	}
	status := entity.CompanyStatus(strings.ToUpper(in.Status))
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado de empresa desconocido %q", domain.ErrValidation, in.Status)
	}
	company, err := uc.store.Companies().GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.store.Companies().SetStatus(ctx, companyID, status); err != nil {
		return nil, fmt.Errorf("cambiar estado de empresa: %w", err)
	}
	uc.log.Info().Str("company_id", companyID).Str("status", string(status)).Str("by", p.Account.ID).Msg("estado de empresa actualizado")
	company.Status = status
	return mapper.Company(company), nil
}

// List lista empresas con paginación. Solo SUPER_ADMIN.
func (uc *CompanyUseCase) List(ctx context.Context, p *auth.Principal, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if !p.HasRole(entity.RoleSuperAdmin) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.store.Companies().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *mapper.Company(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// load verifica alcance y luego carga la empresa. Sin alcance no se revela si existe.
func (uc *CompanyUseCase) load(ctx context.Context, p *auth.Principal, companyID string) (*entity.Company, error) {
	if err := uc.scope.RequireCompanyScope(ctx, p, companyID); err != nil {
		return nil, err
	}
	company, err := uc.store.Companies().GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
