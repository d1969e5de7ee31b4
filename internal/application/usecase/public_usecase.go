package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// publicEmployeeLimit tope de empleados listados en la página pública de una empresa.
const publicEmployeeLimit = 100

// PublicUseCase directorio público: páginas de empresa y perfiles, y sus tarjetas PDF.
// Solo expone empresas ACTIVE, empleados APPROVED y cuentas activas; todo lo demás es NotFound.
type PublicUseCase struct {
	store repository.Store
	cards CardGenerator
	links Links
}

// NewPublicUseCase construye el caso de uso. cards puede ser nil si no se sirven PDFs.
func NewPublicUseCase(store repository.Store, cards CardGenerator, links Links) *PublicUseCase {
	return &PublicUseCase{store: store, cards: cards, links: links}
}

// Company página pública de la empresa con sus empleados aprobados.
func (uc *PublicUseCase) Company(ctx context.Context, slug string) (*dto.PublicCompanyResponse, error) {
	company, err := uc.company(ctx, slug)
	if err != nil {
		return nil, err
	}
	list, err := uc.store.Employees().ListByCompany(ctx, company.ID, entity.EmployeeApproved, publicEmployeeLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listar empleados: %w", err)
	}
	employees := make([]dto.PublicEmployeeSummary, 0, len(list))
	for _, e := range list {
		if !e.IsApproved() {
			continue
		}
		employees = append(employees, dto.PublicEmployeeSummary{FullName: e.FullName, Position: e.Position, Slug: e.Slug})
	}
	return &dto.PublicCompanyResponse{
		Name:        company.Name,
		Slug:        company.Slug,
		Description: company.Description,
		Email:       company.Email,
		Phone:       company.Phone,
		Website:     company.Website,
		Theme:       mapper.Theme(company.Theme),
		PublicURL:   uc.links.Company(company.Slug),
		Employees:   employees,
	}, nil
}

// Profile perfil público por slug: personal o empleado aprobado de una empresa activa.
func (uc *PublicUseCase) Profile(ctx context.Context, slug string) (*dto.PublicProfileResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	ref, err := uc.store.ProfileSlugs().Get(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("buscar slug: %w", err)
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}

	switch ref.Kind {
	case entity.ProfilePersonal:
		profile, err := uc.store.PersonalProfiles().GetByID(ctx, ref.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("buscar perfil personal: %w", err)
		}
		if profile == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.requireActiveAccount(ctx, profile.AccountID); err != nil {
			return nil, err
		}
		return &dto.PublicProfileResponse{
			ProfileType: dto.ProfileTypePersonal,
			FullName:    profile.FullName,
			Headline:    profile.Headline,
			Bio:         profile.Bio,
			Phone:       profile.Phone,
			Website:     profile.Website,
			Slug:        profile.Slug,
			PublicURL:   uc.links.Profile(profile.Slug),
		}, nil

	case entity.ProfileEmployee:
		emp, err := uc.store.Employees().GetByID(ctx, ref.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("buscar empleado: %w", err)
		}
		if !emp.IsApproved() {
			return nil, domain.ErrNotFound
		}
		company, err := uc.store.Companies().GetByID(ctx, emp.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("buscar empresa: %w", err)
		}
		if !company.IsPublic() {
			return nil, domain.ErrNotFound
		}
		if err := uc.requireActiveAccount(ctx, emp.AccountID); err != nil {
			return nil, err
		}
		theme := mapper.Theme(company.Theme)
		return &dto.PublicProfileResponse{
			ProfileType: dto.ProfileTypeEmployee,
			FullName:    emp.FullName,
			Position:    emp.Position,
			Bio:         emp.Bio,
			Phone:       emp.Phone,
			Website:     company.Website,
			Slug:        emp.Slug,
			PublicURL:   uc.links.Profile(emp.Slug),
			Company:     mapper.CompanySummary(company),
			Theme:       &theme,
		}, nil
	}
	return nil, domain.ErrNotFound
}

// CompanyCard tarjeta de contacto PDF de la empresa.
func (uc *PublicUseCase) CompanyCard(ctx context.Context, slug string) ([]byte, error) {
	company, err := uc.company(ctx, slug)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, dto.ContactCard{
		Title:          company.Name,
		Subtitle:       company.Description,
		Lines:          nonEmpty(company.Phone, company.Email, company.Website),
		URL:            uc.links.Company(company.Slug),
		PrimaryColor:   company.Theme.PrimaryColor,
		SecondaryColor: company.Theme.SecondaryColor,
	})
}

// ProfileCard tarjeta de contacto PDF de un perfil público.
func (uc *PublicUseCase) ProfileCard(ctx context.Context, slug string) ([]byte, error) {
	profile, err := uc.Profile(ctx, slug)
	if err != nil {
		return nil, err
	}
	card := dto.ContactCard{
		Title: profile.FullName,
		Lines: nonEmpty(profile.Phone, profile.Website),
		URL:   profile.PublicURL,
	}
	switch {
	case profile.Company != nil:
		card.Subtitle = strings.TrimSpace(strings.Join(nonEmpty(profile.Position, profile.Company.Name), " · "))
	default:
		card.Subtitle = profile.Headline
	}
	if profile.Theme != nil {
		card.PrimaryColor = profile.Theme.PrimaryColor
		card.SecondaryColor = profile.Theme.SecondaryColor
	}
	return uc.render(ctx, card)
}

func (uc *PublicUseCase) render(ctx context.Context, card dto.ContactCard) ([]byte, error) {
	if uc.cards == nil {
		return nil, domain.ErrNotFound
	}
	if card.PrimaryColor == "" {
		card.PrimaryColor = entity.DefaultTheme().PrimaryColor
	}
	out, err := uc.cards.GenerateCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("generar tarjeta: %w", err)
	}
	return out, nil
}

func (uc *PublicUseCase) company(ctx context.Context, slug string) (*entity.Company, error) {
	company, err := uc.store.Companies().GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if !company.IsPublic() {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (uc *PublicUseCase) requireActiveAccount(ctx context.Context, accountID string) error {
	acc, err := uc.store.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("buscar cuenta: %w", err)
	}
	if acc == nil || !acc.Active {
		return domain.ErrNotFound
	}
	return nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
