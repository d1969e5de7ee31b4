// Package mapper convierte entidades de dominio en DTOs de salida.
// Es el único lugar donde se decide qué campos de una entidad se exponen.
package mapper

import (
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
)

// Company entidad -> CompanyResponse.
func Company(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Email:       c.Email,
		Phone:       c.Phone,
		Website:     c.Website,
		Status:      string(c.Status),
		Theme:       Theme(c.Theme),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CompanySummary referencia corta.
func CompanySummary(c *entity.Company) *dto.CompanySummary {
	if c == nil {
		return nil
	}
	return &dto.CompanySummary{ID: c.ID, Name: c.Name, Slug: c.Slug, Status: string(c.Status)}
}

// Theme entidad -> ThemeDTO.
func Theme(t entity.Theme) dto.ThemeDTO {
	return dto.ThemeDTO{PrimaryColor: t.PrimaryColor, SecondaryColor: t.SecondaryColor, LogoURL: t.LogoURL}
}

// PersonalProfile entidad -> PersonalProfileResponse.
func PersonalProfile(p *entity.PersonalProfile) *dto.PersonalProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.PersonalProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Headline:  p.Headline,
		Bio:       p.Bio,
		Website:   p.Website,
		Slug:      p.Slug,
		UpdatedAt: p.UpdatedAt,
	}
}

// Employee entidad -> EmployeeResponse. company puede ser nil.
func Employee(e *entity.EmployeeProfile, company *entity.Company) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		AccountID:  e.AccountID,
		FullName:   e.FullName,
		Position:   e.Position,
		Phone:      e.Phone,
		Bio:        e.Bio,
		Slug:       e.Slug,
		Status:     string(e.Status),
		Company:    CompanySummary(company),
		ReviewedAt: e.ReviewedAt,
		CreatedAt:  e.CreatedAt,
	}
}

// RejectedEmployee vista mínima de un empleado REJECTED para su propia sesión.
func RejectedEmployee(e *entity.EmployeeProfile) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		AccountID:  e.AccountID,
		Status:     string(e.Status),
		ReviewedAt: e.ReviewedAt,
		CreatedAt:  e.CreatedAt,
	}
}

// Account entidad -> AccountResponse (nunca incluye el hash).
func Account(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      string(a.Role),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
