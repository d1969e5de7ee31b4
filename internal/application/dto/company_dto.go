package dto

import "time"

// ThemeDTO colores y logo de la empresa.
type ThemeDTO struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
}

// UpdateCompanyRequest edición del perfil de empresa (campos opcionales). El slug no se edita.
type UpdateCompanyRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=160"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=40"`
	Website        *string `json:"website" validate:"omitempty,url,max=255"`
	PrimaryColor   *string `json:"primaryColor" validate:"omitempty,rgbhex"`
	SecondaryColor *string `json:"secondaryColor" validate:"omitempty,rgbhex"`
	LogoURL        *string `json:"logoUrl" validate:"omitempty,url,max=500"`
}

// CompanyStatusRequest cambio de estado (SUPER_ADMIN).
type CompanyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED PENDING"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Status      string    `json:"status"`
	Theme       ThemeDTO  `json:"theme"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanySummary referencia corta a una empresa dentro de otras respuestas.
type CompanySummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// InviteLinkResponse enlace que la empresa comparte con sus empleados.
type InviteLinkResponse struct {
	CompanySlug  string `json:"companySlug"`
	InviteURL    string `json:"inviteUrl"`
	RegisterPath string `json:"registerPath"`
}

// PublicCompanyResponse página pública de la empresa con sus empleados aprobados.
type PublicCompanyResponse struct {
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug"`
	Description string                  `json:"description"`
	Email       string                  `json:"email"`
	Phone       string                  `json:"phone"`
	Website     string                  `json:"website"`
	Theme       ThemeDTO                `json:"theme"`
	PublicURL   string                  `json:"publicUrl"`
	Employees   []PublicEmployeeSummary `json:"employees"`
}

// PublicEmployeeSummary tarjeta de empleado en la página de su empresa.
type PublicEmployeeSummary struct {
	FullName string `json:"fullName"`
	Position string `json:"position"`
	Slug     string `json:"slug"`
}
