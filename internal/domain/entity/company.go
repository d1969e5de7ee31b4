package entity

import "time"

// CompanyStatus estado de una empresa en el directorio.
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "ACTIVE"
	CompanyInactive  CompanyStatus = "INACTIVE"
	CompanySuspended CompanyStatus = "SUSPENDED"
	CompanyPending   CompanyStatus = "PENDING"
)

// Valid informa si s es un estado conocido.
func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyActive, CompanyInactive, CompanySuspended, CompanyPending:
		return true
	}
	return false
}

// Theme personalización visual de las páginas públicas de la empresa.
type Theme struct {
	PrimaryColor   string // #RRGGBB
	SecondaryColor string
	LogoURL        string
}

// Company tenant del directorio. Slug único entre empresas e inmutable.
type Company struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Email       string
	Phone       string
	Website     string
	Status      CompanyStatus
	Theme       Theme
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublic informa si la empresa puede mostrarse y recibir registros de empleados.
func (c *Company) IsPublic() bool {
	return c != nil && c.Status == CompanyActive
}

// DefaultTheme colores iniciales de una empresa recién registrada.
func DefaultTheme() Theme {
	return Theme{PrimaryColor: "#0B3D91", SecondaryColor: "#F2F4F8"}
}

// CompanyAdminLink prueba de que una cuenta administra una empresa.
type CompanyAdminLink struct {
	AccountID string
	CompanyID string
	CreatedAt time.Time
}
