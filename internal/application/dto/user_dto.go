package dto

import "time"

// ProfileType etiqueta explícita de la variante de perfil; el cliente hace switch sobre ella.
type ProfileType string

const (
	ProfileTypePersonal     ProfileType = "PERSONAL"
	ProfileTypeCompanyAdmin ProfileType = "COMPANY_ADMIN"
	ProfileTypeEmployee     ProfileType = "EMPLOYEE"
	ProfileTypeSuperAdmin   ProfileType = "SUPER_ADMIN"
)

// UserResponse cuenta + exactamente una variante de perfil según ProfileType.
type UserResponse struct {
	ID           string                   `json:"id"`
	Email        string                   `json:"email"`
	Role         string                   `json:"role"`
	Active       bool                     `json:"active"`
	CreatedAt    time.Time                `json:"createdAt"`
	ProfileType  ProfileType              `json:"profileType"`
	Personal     *PersonalProfileResponse `json:"personal,omitempty"`
	CompanyAdmin *CompanyAdminResponse    `json:"companyAdmin,omitempty"`
	Employee     *EmployeeResponse        `json:"employee,omitempty"`
}

// CompanyAdminResponse empresas administradas por la cuenta.
type CompanyAdminResponse struct {
	Companies []CompanySummary `json:"companies"`
}

// AccountStatusRequest activa o desactiva una cuenta (SUPER_ADMIN).
type AccountStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// AccountResponse salida de administración de cuentas (sin hash).
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
