package dto

import "time"

// PersonalProfileResponse perfil de un profesional independiente.
type PersonalProfileResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	Website   string    `json:"website"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdatePersonalProfileRequest edición del perfil propio (campos opcionales).
type UpdatePersonalProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Headline *string `json:"headline" validate:"omitempty,max=160"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	Website  *string `json:"website" validate:"omitempty,url,max=255"`
}

// EmployeeResponse perfil de empleado con su estado de aprobación.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"accountId"`
	FullName   string          `json:"fullName"`
	Position   string          `json:"position"`
	Phone      string          `json:"phone"`
	Bio        string          `json:"bio"`
	Slug       string          `json:"slug"`
	Status     string          `json:"status"`
	Company    *CompanySummary `json:"company,omitempty"`
	ReviewedAt *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// EmployeeListResponse lista paginada de empleados de una empresa.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// UpdateEmployeeProfileRequest autoservicio del empleado aprobado.
type UpdateEmployeeProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=120"`
	Position *string `json:"position" validate:"omitempty,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
}

// PublicProfileResponse perfil público (personal o empleado aprobado).
type PublicProfileResponse struct {
	ProfileType ProfileType     `json:"profileType"`
	FullName    string          `json:"fullName"`
	Headline    string          `json:"headline,omitempty"`
	Position    string          `json:"position,omitempty"`
	Bio         string          `json:"bio"`
	Phone       string          `json:"phone"`
	Website     string          `json:"website,omitempty"`
	Slug        string          `json:"slug"`
	PublicURL   string          `json:"publicUrl"`
	Company     *CompanySummary `json:"company,omitempty"`
	Theme       *ThemeDTO       `json:"theme,omitempty"`
}
