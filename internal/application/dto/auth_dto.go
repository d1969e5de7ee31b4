package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// RegisterPersonalRequest registro de un profesional independiente.
type RegisterPersonalRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=1,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
	Headline string `json:"headline" validate:"omitempty,max=160"`
}

// RegisterCompanyRequest registro de una empresa con su cuenta administradora.
type RegisterCompanyRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FullName    string `json:"fullName" validate:"omitempty,max=120"`
	CompanyName string `json:"companyName" validate:"required,min=2,max=160"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
}

// RegisterEmployeeRequest registro de un empleado vía enlace de invitación (/:companySlug).
type RegisterEmployeeRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=1,max=120"`
	Position string `json:"position" validate:"omitempty,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
}

// ChangePasswordRequest cambio de contraseña de la propia cuenta.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// AuthResponse token + usuario con forma según rol. Company solo en registro de empresa.
type AuthResponse struct {
	Token   string           `json:"token"`
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}
